package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"walletledger/internal/config"
	"walletledger/internal/logger"
	"walletledger/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
	popTimeout     = 2 * time.Second
	maxPopBackoff  = 30 * time.Second
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues mail in a Redis list and delivers it over SMTP from Start.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string

	retryDelay time.Duration
	popBackoff time.Duration
	deliver    func(EmailJob) error

	// Owned by the worker goroutine.
	popFailures int
}

func New(cfg *config.Config) *Service {
	s := &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		}),
		from:       cfg.EmailFrom,
		fromName:   cfg.EmailFromName,
		smtpHost:   cfg.SMTPHost,
		smtpPort:   cfg.SMTPPort,
		smtpUser:   cfg.SMTPUser,
		smtpPass:   cfg.SMTPPass,
		retryDelay: 5 * time.Second,
		popBackoff: time.Second,
	}
	s.deliver = s.sendNow
	return s
}

func (s *Service) Send(ctx context.Context, to, name, emailType, subject, body string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Type:    emailType,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordEmail(emailType, "queue_error")
		logger.Error("failed to queue email", "to", to, "type", emailType, "error", err)
		return err
	}

	metrics.RecordEmail(emailType, "queued")
	logger.Debug("email queued", "to", to, "type", emailType)
	return nil
}

// Start drains the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return
		}
		s.popFailures++
		wait := s.nextPopBackoff()
		logger.WithError(err).Warnw("email queue unreachable", "retry_in", wait.String(), "failures", s.popFailures)
		sleepCtx(ctx, wait)
		return
	}
	s.popFailures = 0

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.WithError(err).Error("bad email payload")
		return
	}

	job.Tries++
	if err := s.deliver(job); err != nil {
		logger.WithError(err).Errorw("failed to send email", "to", job.To, "attempt", job.Tries)

		if job.Tries < maxTries {
			// On shutdown the job is requeued at once so it is not lost.
			sleepCtx(ctx, s.retryDelay)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
		} else {
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "to", job.To, "type", job.Type)
}

// nextPopBackoff doubles popBackoff per consecutive failure up to maxPopBackoff.
func (s *Service) nextPopBackoff() time.Duration {
	wait := s.popBackoff
	for i := 1; i < s.popFailures && wait < maxPopBackoff; i++ {
		wait *= 2
	}
	if wait > maxPopBackoff {
		wait = maxPopBackoff
	}
	return wait
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	return smtp.SendMail(s.smtpHost+":"+s.smtpPort, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Error("email moved to failed queue", "to", job.To, "type", job.Type)
}

// QueueLength also refreshes the queue gauge.
func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}
