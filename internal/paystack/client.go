// Package paystack talks to the Paystack payment gateway: it opens hosted
// payment sessions and verifies the signature on inbound webhooks.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"walletledger/internal/config"
	"walletledger/internal/logger"
	"walletledger/internal/metrics"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

const initializePath = "/transaction/initialize"

// Gateway is the part of the client the deposit flow depends on.
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*Session, error)
}

type InitializeRequest struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
	Email     string `json:"email"`
	Callback  string `json:"callback_url,omitempty"`
}

// Session is a hosted checkout opened for one reference.
type Session struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type envelope struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	Data    *Session `json:"data"`
}

type Client struct {
	baseURL     string
	secretKey   string
	callbackURL string
	httpClient  *http.Client
}

func NewClient(cfg config.PaystackConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Initialize opens a payment session keyed by req.Reference. Transport
// failures, timeouts and non-2xx answers all surface as ErrGatewayUnavailable.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*Session, error) {
	if req.Callback == "" {
		req.Callback = c.callbackURL
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+initializePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordGatewayCall("initialize", "error", time.Since(start).Seconds())
		logger.Error("paystack initialize request failed", "reference", req.Reference, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.RecordGatewayCall("initialize", strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("paystack returned non-OK status",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
			"response", string(body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrGatewayUnavailable, err)
	}
	if !env.Status || env.Data == nil || env.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, env.Message)
	}
	if env.Data.Reference == "" {
		env.Data.Reference = req.Reference
	}

	return env.Data, nil
}
