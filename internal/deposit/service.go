package deposit

import (
	"context"
	"errors"
	"fmt"

	"walletledger/internal/ledger"
	"walletledger/internal/logger"
	"walletledger/internal/metrics"
	"walletledger/internal/paystack"
	"walletledger/internal/principal"
	"walletledger/internal/user"
	"walletledger/internal/wallet"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrNotFound      = errors.New("deposit not found")
)

type Service interface {
	Initiate(ctx context.Context, p principal.Principal, amount int64) (*Initiation, error)
	Status(ctx context.Context, p principal.Principal, reference string) (*StatusResponse, error)
}

type service struct {
	db      *sqlx.DB
	wallets wallet.Repository
	entries ledger.Repository
	users   user.Repository
	gateway paystack.Gateway

	newReference func() string
}

func NewService(db *sqlx.DB, wallets wallet.Repository, entries ledger.Repository, users user.Repository, gateway paystack.Gateway) Service {
	return &service{
		db:      db,
		wallets: wallets,
		entries: entries,
		users:   users,
		gateway: gateway,
		newReference: func() string {
			return ledger.NewReference(ledger.PrefixDeposit)
		},
	}
}

// Initiate records a pending deposit and opens a gateway session for it. The
// pending entry is committed before the gateway is called and is left in
// place if the call fails; a retry gets a new reference.
func (s *service) Initiate(ctx context.Context, p principal.Principal, amount int64) (*Initiation, error) {
	if amount <= 0 {
		metrics.RecordDepositInitiated("invalid_amount")
		return nil, ErrInvalidAmount
	}

	w, err := s.wallets.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("load deposit owner: %w", err)
	}

	entry := ledger.NewDepositEntry(w.ID, amount, s.newReference(), ledger.Metadata(map[string]interface{}{
		"gateway":        "paystack",
		"principal_kind": string(p.Kind),
	}))
	if err := s.entries.Append(ctx, s.db, &entry); err != nil {
		metrics.RecordDepositInitiated("error")
		return nil, err
	}

	session, err := s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Amount:    amount,
		Reference: entry.Reference,
		Email:     owner.Email,
	})
	if err != nil {
		metrics.RecordDepositInitiated("gateway_error")
		logger.Error("deposit left pending after gateway failure", "reference", entry.Reference, "wallet_id", w.ID, "error", err)
		if !errors.Is(err, paystack.ErrGatewayUnavailable) {
			err = fmt.Errorf("%w: %v", paystack.ErrGatewayUnavailable, err)
		}
		return nil, err
	}

	metrics.RecordDepositInitiated("success")
	logger.Info("deposit initiated", "reference", entry.Reference, "wallet_id", w.ID, "amount", amount)

	return &Initiation{Reference: entry.Reference, AuthorizationURL: session.AuthorizationURL}, nil
}

// Status resolves only deposits that belong to the caller's wallet.
func (s *service) Status(ctx context.Context, p principal.Principal, reference string) (*StatusResponse, error) {
	w, err := s.wallets.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	for _, e := range entries {
		if e.Type == ledger.TypeDeposit && e.WalletID == w.ID {
			return &StatusResponse{Reference: e.Reference, Status: e.Status, Amount: e.Amount}, nil
		}
	}
	return nil, ErrNotFound
}
