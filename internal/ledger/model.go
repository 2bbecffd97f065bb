package ledger

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
)

type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeTransfer   Type = "transfer"
	TypeWithdrawal Type = "withdrawal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

func directionOf(amount int64) Direction {
	if amount < 0 {
		return DirectionDebit
	}
	return DirectionCredit
}

// Entry is one row of the ledger. Amount is signed: debits are negative.
type Entry struct {
	ID        int64          `db:"id" json:"id"`
	WalletID  int            `db:"wallet_id" json:"wallet_id"`
	Type      Type           `db:"type" json:"type"`
	Direction Direction      `db:"direction" json:"direction"`
	Amount    int64          `db:"amount" json:"amount"`
	Status    Status         `db:"status" json:"status"`
	Reference string         `db:"reference" json:"reference"`
	Metadata  types.JSONText `db:"metadata" json:"metadata"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// TransferRecord is one logical transfer. It is persisted as two entries
// sharing Reference: a debit on the sender and a credit on the recipient.
type TransferRecord struct {
	Reference         string
	SenderWalletID    int
	RecipientWalletID int
	Amount            int64
	SenderMeta        types.JSONText
	RecipientMeta     types.JSONText
}

// Entries materializes the debit and credit rows, debit first.
func (t TransferRecord) Entries() [2]Entry {
	return [2]Entry{
		{
			WalletID:  t.SenderWalletID,
			Type:      TypeTransfer,
			Direction: DirectionDebit,
			Amount:    -t.Amount,
			Status:    StatusSuccess,
			Reference: t.Reference,
			Metadata:  orEmpty(t.SenderMeta),
		},
		{
			WalletID:  t.RecipientWalletID,
			Type:      TypeTransfer,
			Direction: DirectionCredit,
			Amount:    t.Amount,
			Status:    StatusSuccess,
			Reference: t.Reference,
			Metadata:  orEmpty(t.RecipientMeta),
		},
	}
}

// NewDepositEntry builds the pending credit opened by a deposit initiation.
func NewDepositEntry(walletID int, amount int64, reference string, meta types.JSONText) Entry {
	return Entry{
		WalletID:  walletID,
		Type:      TypeDeposit,
		Direction: DirectionCredit,
		Amount:    amount,
		Status:    StatusPending,
		Reference: reference,
		Metadata:  orEmpty(meta),
	}
}

// Metadata encodes free-form attributes for the metadata column.
func Metadata(fields map[string]interface{}) types.JSONText {
	if len(fields) == 0 {
		return emptyMeta
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return emptyMeta
	}
	return types.JSONText(b)
}

var emptyMeta = types.JSONText(`{}`)

func orEmpty(m types.JSONText) types.JSONText {
	if len(m) == 0 {
		return emptyMeta
	}
	return m
}

// TransactionView is the public shape returned by the listing endpoint.
type TransactionView struct {
	Type          Type      `json:"type" example:"transfer"`
	Amount        int64     `json:"amount" example:"-30000"`
	AmountDisplay string    `json:"amount_display" example:"-300.00"`
	Status        Status    `json:"status" example:"success"`
	Reference     string    `json:"reference" example:"tr_01J9Z6M3X1V8QZ8K5T2YB7C4DN"`
	CreatedAt     time.Time `json:"created_at"`
}
