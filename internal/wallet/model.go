package wallet

import "time"

// Wallet is a single user's balance in minor units. It is addressed
// externally by WalletNumber and never deleted.
type Wallet struct {
	ID           int       `db:"id" json:"-"`
	UserID       int       `db:"user_id" json:"-"`
	Balance      int64     `db:"balance" json:"balance"`
	WalletNumber string    `db:"wallet_number" json:"wallet_number"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type BalanceResponse struct {
	Balance        int64  `json:"balance" example:"150050"`
	BalanceDisplay string `json:"balance_display" example:"1500.50"`
	WalletNumber   string `json:"wallet_number" example:"4820193375"`
}
