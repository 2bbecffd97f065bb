package transfer

// TransferRequest is the body of POST /wallet/transfer. Amount is in minor
// units.
type TransferRequest struct {
	WalletNumber string `json:"wallet_number" binding:"required,numeric" example:"4820193375"`
	Amount       int64  `json:"amount" example:"30000"`
}

type TransferResponse struct {
	Status    string `json:"status" example:"success"`
	Reference string `json:"reference" example:"tr_01J9Z6M3X1V8QZ8K5T2YB7C4DN"`
}

// Result describes a committed transfer.
type Result struct {
	Reference     string
	Amount        int64
	SenderBalance int64
}

// Receipt is handed to the Notifier after commit.
type Receipt struct {
	Reference             string
	Amount                int64
	SenderUserID          int
	RecipientUserID       int
	SenderWalletNumber    string
	RecipientWalletNumber string
}
