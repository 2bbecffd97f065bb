package deposit

import "walletledger/internal/ledger"

// DepositRequest is the body of POST /wallet/deposit. Amount is in minor
// units.
type DepositRequest struct {
	Amount int64 `json:"amount" example:"50000"`
}

type DepositResponse struct {
	Reference        string `json:"reference" example:"ps_01J9Z6M3X1V8QZ8K5T2YB7C4DN"`
	AuthorizationURL string `json:"authorization_url" example:"https://checkout.paystack.com/0peioxfhpn"`
}

type StatusResponse struct {
	Reference string        `json:"reference" example:"ps_01J9Z6M3X1V8QZ8K5T2YB7C4DN"`
	Status    ledger.Status `json:"status" example:"pending"`
	Amount    int64         `json:"amount" example:"50000"`
}

// Initiation is the outcome of a successful deposit initiation.
type Initiation struct {
	Reference        string
	AuthorizationURL string
}
