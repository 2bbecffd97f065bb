package email

import (
	"context"
	"fmt"

	"walletledger/internal/money"
)

const (
	TypeDepositReceipt   = "deposit_receipt"
	TypeTransferSent     = "transfer_sent"
	TypeTransferReceived = "transfer_received"
)

func (s *Service) SendDepositReceipt(ctx context.Context, to, name, reference string, amount, balance int64) error {
	subject := "Deposit received - " + money.Format(amount)
	body := fmt.Sprintf(`Hi %s,

Your deposit has been credited to your wallet.

Amount: %s
Reference: %s
New balance: %s

- Wallet Team`, name, money.Format(amount), reference, money.Format(balance))

	return s.Send(ctx, to, name, TypeDepositReceipt, subject, body)
}

func (s *Service) SendTransferSent(ctx context.Context, to, name, reference, recipientWallet string, amount int64) error {
	subject := "Transfer sent - " + money.Format(amount)
	body := fmt.Sprintf(`Hi %s,

You sent %s to wallet %s.

Reference: %s

- Wallet Team`, name, money.Format(amount), recipientWallet, reference)

	return s.Send(ctx, to, name, TypeTransferSent, subject, body)
}

func (s *Service) SendTransferReceived(ctx context.Context, to, name, reference, senderWallet string, amount int64) error {
	subject := "You received " + money.Format(amount)
	body := fmt.Sprintf(`Hi %s,

Wallet %s sent you %s.

Reference: %s

- Wallet Team`, name, senderWallet, money.Format(amount), reference)

	return s.Send(ctx, to, name, TypeTransferReceived, subject, body)
}
