// Package dbtest opens a migrated Postgres database for integration tests.
// Tests are skipped under -short or when TEST_DATABASE_URL is unset.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"walletledger/internal/auth"
	"walletledger/internal/db"
	"walletledger/internal/ledger"
	"walletledger/internal/wallet"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const envDatabaseURL = "TEST_DATABASE_URL"

// Open connects, applies migrations and truncates every table.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := os.Getenv(envDatabaseURL)
	if dsn == "" {
		t.Skipf("skipping integration test: %s not set", envDatabaseURL)
	}

	database, err := db.Connect(dsn)
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, migrationsDir()))
	Reset(t, database)
	return database
}

func Reset(t *testing.T, database *sqlx.DB) {
	t.Helper()
	_, err := database.Exec(`TRUNCATE transactions, api_keys, wallets, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// Account is a user with its wallet.
type Account struct {
	UserID int
	Wallet *wallet.Wallet
}

func CreateAccount(t *testing.T, database *sqlx.DB, email string) Account {
	t.Helper()
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	var acct Account
	err = db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &acct.UserID,
			`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
			email, email, hash); err != nil {
			return err
		}
		w, err := wallet.NewRepository(database).Create(ctx, tx, acct.UserID)
		acct.Wallet = w
		return err
	})
	require.NoError(t, err)
	return acct
}

// Fund records a settled deposit and credits the wallet in one transaction.
func Fund(t *testing.T, database *sqlx.DB, walletID int, amount int64) {
	t.Helper()
	ctx := context.Background()
	wallets := wallet.NewRepository(database)
	entries := ledger.NewRepository(database)

	err := db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		entry := &ledger.Entry{
			WalletID:  walletID,
			Type:      ledger.TypeDeposit,
			Amount:    amount,
			Status:    ledger.StatusSuccess,
			Reference: ledger.NewReference(ledger.PrefixDeposit),
		}
		if err := entries.Append(ctx, tx, entry); err != nil {
			return err
		}
		_, err := wallets.AdjustBalance(ctx, tx, walletID, amount)
		return err
	})
	require.NoError(t, err, fmt.Sprintf("funding wallet %d", walletID))
}

// AssertReconciled checks that the stored balance equals the sum of the
// wallet's successful ledger entries.
func AssertReconciled(t *testing.T, database *sqlx.DB, walletID int) int64 {
	t.Helper()
	ctx := context.Background()

	balance, err := wallet.NewRepository(database).GetBalance(ctx, walletID)
	require.NoError(t, err)
	sum, err := ledger.NewRepository(database).SettledSum(ctx, walletID)
	require.NoError(t, err)
	require.Equal(t, sum, balance, "wallet %d balance drifted from its ledger", walletID)
	require.GreaterOrEqual(t, balance, int64(0))
	return balance
}
