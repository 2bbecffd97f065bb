package user

import (
	"context"
	"errors"
	"testing"

	"walletledger/internal/auth"
	"walletledger/internal/wallet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) Create(ctx context.Context, tx *sqlx.Tx, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, tx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockWalletRepo struct{ mock.Mock }

func (m *MockWalletRepo) Create(ctx context.Context, tx *sqlx.Tx, userID int) (*wallet.Wallet, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByID(ctx context.Context, id int) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserID(ctx context.Context, userID int) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByNumber(ctx context.Context, number string) (*wallet.Wallet, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetBalance(ctx context.Context, walletID int) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepo) LockForUpdate(ctx context.Context, tx *sqlx.Tx, ids ...int) (map[int]*wallet.Wallet, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) AdjustBalance(ctx context.Context, tx *sqlx.Tx, walletID int, delta int64) (int64, error) {
	args := m.Called(ctx, tx, walletID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T) (Service, *MockRepository, *MockWalletRepo, sqlmock.Sqlmock) {
	raw, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	t.Cleanup(func() { db.Close() })

	repo := new(MockRepository)
	wallets := new(MockWalletRepo)
	return NewService(db, repo, wallets, "test-secret"), repo, wallets, sqlMock
}

func TestService_Register(t *testing.T) {
	req := RegisterRequest{Name: "Test User", Email: "test@example.com", Password: "password123"}

	t.Run("provisions user and wallet together", func(t *testing.T) {
		svc, repo, wallets, sqlMock := newTestService(t)

		repo.On("EmailExists", mock.Anything, "test@example.com").Return(false, nil)
		sqlMock.ExpectBegin()
		repo.On("Create", mock.Anything, mock.Anything, "Test User", "test@example.com", mock.Anything, "member").
			Return(&User{ID: 1, Name: "Test User", Email: "test@example.com", Role: "member"}, nil)
		wallets.On("Create", mock.Anything, mock.Anything, 1).
			Return(&wallet.Wallet{ID: 3, UserID: 1, WalletNumber: "4820193375"}, nil)
		sqlMock.ExpectCommit()

		resp, err := svc.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "4820193375", resp.Account.WalletNumber)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		require.NoError(t, sqlMock.ExpectationsWereMet())
		repo.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("wallet failure rolls back the user", func(t *testing.T) {
		svc, repo, wallets, sqlMock := newTestService(t)

		repo.On("EmailExists", mock.Anything, "test@example.com").Return(false, nil)
		sqlMock.ExpectBegin()
		repo.On("Create", mock.Anything, mock.Anything, "Test User", "test@example.com", mock.Anything, "member").
			Return(&User{ID: 1, Email: "test@example.com"}, nil)
		wallets.On("Create", mock.Anything, mock.Anything, 1).Return(nil, errors.New("number space exhausted"))
		sqlMock.ExpectRollback()

		resp, err := svc.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Nil(t, resp)
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("email already exists", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		repo.On("EmailExists", mock.Anything, "test@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           LoginRequest
		setupMock     func(*MockRepository, *MockWalletRepo)
		expectedError error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockRepository, w *MockWalletRepo) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(&User{ID: 1, Email: "test@example.com", PasswordHash: hash}, nil)
				w.On("GetByUserID", mock.Anything, 1).Return(&wallet.Wallet{ID: 3, WalletNumber: "4820193375"}, nil)
			},
		},
		{
			name: "wrong password",
			req:  LoginRequest{Email: "test@example.com", Password: "nope"},
			setupMock: func(m *MockRepository, w *MockWalletRepo) {
				m.On("FindByEmail", mock.Anything, "test@example.com").
					Return(&User{ID: 1, Email: "test@example.com", PasswordHash: hash}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "user not found",
			req:  LoginRequest{Email: "notfound@example.com", Password: "password123"},
			setupMock: func(m *MockRepository, w *MockWalletRepo) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, ErrUserNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, wallets, _ := newTestService(t)
			tt.setupMock(repo, wallets)

			resp, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "4820193375", resp.Account.WalletNumber)
				assert.NotEmpty(t, resp.AccessToken)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_RefreshToken(t *testing.T) {
	svc, repo, wallets, _ := newTestService(t)

	refresh, err := auth.GenerateRefreshToken(1, "test@example.com", "test-secret")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, 1).Return(&User{ID: 1, Email: "test@example.com"}, nil)
	wallets.On("GetByUserID", mock.Anything, 1).Return(&wallet.Wallet{WalletNumber: "4820193375"}, nil)

	resp, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, resp.RefreshToken)

	access, err := auth.GenerateAccessToken(1, "test@example.com", "test-secret")
	require.NoError(t, err)
	_, err = svc.RefreshToken(context.Background(), access)
	assert.Error(t, err)
}
