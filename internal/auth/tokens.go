package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	jwtIssuer   = "walletledger-api"
	jwtAudience = "walletledger-users"
	clockSkew   = 30 * time.Second

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
)

// TokenKind separates short-lived access tokens from refresh tokens. Only
// access tokens authenticate wallet calls.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Claims carries the user id in the standard subject claim.
type Claims struct {
	Email string    `json:"email"`
	Kind  TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

type TokenPair struct {
	Access  string
	Refresh string
}

func signToken(userID int, email string, kind TokenKind, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptyJWTSecret
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(userID),
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func GenerateAccessToken(userID int, email, secret string) (string, error) {
	return signToken(userID, email, TokenAccess, secret, AccessTokenTTL)
}

func GenerateRefreshToken(userID int, email, secret string) (string, error) {
	return signToken(userID, email, TokenRefresh, secret, RefreshTokenTTL)
}

func GenerateTokens(userID int, email, secret string) (TokenPair, error) {
	access, err := GenerateAccessToken(userID, email, secret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := GenerateRefreshToken(userID, email, secret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseToken verifies signature, issuer, audience and expiry, then requires
// the token to be of kind want and to name a user.
func ParseToken(raw, secret string, want TokenKind) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims.Kind != want {
		return nil, ErrInvalidTokenType
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token and
// returns the user it was issued to.
func RefreshAccessToken(refreshToken, secret string) (string, int, error) {
	claims, err := ParseToken(refreshToken, secret, TokenRefresh)
	if err != nil {
		return "", 0, err
	}
	userID, _ := claims.UserID()

	access, err := GenerateAccessToken(userID, claims.Email, secret)
	if err != nil {
		return "", 0, err
	}
	return access, userID, nil
}
