// Package auth implements the identity provider boundary of the savings
// engine: HS256 bearer tokens whose claims carry the connected wallet
// address.
package auth

import (
	"errors"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims for an authenticated session
type Claims struct {
	WalletAddress string `json:"wallet_address"`
	Email         string `json:"email,omitempty"`

	jwt.RegisteredClaims
}

// JWT signs and verifies session tokens
type JWT struct {
	Secret   []byte
	TokenTTL time.Duration
}

// Sign issues a token for the given wallet address. The address must be a
// valid hex-encoded account address.
func (j JWT) Sign(walletAddress, email string) (token string, expiresAt time.Time, err error) {
	if !ethcommon.IsHexAddress(walletAddress) {
		return "", time.Time{}, errors.New("invalid wallet address")
	}

	now := time.Now().UTC()
	expiresAt = now.Add(j.TokenTTL)
	claims := Claims{
		WalletAddress: ethcommon.HexToAddress(walletAddress).Hex(),
		Email:         email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "nexus-vaults",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, expiresAt, nil
}

// Verify parses and validates a token, returning its claims
func (j JWT) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return *c, nil
}
