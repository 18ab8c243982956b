package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	DefaultDeviceTokenTTL = 30 * 24 * time.Hour
	deviceTokenPurpose    = "cyclecare.device-token.v1"
	deviceTokenIssuer     = "cyclecare"
)

var (
	ErrInvalidDeviceToken = errors.New("invalid device token")
	errEmptySecret        = errors.New("secret key is required")
)

type DeviceClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// DeriveTokenKey expands the configured secret into a key used only for
// device tokens.
func DeriveTokenKey(secret string) ([]byte, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errEmptySecret
	}

	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(deviceTokenPurpose))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	return key, nil
}

func IssueDeviceToken(key []byte, userID string, now time.Time, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		ttl = DefaultDeviceTokenTTL
	}

	claims := DeviceClaims{
		Purpose: deviceTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    deviceTokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseDeviceToken verifies the signature, expiry and purpose and returns
// the device user id.
func ParseDeviceToken(key []byte, raw string, now time.Time) (string, error) {
	claims := &DeviceClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return key, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithIssuer(deviceTokenIssuer))
	if err != nil || !token.Valid {
		return "", ErrInvalidDeviceToken
	}
	if claims.Purpose != deviceTokenPurpose || strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidDeviceToken
	}
	return claims.Subject, nil
}
