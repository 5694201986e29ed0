package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/ocean-watch/internal/domain"
)

// FlashTTL bounds how long a signup greeting stays readable.
const FlashTTL = 5 * time.Minute

var ErrInvalidFlash = errors.New("invalid flash token")

// FlashSigner issues and verifies the short-lived signed token that carries
// a new member's name from the signup POST to the success page.
type FlashSigner struct {
	secret []byte
	now    func() time.Time
}

// NewFlashSigner creates a FlashSigner using an HMAC-SHA256 secret.
func NewFlashSigner(secret string) *FlashSigner {
	return &FlashSigner{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token naming the member who just joined.
func (f *FlashSigner) Issue(member *domain.Member) (string, error) {
	now := f.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(member.ID, 10),
		"name": member.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(FlashTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(f.secret)
	if err != nil {
		return "", fmt.Errorf("sign flash: %w", err)
	}
	return signed, nil
}

// Read verifies the token and returns the member name it carries.
func (f *FlashSigner) Read(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return f.secret, nil
	}, jwt.WithTimeFunc(f.now))
	if err != nil {
		return "", ErrInvalidFlash
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidFlash
	}

	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return "", ErrInvalidFlash
	}
	return name, nil
}
