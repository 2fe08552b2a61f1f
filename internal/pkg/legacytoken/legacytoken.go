// Package legacytoken implements the pre-JWT bearer token still accepted
// for older clients: base64 of "userId|email|expiry". The format carries no
// signature or HMAC, so anyone who knows a user's id and email can mint one.
// Verification leans entirely on the store lookup and the expiry check; the
// signed-token path in jwthelper is the recommended replacement, and this
// codec exists only for wire compatibility.
package legacytoken

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMalformedToken = errors.New("malformed legacy token")
	ErrEmailMismatch  = errors.New("token email does not match user record")
	ErrTokenExpired   = errors.New("token expired")
)

type Token struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

func Encode(t Token) string {
	raw := fmt.Sprintf("%s|%s|%s", t.UserID, t.Email, t.ExpiresAt.UTC().Format(time.RFC3339))

	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func Decode(s string) (Token, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Token{}, ErrMalformedToken
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return Token{}, ErrMalformedToken
	}

	expiry, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return Token{}, ErrMalformedToken
	}

	return Token{
		UserID:    parts[0],
		Email:     parts[1],
		ExpiresAt: expiry,
	}, nil
}

// UserStore is the injected identity lookup: any user/role store that can
// answer "what email belongs to this id" satisfies it.
type UserStore interface {
	EmailForID(ctx context.Context, id string) (string, error)
}

type Verifier struct {
	store UserStore
}

func NewVerifier(store UserStore) *Verifier {
	return &Verifier{
		store: store,
	}
}

// Verify decodes the token, confirms the embedded email matches the store's
// record for the embedded id, and rejects past expiries.
func (v *Verifier) Verify(ctx context.Context, raw string, now time.Time) (Token, error) {
	token, err := Decode(raw)
	if err != nil {
		return Token{}, err
	}

	email, err := v.store.EmailForID(ctx, token.UserID)
	if err != nil {
		return Token{}, err
	}
	if email != token.Email {
		return Token{}, ErrEmailMismatch
	}

	if !token.ExpiresAt.After(now) {
		return Token{}, ErrTokenExpired
	}

	return token, nil
}
