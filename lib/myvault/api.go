package myvault

import (
	"context"
	"time"
)

const (
	// CurrentToken is the uid under which the active upstream API
	// bearer token is kept.
	CurrentToken = "currentToken"
)

type Token struct {
	AccessToken string
	CreatedAt   time.Time
}

//go:generate mockgen -source=api.go -package myvault -destination vault_mock.go VaultReader,VaultReadWriter
type VaultReader interface {
	Get(c context.Context, uid string) (Token, bool, error)
}

type VaultReadWriter interface {
	VaultReader
	Put(c context.Context, uid string, value Token) error
	Delete(c context.Context, uid string) error
}
