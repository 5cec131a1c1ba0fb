package myvault

import (
	"context"

	"github.com/artaltay/miniapp/lib/mystore"
)

type storeBackedVault struct {
	store mystore.Store[Token]
}

func New(c context.Context) (VaultReadWriter, func(), error) {
	store, cleanup, err := mystore.New[Token](c)
	if err != nil {
		return nil, nil, err
	}

	return &storeBackedVault{store: store}, cleanup, nil
}

func (v *storeBackedVault) Get(c context.Context, uid string) (Token, bool, error) {
	return v.store.Get(c, uid)
}

func (v *storeBackedVault) Put(c context.Context, uid string, value Token) error {
	return v.store.Put(c, uid, value)
}

func (v *storeBackedVault) Delete(c context.Context, uid string) error {
	return v.store.Delete(c, uid)
}
