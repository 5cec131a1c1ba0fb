package mystore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type wishlist struct {
	UID   string
	Items []string
}

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()
	sut, cleanup, err := NewInMemoryStore[wishlist](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get on absent uid", func(t *testing.T) {
		_, found, err := sut.Get(c, "unknown")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put and get", func(t *testing.T) {
		err := sut.Put(c, "1", wishlist{UID: "1", Items: []string{"a", "b"}})
		assert.NoError(t, err)

		got, found, err := sut.Get(c, "1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"a", "b"}, got.Items)
	})

	t.Run("Delete removes the key entirely", func(t *testing.T) {
		err := sut.Put(c, "2", wishlist{UID: "2"})
		assert.NoError(t, err)

		err = sut.Delete(c, "2")
		assert.NoError(t, err)

		_, found, err := sut.Get(c, "2")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Mutation within transaction", func(t *testing.T) {
		err := sut.RunInTransaction(c, func(c context.Context) error {
			return sut.Put(c, "3", wishlist{UID: "3"})
		})
		assert.NoError(t, err)

		_, found, _ := sut.Get(c, "3")
		assert.True(t, found)
	})
}
