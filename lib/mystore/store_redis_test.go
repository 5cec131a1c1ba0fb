package mystore

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore(t *testing.T) {
	c := context.TODO()

	t.Run("Put serializes as json under kind-prefixed key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		sut, _, err := newRedisStoreWithClient[wishlist](client)
		assert.NoError(t, err)

		mock.ExpectSet(sut.key("1"), `{"UID":"1","Items":["a"]}`, 0).SetVal("OK")

		err = sut.Put(c, "1", wishlist{UID: "1", Items: []string{"a"}})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get on absent key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		sut, _, err := newRedisStoreWithClient[wishlist](client)
		assert.NoError(t, err)

		mock.ExpectGet(sut.key("missing")).RedisNil()

		_, found, err := sut.Get(c, "missing")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Corrupt stored value reads back as absent", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		sut, _, err := newRedisStoreWithClient[wishlist](client)
		assert.NoError(t, err)

		mock.ExpectGet(sut.key("1")).SetVal("{not json")

		_, found, err := sut.Get(c, "1")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		sut, _, err := newRedisStoreWithClient[wishlist](client)
		assert.NoError(t, err)

		mock.ExpectDel(sut.key("1")).SetVal(1)

		err = sut.Delete(c, "1")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
