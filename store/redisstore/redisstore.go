/*
Package redisstore provides a Store for trained forests backed by a
redis DB. Every forest is saved encoded under a key made of the store
prefix and the forest name.
*/
package redisstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/codec"
	"gopkg.in/redis.v5"
)

// StoreError represents an error returned by a Store.
type StoreError string

func (se StoreError) Error() string {
	return string(se)
}

// ErrNotFound is returned when loading a forest that has not been saved.
const ErrNotFound = StoreError("forest not found")

/*
Store is an interface for a place where trained forests
can be saved under a name and loaded back.
*/
type Store interface {
	// Save takes a context, a name and a forest and stores
	// the forest under the name, replacing any forest stored
	// before with it.
	Save(context.Context, string, *cropforest.Forest) error
	// Load takes a context, a name and a list of options for
	// the loaded forest and returns the forest stored under
	// the name. If there is no such forest, ErrNotFound is
	// returned.
	Load(context.Context, string, ...cropforest.Option) (*cropforest.Forest, error)
	// Delete takes a context and a name and removes the forest
	// stored under it, if any.
	Delete(context.Context, string) error
	// List returns the names of the stored forests.
	List(context.Context) ([]string, error)
}

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec codec.EncodeDecoder
}

// New builds a Store backed by a redis DB
func New(rc *redis.Client, prefix string, encdec codec.EncodeDecoder) Store {
	return &redisStore{rc, prefix, encdec}
}

func (rs *redisStore) Save(ctx context.Context, name string, f *cropforest.Forest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(name)
	data, err := rs.encdec.Encode(f)
	if err != nil {
		return fmt.Errorf("storing forest %q: %w", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing forest %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string, opts ...cropforest.Option) (*cropforest.Forest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	redisID := rs.keyFor(name)
	data, err := rs.rc.Get(redisID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("retrieving forest %q: %w", redisID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving forest %q: %v", redisID, err)
	}
	f, err := rs.encdec.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("retrieving forest %q: %v", redisID, err)
	}
	return f, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(name)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting forest %q from redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, err := rs.rc.Keys(rs.keyFor("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("listing forests in redis: %v", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, rs.prefix+":"))
	}
	return names, nil
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
