// Package redisblob keeps browser-print documents in Redis hashes with a TTL.
package redisblob

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	DefaultKeyPrefix = "fulfillment:print-document:"
	DefaultTTL       = time.Hour

	fieldContentType = "content_type"
	fieldData        = "data"
)

// Store implements ports.BlobStore.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewStore returns a store writing under prefix. Empty prefix and
// non-positive ttl use the defaults.
func NewStore(client redis.Cmdable, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

// Put writes the blob and its expiry in one transaction.
func (s *Store) Put(ctx context.Context, key string, blob ports.Blob) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.prefix+key, fieldContentType, blob.ContentType, fieldData, blob.Data)
		pipe.Expire(ctx, s.prefix+key, s.ttl)
		return nil
	})
	return err
}

func (s *Store) Get(ctx context.Context, key string) (ports.Blob, error) {
	fields, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		return ports.Blob{}, err
	}

	data, ok := fields[fieldData]
	if !ok {
		return ports.Blob{}, errs.NewObjectNotFoundError("document", key)
	}

	return ports.Blob{
		ContentType: fields[fieldContentType],
		Data:        []byte(data),
	}, nil
}
