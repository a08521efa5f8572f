// Package imgshare stores rendered chart images in Redis under short-lived
// share tokens so they can be downloaded from another device.
package imgshare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token does not resolve to a stored image.
var ErrNotFound = errors.New("imgshare: image not found")

const keyPrefix = "imgshare:"

// Image is one stored chart snapshot.
type Image struct {
	ContentType string
	Data        []byte
}

// Store persists shared images with a TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds a store. ttl bounds how long a share link stays valid.
func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Put stores the image and returns its share token.
func (s *Store) Put(ctx context.Context, img Image) (string, error) {
	if len(img.Data) == 0 {
		return "", errors.New("imgshare: empty image")
	}
	token := uuid.NewString()
	key := keyPrefix + token

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "content_type", img.ContentType, "data", img.Data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("imgshare: store image: %w", err)
	}
	return token, nil
}

// Get resolves a token back to the stored image.
func (s *Store) Get(ctx context.Context, token string) (Image, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+token).Result()
	if err != nil {
		return Image{}, fmt.Errorf("imgshare: load image: %w", err)
	}
	if len(fields) == 0 {
		return Image{}, ErrNotFound
	}
	return Image{
		ContentType: fields["content_type"],
		Data:        []byte(fields["data"]),
	}, nil
}
