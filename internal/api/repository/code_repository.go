package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCodeNotFound = errors.New("confirmation code not found or expired")
	ErrCodeMismatch = errors.New("confirmation code mismatch")
)

// CodeRepository stores pending confirmation codes. Only a bcrypt hash of the
// code ever reaches the store; expiry is handled by the key TTL.
type CodeRepository interface {
	Save(ctx context.Context, username, code string, ttl time.Duration) error
	Verify(ctx context.Context, username, code string) error
	Delete(ctx context.Context, username string) error
}

type redisCodeRepository struct {
	client *redis.Client
}

// NewRedisClient connects to the Redis instance described by url and
// verifies the connection before returning.
func NewRedisClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewCodeRepository(client *redis.Client) CodeRepository {
	return &redisCodeRepository{client: client}
}

func codeKey(username string) string {
	return fmt.Sprintf("confirm:%s", username)
}

func (r *redisCodeRepository) Save(ctx context.Context, username, code string, ttl time.Duration) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}
	if err := r.client.Set(ctx, codeKey(username), string(hash), ttl).Err(); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	return nil
}

func (r *redisCodeRepository) Verify(ctx context.Context, username, code string) error {
	hash, err := r.client.Get(ctx, codeKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("load code: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return ErrCodeMismatch
	}
	return nil
}

func (r *redisCodeRepository) Delete(ctx context.Context, username string) error {
	return r.client.Del(ctx, codeKey(username)).Err()
}
