package domain

import (
	"context"
	"time"
)

// ProblemGenerator produces problem content for a topic and difficulty.
// Implementations may fail (timeout, quota); callers are expected to fall
// back to FallbackProblem content rather than surface the failure.
type ProblemGenerator interface {
	Generate(ctx context.Context, topic string, difficulty Difficulty) (*GeneratedProblem, error)
}

// Cache is the port for the string-keyed cache backing hot reads.
// Implementations return ErrCacheMiss when the key is absent.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// TransactionManager runs a function inside a database transaction carried
// through the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
