// Package ratelimit contains a rate limiter interface.
package ratelimit

import (
	"context"
)

//go:generate mockgen -destination=./mock/ratelimit.go -package=mock -source=ratelimit.go

// Limiter restricts calls per key to N per rolling time window.
// The state lives in an external service, implementations do no local
// accounting. A transport failure is an error, neither allow nor deny.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
