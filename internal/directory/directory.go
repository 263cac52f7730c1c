// Package directory contains an interface for the external user directory.
package directory

import (
	"context"
	"fmt"

	"github.com/emotter/emotter/internal/entities"
)

//go:generate mockgen -destination=./mock/directory.go -package=mock -source=directory.go

// MaxBatchIDs is the largest amount of ids the directory accepts per call.
const MaxBatchIDs = 100

// ErrTooManyIDs returned when more than MaxBatchIDs ids are requested at once.
var ErrTooManyIDs = fmt.Errorf("too many ids requested")

// ErrMissingUsername returned when a directory record has no username.
// It means the directory data is corrupted, the record is unusable.
var ErrMissingUsername = fmt.Errorf("user record has no username")

// Directory provides client-safe views of external user records.
type Directory interface {
	GetAuthors(ctx context.Context, ids []string) ([]*entities.Author, error)
}
