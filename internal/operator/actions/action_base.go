package actions

import (
	"context"

	"github.com/nandervang/consultant-time-track-sub001/internal/storage"
)

// IAction is a unit of work executed inside one storage transaction.
// InvalidationPattern names the cache-key substring to drop after the
// transaction commits; empty means no cached projection is affected.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
	InvalidationPattern() string
}
