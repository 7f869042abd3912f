package repository

import (
	"context"

	"github.com/communehq/commune/internal/domain/entity"
)

// DeletionExecutor applies a deletion batch produced by a delete
// request. The whole batch runs in one transaction, in order.
type DeletionExecutor interface {
	Execute(ctx context.Context, batch entity.DeletionBatch) error
}
