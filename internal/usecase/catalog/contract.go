package catalog

import "context"

// Store is the CRUD surface of one entity table.
type Store[T any] interface {
	List(ctx context.Context, limit, offset int) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id int64, rec T) (T, error)
	Delete(ctx context.Context, id int64) error
}
