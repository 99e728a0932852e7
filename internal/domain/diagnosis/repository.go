package diagnosis

import "context"

// Repository es el historial ordenado de diagnósticos.
type Repository interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) (int, error)
	Len(ctx context.Context) (int, error)
}
