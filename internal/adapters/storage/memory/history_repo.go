package memory

import (
	"context"
	"strings"
	"sync"

	"asclepius-api/internal/domain/diagnosis"
)

type historyRepo struct {
	mu    sync.RWMutex
	items []diagnosis.Record
	limit int
}

// NewHistoryRepo devuelve un historial en memoria. limit <= 0 = sin límite;
// con limit > 0, Append descarta los registros más viejos.
func NewHistoryRepo(limit int) diagnosis.Repository {
	if limit < 0 {
		limit = 0
	}
	return &historyRepo{
		items: make([]diagnosis.Record, 0),
		limit: limit,
	}
}

func (r *historyRepo) Append(ctx context.Context, rec diagnosis.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return ErrIDRequired
	}

	r.items = append(r.items, rec)
	if r.limit > 0 && len(r.items) > r.limit {
		drop := len(r.items) - r.limit
		// copia a un slice nuevo para que los descartados se puedan liberar
		kept := make([]diagnosis.Record, r.limit)
		copy(kept, r.items[drop:])
		r.items = kept
	}
	return nil
}

func (r *historyRepo) List(ctx context.Context) ([]diagnosis.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diagnosis.Record, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *historyRepo) Clear(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.items)
	r.items = make([]diagnosis.Record, 0)
	return n, nil
}

func (r *historyRepo) Len(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}
