package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	mem "asclepius-api/internal/adapters/storage/memory"
	"asclepius-api/internal/domain/diagnosis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string) diagnosis.Record {
	return diagnosis.Record{
		ID: id,
		Report: diagnosis.Report{
			Symptoms: "I have a slight runny nose and minor cough today",
			Duration: diagnosis.DurationOneDay,
			Severity: 3,
			Age:      30,
		},
		Tier:      diagnosis.TierMild,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ids(items []diagnosis.Record) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.ID)
	}
	return out
}

func TestHistoryRepo_AppendThenListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewHistoryRepo(0)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, rec(id)))

		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, items[len(items)-1].ID, "appended record must be last")
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(items))
}

func TestHistoryRepo_ListIsIdempotentAndReturnsACopy(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewHistoryRepo(0)
	require.NoError(t, repo.Append(ctx, rec("a")))
	require.NoError(t, repo.Append(ctx, rec("b")))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first[0].ID = "mutated"
	third, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", third[0].ID)
}

func TestHistoryRepo_ClearReturnsCountAndEmpties(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewHistoryRepo(0)

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repo.Append(ctx, rec("a")))
	require.NoError(t, repo.Append(ctx, rec("b")))

	n, err = repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	size, err := repo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, size)
}

func TestHistoryRepo_RejectsRecordWithoutID(t *testing.T) {
	repo := mem.NewHistoryRepo(0)
	err := repo.Append(context.Background(), rec(" "))
	assert.ErrorIs(t, err, mem.ErrIDRequired)
}

func TestHistoryRepo_LimitEvictsOldest(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewHistoryRepo(2)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Append(ctx, rec(id)))
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, ids(items))
}

func TestHistoryRepo_ConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewHistoryRepo(0)

	const writers, perWriter = 16, 200
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = repo.Append(ctx, rec(fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}

	// lectores compiten con escritores; cada snapshot debe estar ordenado por escritor
	for rdr := 0; rdr < 4; rdr++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				items, _ := repo.List(ctx)
				last := map[string]int{}
				for _, it := range items {
					var w, seq int
					_, _ = fmt.Sscanf(it.ID, "w%d-%d", &w, &seq)
					key := fmt.Sprint(w)
					if prev, ok := last[key]; ok && seq <= prev {
						t.Errorf("snapshot out of order for writer %d: %d after %d", w, seq, prev)
						return
					}
					last[key] = seq
				}
			}
		}()
	}
	wg.Wait()

	size, err := repo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, size)
}

func TestHistoryRepo_ClearRacingAppendsAccountsForEveryRecord(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewHistoryRepo(0)

	const total = 2000
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		cleared int
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			_ = repo.Append(ctx, rec(fmt.Sprintf("r%d", i)))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			n, _ := repo.Clear(ctx)
			mu.Lock()
			cleared += n
			mu.Unlock()
		}
	}()
	wg.Wait()

	remaining, err := repo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, cleared+remaining)
}
