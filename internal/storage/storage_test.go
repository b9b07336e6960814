package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseRepository runs the shared contract against one implementation
func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	user := "user-" + uuid.NewString()

	t.Run("missing selection", func(t *testing.T) {
		_, err := repo.GetSelection(ctx, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save and update selection", func(t *testing.T) {
		first, err := repo.SaveSelection(ctx, user, domain.StrategySafe4Percent)
		require.NoError(t, err)
		_, err = uuid.Parse(first.ID)
		require.NoError(t, err)
		assert.Equal(t, user, first.UserID)

		second, err := repo.SaveSelection(ctx, user, domain.StrategySimpleDepletion)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		got, err := repo.GetSelection(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategySimpleDepletion, got.Strategy)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := repo.SaveSelection(ctx, user, "YOLO")
		assert.ErrorContains(t, err, "unknown income strategy")
		_, err = repo.GetSelection(ctx, " ")
		assert.ErrorContains(t, err, "user id is required")
	})

	t.Run("assumptions", func(t *testing.T) {
		_, err := repo.GetAssumptions(ctx, user)
		assert.ErrorIs(t, err, ErrNotFound)

		params := domain.PlanningParameters{
			InflationRate:           decimal.RequireFromString("6.5"),
			MFReturn:                decimal.NewFromInt(11),
			SIPStepUpPercent:        decimal.NewFromInt(8),
			StepUpEffectiveFromYear: 2,
			IncomeStrategy:          domain.StrategySustainable,
			RateReduction:           domain.RateReduction{Enabled: true, Percent: decimal.RequireFromString("0.25"), EveryYears: 3},
		}
		require.NoError(t, repo.SaveAssumptions(ctx, user, params))

		got, err := repo.GetAssumptions(ctx, user)
		require.NoError(t, err)
		assert.True(t, got.InflationRate.Equal(params.InflationRate))
		assert.True(t, got.MFReturn.Equal(params.MFReturn))
		assert.Equal(t, 2, got.StepUpEffectiveFromYear)
		assert.Equal(t, params.RateReduction.EveryYears, got.RateReduction.EveryYears)
		assert.True(t, got.RateReduction.Percent.Equal(params.RateReduction.Percent))
	})
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetSelection(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSettings_UpdatedAt(t *testing.T) {
	s := newSettings(&memoryStore{data: map[string][]byte{}})
	fixed := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	sel, err := s.SaveSelection(context.Background(), "u1", domain.StrategySustainable)
	require.NoError(t, err)
	assert.Equal(t, fixed, sel.UpdatedAt)
}

func TestBadgerRepository_InMemory(t *testing.T) {
	cfg := DefaultBadgerConfig()
	cfg.InMemory = true
	cfg.SyncWrites = false
	repo, err := NewBadgerRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestBadgerRepository_Persists(t *testing.T) {
	cfg := DefaultBadgerConfig()
	cfg.Path = t.TempDir()
	ctx := context.Background()

	repo, err := NewBadgerRepository(cfg)
	require.NoError(t, err)
	saved, err := repo.SaveSelection(ctx, "u1", domain.StrategySafe4Percent)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewBadgerRepository(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSelection(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, domain.StrategySafe4Percent, got.Strategy)
}

func TestBadgerRepository_RequiresPath(t *testing.T) {
	_, err := NewBadgerRepository(BadgerConfig{})
	assert.ErrorContains(t, err, "path is required")
}

func TestRedisRepository(t *testing.T) {
	addr := os.Getenv("CORPUS_TEST_REDIS")
	if addr == "" {
		t.Skip("set CORPUS_TEST_REDIS to a redis address to run")
	}
	repo, err := NewRedisRepository(context.Background(), RedisConfig{Addr: addr, TTL: time.Minute})
	require.NoError(t, err)
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = Open(ctx, Config{Kind: "BADGER"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = Open(ctx, Config{Kind: "etcd"})
	assert.ErrorContains(t, err, "unknown store")
}

func TestPlanDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	fallback := domain.PlanningParameters{
		InflationRate:  decimal.NewFromInt(6),
		IncomeStrategy: domain.StrategySustainable,
	}

	got, err := PlanDefaults(ctx, repo, "", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	got, err = PlanDefaults(ctx, repo, "alice", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got, "nothing saved yet")

	_, err = repo.SaveSelection(ctx, "alice", domain.StrategySafe4Percent)
	require.NoError(t, err)
	got, err = PlanDefaults(ctx, repo, "alice", fallback)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySafe4Percent, got.IncomeStrategy)
	assert.True(t, got.InflationRate.Equal(decimal.NewFromInt(6)))

	saved := fallback
	saved.InflationRate = decimal.NewFromInt(8)
	require.NoError(t, repo.SaveAssumptions(ctx, "alice", saved))
	got, err = PlanDefaults(ctx, repo, "alice", fallback)
	require.NoError(t, err)
	assert.True(t, got.InflationRate.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, domain.StrategySafe4Percent, got.IncomeStrategy, "selection wins over saved assumptions")
}
