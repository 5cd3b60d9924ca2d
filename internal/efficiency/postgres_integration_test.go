package efficiency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BlueprintCost_Go/internal/database"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/testing/pgtest"
)

func TestPostgresRepository_Integration(t *testing.T) {
	connStr := pgtest.Require(t)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, connStr, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := database.OpenDB(pool)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(ctx, db))

	repo := NewPostgresRepository(db)

	_, err = repo.Get(ctx, 691)
	assert.ErrorIs(t, err, domain.ErrBlueprintNotFound)

	require.NoError(t, repo.Upsert(ctx, 691, domain.Efficiency{ME: 10, TE: 20}))
	require.NoError(t, repo.Upsert(ctx, 691, domain.Efficiency{ME: 8, TE: 16}))
	require.NoError(t, repo.Upsert(ctx, 11401, domain.Efficiency{ME: 2, TE: 4}))

	eff, err := repo.Get(ctx, 691)
	require.NoError(t, err)
	assert.Equal(t, domain.Efficiency{ME: 8, TE: 16}, eff)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.TypeID(691), list[0].BlueprintID)
	assert.False(t, list[0].UpdatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, 691))
	assert.ErrorIs(t, repo.Delete(ctx, 691), domain.ErrBlueprintNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.EfficiencyOverrides{11401: {ME: 2, TE: 4}}, all)
}
