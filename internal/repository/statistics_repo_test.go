package repository_test

import (
	"context"
	"testing"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	components := repository.NewStatutoryComponentRepository(db)
	stats := repository.NewStatisticsRepository(db)
	india := seedCountry(t, db, "IN")
	philippines := seedCountry(t, db, "PH")

	pf := component(india.ID, "PF", 1, "2024-01-01", nil)
	pf.IsMandatory = true
	closed := component(india.ID, "PF-2023", 2, "2023-01-01", datePtr("2023-12-31"))
	inactive := component(india.ID, "LWF", 3, "2024-01-01", nil)
	inactive.ComponentType = model.ComponentTypeLabourWelfareFund
	inactive.IsActive = false
	other := component(philippines.ID, "SSS", 1, "2024-01-01", nil)
	for _, c := range []*model.StatutoryComponent{pf, closed, inactive, other} {
		require.NoError(t, components.Create(ctx, c))
	}

	t.Run("count by type", func(t *testing.T) {
		counts, err := stats.CountByType(ctx, india.ID)
		require.NoError(t, err)
		require.Len(t, counts, 2)

		assert.Equal(t, model.ComponentTypeLabourWelfareFund, counts[0].ComponentType)
		assert.Equal(t, 1, counts[0].Total)
		assert.Equal(t, 0, counts[0].Active)

		assert.Equal(t, model.ComponentTypeProvidentFund, counts[1].ComponentType)
		assert.Equal(t, 2, counts[1].Total)
		assert.Equal(t, 2, counts[1].Active)
		assert.Equal(t, 1, counts[1].Mandatory)
	})

	t.Run("count effective on", func(t *testing.T) {
		n, err := stats.CountEffectiveOn(ctx, india.ID, date("2024-06-01"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = stats.CountEffectiveOn(ctx, india.ID, date("2023-12-31"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = stats.CountEffectiveOn(ctx, india.ID, date("2022-12-31"))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unknown country", func(t *testing.T) {
		counts, err := stats.CountByType(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, counts)
	})
}
