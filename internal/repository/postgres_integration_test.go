//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatutoryComponentRepository_Postgres(t *testing.T) {
	db := testutil.NewPostgresDB(t)
	repo := repository.NewStatutoryComponentRepository(db)
	txManager := repository.NewTransactionManager(db)
	ctx := context.Background()
	country := seedCountry(t, db, "IN")

	t.Run("concurrent inserts of one code leave exactly one row", func(t *testing.T) {
		const writers = 8
		var wg sync.WaitGroup
		errs := make([]error, writers)

		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = txManager.RunInTx(ctx, func(txCtx context.Context) error {
					return repo.Create(txCtx, component(country.ID, "RACE", i, "2024-01-01", nil))
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, repository.ErrDuplicateKey)
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("point-in-time resolution on date columns", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, component(country.ID, "PG_OLD", 1, "2023-01-01", datePtr("2023-12-31"))))
		require.NoError(t, repo.Create(ctx, component(country.ID, "PG_NEW", 1, "2024-01-01", nil)))

		rows, err := repo.ListActiveOn(ctx, country.ID, date("2023-12-31"))
		require.NoError(t, err)
		codes := make([]string, 0, len(rows))
		for _, r := range rows {
			codes = append(codes, r.ComponentCode)
		}
		assert.Contains(t, codes, "PG_OLD")
		assert.NotContains(t, codes, "PG_NEW")
	})

	t.Run("decimals round-trip at column precision", func(t *testing.T) {
		c := component(country.ID, "ESI", 2, "2024-01-01", nil)
		c.ComponentType = model.ComponentTypeSocialInsurance
		c.ContributionType = model.ContributionBoth
		c.EmployeePercentage = pct("0.75")
		c.EmployerPercentage = pct("3.25")
		require.NoError(t, repo.Create(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.75", found.EmployeePercentage.String())
		assert.Equal(t, "3.25", found.EmployerPercentage.String())
	})
}
