package repository_test

import (
	"context"
	"testing"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestCountryRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewCountryRepository(db)
	ctx := context.Background()

	india := seedCountry(t, db, "IN")
	retired := &model.Country{Code: "XX", Name: "Retired", TaxYearStartMonth: 1, IsActive: false}
	require.NoError(t, repo.Create(ctx, retired))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, india.ID)
		require.NoError(t, err)
		assert.Equal(t, "IN", found.Code)
	})

	t.Run("find by id missing", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("find by code is case-insensitive on input", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "in")
		require.NoError(t, err)
		assert.Equal(t, india.ID, found.ID)
	})

	t.Run("list", func(t *testing.T) {
		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "IN", active[0].Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		dup := &model.Country{Code: "IN", Name: "Again", TaxYearStartMonth: 4, IsActive: true}
		assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateKey)
	})
}

func TestRegionConfigurationRepository_ListByCountry(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewRegionConfigurationRepository(db)
	ctx := context.Background()

	india := seedCountry(t, db, "IN")
	philippines := seedCountry(t, db, "PH")

	for _, cfg := range []*model.RegionConfiguration{
		{CountryID: india.ID, Key: "z_other", Value: datatypes.JSON(`{}`), IsActive: true},
		{CountryID: india.ID, Key: model.RegionConfigKeyStatutoryRules, Value: datatypes.JSON(`{"PROFESSIONAL_TAX":{"mandatory":true}}`), IsActive: false},
		{CountryID: philippines.ID, Key: model.RegionConfigKeyStatutoryRules, Value: datatypes.JSON(`{}`), IsActive: true},
	} {
		require.NoError(t, repo.Create(ctx, cfg))
	}

	configs, err := repo.ListByCountry(ctx, india.ID)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, model.RegionConfigKeyStatutoryRules, configs[0].Key)
	assert.False(t, configs[0].IsActive)
	assert.JSONEq(t, `{"PROFESSIONAL_TAX":{"mandatory":true}}`, string(configs[0].Value))
	assert.Equal(t, "z_other", configs[1].Key)

	none, err := repo.ListByCountry(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
