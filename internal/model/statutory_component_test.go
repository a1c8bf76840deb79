package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestStatutoryComponent_EffectiveOn(t *testing.T) {
	to := mustDate(t, "2024-12-31")
	c := &StatutoryComponent{
		EffectiveFrom: mustDate(t, "2024-01-01"),
		EffectiveTo:   &to,
		IsActive:      true,
	}

	tests := []struct {
		name string
		on   time.Time
		want bool
	}{
		{"before start", mustDate(t, "2023-12-31"), false},
		{"first day", mustDate(t, "2024-01-01"), true},
		{"last day is inclusive", mustDate(t, "2024-12-31"), true},
		{"last day with clock time", time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), true},
		{"after end", mustDate(t, "2025-01-01"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.EffectiveOn(tt.on))
		})
	}

	t.Run("open ended", func(t *testing.T) {
		open := &StatutoryComponent{EffectiveFrom: mustDate(t, "2024-01-01"), IsActive: true}
		assert.True(t, open.EffectiveOn(mustDate(t, "2099-01-01")))
	})

	t.Run("inactive never resolves", func(t *testing.T) {
		inactive := &StatutoryComponent{EffectiveFrom: mustDate(t, "2024-01-01")}
		assert.False(t, inactive.EffectiveOn(mustDate(t, "2024-06-01")))
	})
}

func TestStatutoryComponent_Clone(t *testing.T) {
	pct := decimal.NewFromInt(12)
	to := mustDate(t, "2024-12-31")
	orig := StatutoryComponent{ComponentCode: "EPF", EmployeePercentage: &pct, EffectiveTo: &to}

	clone := orig.Clone()
	*clone.EmployeePercentage = decimal.NewFromInt(10)
	*clone.EffectiveTo = mustDate(t, "2030-01-01")

	assert.True(t, orig.EmployeePercentage.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "2024-12-31", FormatDate(*orig.EffectiveTo))
	assert.Nil(t, clone.EmployerPercentage)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-04-01")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "2024-04-01", FormatDate(d))

	_, err = ParseDate("01/04/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestComponentEnums(t *testing.T) {
	assert.True(t, ComponentTypeProvidentFund.IsValid())
	assert.False(t, ComponentType("BONUS").IsValid())
	assert.True(t, ContributionBoth.IsValid())
	assert.False(t, ContributionType("").IsValid())
	assert.True(t, CalculationBasis("CAPPED_AMOUNT").IsValid())
	assert.False(t, CalculationBasis("NET_SALARY").IsValid())
}

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("create: %w", InvalidRule("INVALID_WAGE_RANGE", "wage ceiling must be greater than wage floor"))

	assert.True(t, errors.Is(err, ErrInvalidComponentRule))
	assert.True(t, errors.Is(err, &DomainError{Kind: KindInvalidComponentRule, Code: "INVALID_WAGE_RANGE"}))
	assert.False(t, errors.Is(err, &DomainError{Kind: KindInvalidComponentRule, Code: "INVALID_AMOUNT_RANGE"}))
	assert.False(t, errors.Is(err, ErrNotFound))

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "wage ceiling must be greater than wage floor", de.Error())
}

func TestStorageFailure_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"statutory_components\" does not exist")
	err := StorageFailure(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "STORAGE_FAILURE", err.Code)
}
