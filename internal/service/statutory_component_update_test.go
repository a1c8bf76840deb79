package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/rules"
	"statutory-engine/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_RevalidatesMergedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sss, err := f.svc.Create(ctx, f.philippines.ID, socialSecurity(), "user-1")
	require.NoError(t, err)
	id := uuid.MustParse(sss.ID)

	tests := []struct {
		name     string
		patch    service.UpdateStatutoryComponentRequest
		wantCode string
	}{
		{
			name:     "employee percentage above 100",
			patch:    service.UpdateStatutoryComponentRequest{EmployeePercentage: service.SetDecimal(dec("100.5"))},
			wantCode: rules.CodeEmployeePercentage,
		},
		{
			name:     "employee percentage zero",
			patch:    service.UpdateStatutoryComponentRequest{EmployeePercentage: service.SetDecimal(dec("0"))},
			wantCode: rules.CodeEmployeePercentage,
		},
		{
			name:     "employer percentage cleared on a BOTH component",
			patch:    service.UpdateStatutoryComponentRequest{EmployerPercentage: service.SetDecimal(nil)},
			wantCode: rules.CodeEmployerPercentage,
		},
		{
			name:     "switch to employee-only keeps the employer share",
			patch:    service.UpdateStatutoryComponentRequest{ContributionType: strPtr(string(model.ContributionEmployee))},
			wantCode: rules.CodeUnexpectedEmployerPercent,
		},
		{
			name: "shape valid but against the PH mandate",
			patch: service.UpdateStatutoryComponentRequest{
				ContributionType:   strPtr(string(model.ContributionEmployee)),
				EmployerPercentage: service.SetDecimal(nil),
			},
			wantCode: rules.CodeContributionMandate,
		},
		{
			name:     "effective to before existing effective from",
			patch:    service.UpdateStatutoryComponentRequest{EffectiveTo: service.SetDate(timePtr(date(t, "2023-06-30")))},
			wantCode: rules.CodeDateOrdering,
		},
		{
			name:     "floor above an existing ceiling",
			patch:    service.UpdateStatutoryComponentRequest{WageCeiling: service.SetDecimal(dec("30000")), WageFloor: service.SetDecimal(dec("35000"))},
			wantCode: rules.CodeWageOrdering,
		},
		{
			name:     "malformed effective from",
			patch:    service.UpdateStatutoryComponentRequest{EffectiveFrom: strPtr("2024-13-01")},
			wantCode: service.CodeInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Update(ctx, f.philippines.ID, id, tt.patch, "user-1")
			requireRuleError(t, err, tt.wantCode)
		})
	}

	t.Run("record is unchanged after rejections", func(t *testing.T) {
		got, err := f.svc.Get(ctx, f.philippines.ID, id)
		require.NoError(t, err)
		assert.True(t, got.EmployeePercentage.Equal(*dec("4.5")))
		assert.True(t, got.EmployerPercentage.Equal(*dec("9.5")))
		assert.Nil(t, got.WageFloor)
	})
}

func TestUpdate_JurisdictionMandateOnMergedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	epf, err := f.svc.Create(ctx, f.india.ID, providentFund(), "user-1")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.india.ID, uuid.MustParse(epf.ID), service.UpdateStatutoryComponentRequest{
		EmployerPercentage: service.SetDecimal(dec("13")),
	}, "user-1")

	requireRuleError(t, err, rules.CodeEmployerRateMandate)
}

func TestUpdate_PartialPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// withholding carries no jurisdiction mandate, so its shape may change
	req := socialSecurity()
	req.ComponentName = "Withholding Tax"
	req.ComponentCode = "WHT"
	req.ComponentType = string(model.ComponentTypeTaxWithholding)
	sss, err := f.svc.Create(ctx, f.philippines.ID, req, "user-1")
	require.NoError(t, err)
	id := uuid.MustParse(sss.ID)

	var patch service.UpdateStatutoryComponentRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"contribution_type": "EMPLOYER",
		"employee_percentage": null,
		"employer_percentage": "10",
		"wage_ceiling": "35000",
		"display_order": 3
	}`), &patch))

	updated, err := f.svc.Update(ctx, f.philippines.ID, id, patch, "user-2")
	require.NoError(t, err)

	assert.Equal(t, "EMPLOYER", updated.ContributionType)
	assert.Nil(t, updated.EmployeePercentage)
	assert.True(t, updated.EmployerPercentage.Equal(*dec("10")))
	assert.True(t, updated.WageCeiling.Equal(*dec("35000")))
	assert.Equal(t, 3, updated.DisplayOrder)
	// untouched fields survive
	assert.Equal(t, sss.ComponentName, updated.ComponentName)
	assert.Equal(t, sss.EffectiveFrom, updated.EffectiveFrom)
	assert.True(t, updated.IsMandatory)

	t.Run("explicit null clears an optional field", func(t *testing.T) {
		var clear service.UpdateStatutoryComponentRequest
		require.NoError(t, json.Unmarshal([]byte(`{"wage_ceiling": null}`), &clear))

		got, err := f.svc.Update(ctx, f.philippines.ID, id, clear, "user-2")
		require.NoError(t, err)
		assert.Nil(t, got.WageCeiling)
		assert.True(t, got.EmployerPercentage.Equal(*dec("10")))
	})

	t.Run("empty patch keeps the record", func(t *testing.T) {
		got, err := f.svc.Update(ctx, f.philippines.ID, id, service.UpdateStatutoryComponentRequest{}, "user-2")
		require.NoError(t, err)
		assert.Equal(t, "EMPLOYER", got.ContributionType)
		assert.Equal(t, 3, got.DisplayOrder)
	})
}

func TestUpdate_RenameCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.india.ID, providentFund(), "user-1")
	require.NoError(t, err)
	lwf, err := f.svc.Create(ctx, f.india.ID, labourWelfare(), "user-1")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.india.ID, uuid.MustParse(lwf.ID), service.UpdateStatutoryComponentRequest{ComponentCode: strPtr("EPF")}, "user-1")
	requireRuleError(t, err, service.CodeDuplicateComponentCode)

	renamed, err := f.svc.Update(ctx, f.india.ID, uuid.MustParse(lwf.ID), service.UpdateStatutoryComponentRequest{ComponentCode: strPtr("LWF_MH")}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "LWF_MH", renamed.ComponentCode)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), f.india.ID, uuid.New(), service.UpdateStatutoryComponentRequest{}, "user-1")

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSupersede(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	epf, err := f.svc.Create(ctx, f.india.ID, providentFund(), "user-1")
	require.NoError(t, err)
	id := uuid.MustParse(epf.ID)

	successor := providentFund()
	successor.ComponentCode = "EPF_2025"
	successor.EffectiveFrom = "2025-04-01"
	successor.WageCeiling = dec("21000")

	t.Run("successor must start later", func(t *testing.T) {
		early := successor
		early.EffectiveFrom = "2024-01-02"
		_, err := f.svc.Supersede(ctx, f.india.ID, id, early, "user-1")
		requireRuleError(t, err, service.CodeSupersedeEffectiveFrom)
	})

	t.Run("successor keeps the component type", func(t *testing.T) {
		other := labourWelfare()
		other.EffectiveFrom = "2025-04-01"
		_, err := f.svc.Supersede(ctx, f.india.ID, id, other, "user-1")
		requireRuleError(t, err, service.CodeSupersedeType)
	})

	t.Run("successor cannot reuse the code", func(t *testing.T) {
		same := successor
		same.ComponentCode = "EPF"
		_, err := f.svc.Supersede(ctx, f.india.ID, id, same, "user-1")
		requireRuleError(t, err, service.CodeDuplicateComponentCode)

		// the failed attempt rolled back the closing of the old range
		got, err := f.svc.Get(ctx, f.india.ID, id)
		require.NoError(t, err)
		assert.Nil(t, got.EffectiveTo)
	})

	t.Run("successor must satisfy the mandates", func(t *testing.T) {
		bad := successor
		bad.EmployeePercentage = dec("10")
		_, err := f.svc.Supersede(ctx, f.india.ID, id, bad, "user-1")
		requireRuleError(t, err, rules.CodeEmployeeRateMandate)
	})

	res, err := f.svc.Supersede(ctx, f.india.ID, id, successor, "user-1")
	require.NoError(t, err)
	require.NotNil(t, res.Superseded.EffectiveTo)
	assert.Equal(t, "2025-03-31", *res.Superseded.EffectiveTo)
	assert.Equal(t, "EPF_2025", res.Successor.ComponentCode)

	for on, want := range map[string][]string{
		"2024-06-01": {"EPF"},
		"2025-03-31": {"EPF"},
		"2025-04-01": {"EPF_2025"},
	} {
		active, err := f.svc.ListActiveOn(ctx, f.india.ID, date(t, on))
		require.NoError(t, err)
		assert.Equal(t, want, codes(active), on)
	}

	t.Run("both records are announced", func(t *testing.T) {
		events := f.events.Events()
		require.GreaterOrEqual(t, len(events), 3)
		closing, next := events[len(events)-2], events[len(events)-1]
		assert.Equal(t, model.EventComponentUpdated, closing.Type)
		assert.Equal(t, id, closing.ComponentID)
		assert.Equal(t, model.EventComponentSuperseded, next.Type)
		assert.Equal(t, res.Successor.ID, next.ComponentID.String())
	})
}

type countingUpdates struct {
	repository.StatutoryComponentRepository
	updates int
}

func (c *countingUpdates) Update(ctx context.Context, component *model.StatutoryComponent) error {
	c.updates++
	return c.StatutoryComponentRepository.Update(ctx, component)
}

func TestSupersede_AlreadyClosedRangeIsLeftAlone(t *testing.T) {
	counter := &countingUpdates{}
	f := newFixture(t, func(r repository.StatutoryComponentRepository) repository.StatutoryComponentRepository {
		counter.StatutoryComponentRepository = r
		return counter
	})
	ctx := context.Background()

	req := labourWelfare()
	req.EffectiveTo = strPtr("2024-06-30")
	lwf, err := f.svc.Create(ctx, f.india.ID, req, "user-1")
	require.NoError(t, err)

	successor := labourWelfare()
	successor.ComponentCode = "LWF_2025"
	successor.EffectiveFrom = "2025-01-01"

	res, err := f.svc.Supersede(ctx, f.india.ID, uuid.MustParse(lwf.ID), successor, "user-1")
	require.NoError(t, err)

	require.NotNil(t, res.Superseded.EffectiveTo)
	assert.Equal(t, "2024-06-30", *res.Superseded.EffectiveTo)
	assert.Zero(t, counter.updates)

	events := f.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, model.EventComponentCreated, events[0].Type)
	assert.Equal(t, model.EventComponentSuperseded, events[1].Type)
}
