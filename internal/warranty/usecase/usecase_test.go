package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/app/apptest"
	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	salesdto "github.com/fekuna/omnipos-stock-service/internal/sales/dto"
	"github.com/fekuna/omnipos-stock-service/internal/warranty/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(t *testing.T, env *apptest.Env, typ model.WarrantyType, months int) *model.Warranty {
	t.Helper()
	w, err := env.Warranty.CreateTemplate(context.Background(), &dto.CreateTemplateInput{
		WarrantyNumber: "W-" + typ.String(),
		WarrantyType:   typ,
		Duration:       months,
	})
	require.NoError(t, err)
	return w
}

// soldUnit sells one unit of a fresh serial-tracked product linked to the
// given templates.
func soldUnit(t *testing.T, env *apptest.Env, templates ...*model.Warranty) model.ProductUnit {
	t.Helper()
	ctx := context.Background()

	p := env.Product(t, true, "100")
	for _, w := range templates {
		require.NoError(t, env.Warranty.LinkProduct(ctx, p.ID, w.ID))
	}
	env.Register(t, env.Deliver(t, p.ID, 1), "SN-"+p.SKU)

	so, err := env.Sales.CreateSalesOrder(ctx, &salesdto.CreateSalesOrderInput{
		CustomerID: "customer-1",
		Lines:      []salesdto.LineInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, so.Items[0].Units, 1)
	return so.Items[0].Units[0]
}

func TestCreateTemplate_Validation(t *testing.T) {
	env := apptest.New(t)

	tests := []struct {
		name  string
		input dto.CreateTemplateInput
	}{
		{name: "unknown type", input: dto.CreateTemplateInput{WarrantyNumber: "W-1", WarrantyType: 3, Duration: 12}},
		{name: "zero duration", input: dto.CreateTemplateInput{WarrantyNumber: "W-1", WarrantyType: model.WarrantyConsumer}},
		{name: "missing number", input: dto.CreateTemplateInput{WarrantyType: model.WarrantyConsumer, Duration: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Warranty.CreateTemplate(context.Background(), &tt.input)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestSale_AttachesOneWindowPerType(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	consumer := template(t, env, model.WarrantyConsumer, 12)
	manufacturer := template(t, env, model.WarrantyManufacturer, 24)
	spare := template(t, env, model.WarrantyConsumer, 6)

	u := soldUnit(t, env, consumer, manufacturer, spare)

	lookup, err := env.Warranty.LookupUnitWarranty(ctx, u.ProductID, u.SerialNumber)
	require.NoError(t, err)
	require.Len(t, lookup.Warranties, 2)
	assert.True(t, lookup.Eligible)

	byType := map[model.WarrantyType]model.WarrantyUnit{}
	for _, v := range lookup.Warranties {
		byType[v.WarrantyUnit.WarrantyType] = v.WarrantyUnit
	}
	assert.Equal(t, consumer.ID, byType[model.WarrantyConsumer].WarrantyID)
	assert.Equal(t, manufacturer.ID, byType[model.WarrantyManufacturer].WarrantyID)
	assert.Equal(t, u.DateOfSale.AddDate(0, 24, 0), byType[model.WarrantyManufacturer].WarrantyEnd)

	_, err = env.Warranty.AttachWarranty(ctx, u.ID, spare.ID, env.Clock.Now())
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSale_WithoutLinkedWarranty(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	u := soldUnit(t, env)

	assert.Nil(t, u.WarrantyID)
	lookup, err := env.Warranty.LookupUnitWarranty(ctx, u.ProductID, u.SerialNumber)
	require.NoError(t, err)
	assert.Empty(t, lookup.Warranties)
	assert.False(t, lookup.Eligible)

	_, err = env.Warranty.CreateClaim(ctx, &dto.CreateClaimInput{
		ProductUnitID: u.ID,
		ClaimType:     model.ClaimRefund,
		Priority:      model.PriorityHigh,
	})
	assert.ErrorIs(t, err, apperror.ErrNoActiveWarranty)
}

func TestUpdateTemplate_LeavesIssuedWindowsAlone(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	w := template(t, env, model.WarrantyConsumer, 12)
	before := soldUnit(t, env, w)

	longer := 36
	updated, err := env.Warranty.UpdateTemplate(ctx, &dto.UpdateTemplateInput{ID: w.ID, Duration: &longer})
	require.NoError(t, err)
	assert.Equal(t, 36, updated.Duration)
	assert.Equal(t, w.WarrantyNumber, updated.WarrantyNumber)

	after := soldUnit(t, env, updated)

	old, err := env.Warranty.LookupUnitWarranty(ctx, before.ProductID, before.SerialNumber)
	require.NoError(t, err)
	assert.Equal(t, before.DateOfSale.AddDate(0, 12, 0), old.Warranties[0].WarrantyUnit.WarrantyEnd)

	fresh, err := env.Warranty.LookupUnitWarranty(ctx, after.ProductID, after.SerialNumber)
	require.NoError(t, err)
	assert.Equal(t, after.DateOfSale.AddDate(0, 36, 0), fresh.Warranties[0].WarrantyUnit.WarrantyEnd)
}

func TestCreateClaim_OnlyConsumerWarrantyCounts(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	consumer := template(t, env, model.WarrantyConsumer, 1)
	manufacturer := template(t, env, model.WarrantyManufacturer, 24)
	u := soldUnit(t, env, consumer, manufacturer)

	claim := &dto.CreateClaimInput{
		ProductUnitID:     u.ID,
		ClaimType:         model.ClaimReplacement,
		Priority:          model.PriorityLow,
		ResolutionDetails: "screen flicker",
		CreatedBy:         "user-1",
	}
	c, err := env.Warranty.CreateClaim(ctx, claim)
	require.NoError(t, err)
	assert.Equal(t, consumer.ID, c.WarrantyID)
	require.NotNil(t, c.CreatedBy)
	assert.Equal(t, "user-1", *c.CreatedBy)

	// the manufacturer window is still open but does not admit claims
	env.Clock.Advance(45 * 24 * time.Hour)
	_, err = env.Warranty.CreateClaim(ctx, claim)
	assert.ErrorIs(t, err, apperror.ErrNoActiveWarranty)

	lookup, err := env.Warranty.LookupUnitWarranty(ctx, u.ProductID, u.SerialNumber)
	require.NoError(t, err)
	assert.False(t, lookup.Eligible)

	claims, err := env.Warranty.ListClaims(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, claims, 1)
}

func TestCreateClaim_Rejections(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input dto.CreateClaimInput
		want  error
	}{
		{name: "unknown unit", input: dto.CreateClaimInput{ProductUnitID: "missing", ClaimType: model.ClaimRepair, Priority: model.PriorityLow}, want: apperror.ErrNotFound},
		{name: "bad claim type", input: dto.CreateClaimInput{ProductUnitID: "u-1", ClaimType: "EXCHANGE", Priority: model.PriorityLow}, want: apperror.ErrValidation},
		{name: "bad priority", input: dto.CreateClaimInput{ProductUnitID: "u-1", ClaimType: model.ClaimRepair, Priority: "URGENT"}, want: apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Warranty.CreateClaim(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLinkProduct(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	p := env.Product(t, true, "100")
	w := template(t, env, model.WarrantyConsumer, 12)

	require.NoError(t, env.Warranty.LinkProduct(ctx, p.ID, w.ID))
	require.NoError(t, env.Warranty.LinkProduct(ctx, p.ID, w.ID), "linking twice is a no-op")

	assert.ErrorIs(t, env.Warranty.LinkProduct(ctx, "missing", w.ID), apperror.ErrNotFound)
	assert.ErrorIs(t, env.Warranty.LinkProduct(ctx, p.ID, "missing"), apperror.ErrNotFound)
	assert.ErrorIs(t, env.Warranty.LinkProduct(ctx, "", w.ID), apperror.ErrValidation)
}
