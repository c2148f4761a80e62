package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/simplespend/simplespend/internal/test_utils"
	"github.com/simplespend/simplespend/pkg/attachment"
)

func TestBuildDependencies_DeletingAnExpenseForgetsItsAttachment(t *testing.T) {
	// given
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	deps := BuildDependencies(db)

	created, err := deps.ExpenseService.Create(ctx, "Dinner", decimal.RequireFromString("38.00"), "식비",
		time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	deps.AttachmentStore.Attach(created.ID, attachment.Image{Data: []byte("receipt"), ContentType: "image/jpeg"})

	// when
	err = deps.ExpenseService.Delete(ctx, created.ID)

	// then
	require.NoError(t, err)
	assert.False(t, deps.AttachmentStore.Has(created.ID))
}

func TestBuildDependencies_ListReflectsCompletedWrites(t *testing.T) {
	// given
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	deps := BuildDependencies(db)

	// when
	created, err := deps.ExpenseService.Create(ctx, "Coffee", decimal.RequireFromString("4.50"), "카페/간식",
		time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// then: no eventual-consistency window between write and read
	listed, err := deps.ExpenseService.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}
