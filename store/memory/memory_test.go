package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
	"github.com/warp/salary-engine/store/memory"
)

func TestMemory_SaveGetList(t *testing.T) {
	// GIVEN: Payslips saved out of chronological order
	ctx := context.Background()
	store := memory.New()
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	var ids []string
	for _, offset := range []int{1, 0, 2} {
		e, err := payroll.NewIntern("Ana", 10*(offset+1), false)
		require.NoError(t, err)
		slip := payroll.NewPayslip(e)
		slip.CreatedAt = base.Add(time.Duration(offset) * time.Hour)
		require.NoError(t, store.SavePayslip(ctx, slip))
		ids = append(ids, slip.ID)
	}

	// WHEN: Listing
	all, err := store.ListPayslips(ctx, 0)
	require.NoError(t, err)

	// THEN: Newest first
	require.Len(t, all, 3)
	assert.Equal(t, 30, all[0].Hours)
	assert.Equal(t, 20, all[1].Hours)
	assert.Equal(t, 10, all[2].Hours)

	limited, err := store.ListPayslips(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	// AND: Every ID still resolves after the reordering
	for _, id := range ids {
		got, err := store.GetPayslip(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
	}
}

func TestMemory_DuplicateAndMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	e, err := payroll.NewFreelancer("Pedro", 120, 3, false)
	require.NoError(t, err)
	slip := payroll.NewPayslip(e)

	require.NoError(t, store.SavePayslip(ctx, slip))
	assert.ErrorIs(t, store.SavePayslip(ctx, slip), generic.ErrDuplicatePayslip)

	got, err := store.GetPayslip(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	e, err := payroll.NewPermanent("Maria", 200, false)
	require.NoError(t, err)
	slip := payroll.NewPayslip(e)
	require.NoError(t, store.SavePayslip(ctx, slip))

	got, err := store.GetPayslip(ctx, slip.ID)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := store.GetPayslip(ctx, slip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", again.Name)
}
