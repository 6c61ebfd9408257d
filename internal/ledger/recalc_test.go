package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner int64 = 7

func march() Month { return Month{Year: 2025, Month: time.March} }

// marchStore is the base fixture: two March entries, no prior month.
//
//	2025-03-05  +100.00  → 100.00
//	2025-03-10   -30.00  →  70.00
func marchStore() *fakeStore {
	return &fakeStore{
		entries: []Entry{
			{ID: 1, OwnerID: owner, Date: date(2025, time.March, 5), Name: "Salary", Amount: dec("100"), BalanceAfter: nullDec("100.00")},
			{ID: 2, OwnerID: owner, Date: date(2025, time.March, 10), Name: "Groceries", Amount: dec("-30"), BalanceAfter: nullDec("70.00")},
		},
	}
}

func newRecalculator(f *fakeStore) *Recalculator {
	return NewRecalculator(f, f, testLogger())
}

func TestRecalculate_InsertMidMonth(t *testing.T) {
	f := marchStore()
	f.entries = append(f.entries, Entry{
		ID: 3, OwnerID: owner, Date: date(2025, time.March, 7), Name: "Refund", Amount: dec("20"),
	})
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 3, march(), noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"100.00", "120.00", "90.00"}, got, spew.Sdump(f.entries))
}

func TestRecalculateMonth_AfterDelete(t *testing.T) {
	f := marchStore()
	f.entries = append(f.entries, Entry{
		ID: 3, OwnerID: owner, Date: date(2025, time.March, 7), Name: "Refund", Amount: dec("20"), BalanceAfter: nullDec("120.00"),
	})
	// the cascade from the insert left entry 2 at 90.00
	f.entries[1].BalanceAfter = nullDec("90.00")
	r := newRecalculator(f)

	// delete the middle entry, then recalculate its month
	f.entries = append(f.entries[:2], f.entries[3:]...)
	err := r.Recalculate(context.Background(), owner, 3, march(), noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"100.00", "70.00"}, got, spew.Sdump(f.entries))
}

func TestRecalculate_CascadeLeavesEarlierEntriesUntouched(t *testing.T) {
	f := &fakeStore{
		entries: []Entry{
			{ID: 1, OwnerID: owner, Date: date(2025, time.March, 1), Amount: dec("10"), BalanceAfter: nullDec("10.00")},
			{ID: 2, OwnerID: owner, Date: date(2025, time.March, 2), Amount: dec("10"), BalanceAfter: nullDec("20.00")},
			{ID: 3, OwnerID: owner, Date: date(2025, time.March, 3), Amount: dec("50"), BalanceAfter: nullDec("30.00")}, // amount edited 10 → 50
			{ID: 4, OwnerID: owner, Date: date(2025, time.March, 4), Amount: dec("10"), BalanceAfter: nullDec("40.00")},
			{ID: 5, OwnerID: owner, Date: date(2025, time.March, 5), Amount: dec("10"), BalanceAfter: nullDec("50.00")},
		},
	}
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 3, march(), noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"10.00", "20.00", "70.00", "80.00", "90.00"}, got)
	assert.Equal(t, []int64{3, 4, 5}, f.writes, "entries before the edited one must not be rewritten")
}

func TestRecalculate_ExplicitBalanceWins(t *testing.T) {
	f := marchStore()
	r := newRecalculator(f)

	// owner pins entry 1 to 500 regardless of its amount
	err := r.Recalculate(context.Background(), owner, 1, march(), nullDec("500.00"))
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"500.00", "470.00"}, got)
}

func TestRecalculate_FirstOfMonthUsesPreviousMonthBalance(t *testing.T) {
	f := marchStore()
	f.entries = append(f.entries, Entry{
		ID: 10, OwnerID: owner, Date: date(2025, time.April, 2), Name: "Rent", Amount: dec("-40"),
	})
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 10, Month{2025, time.April}, noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, Month{2025, time.April})
	assert.Equal(t, []string{"30.00"}, got, "baseline is March's closing 70.00")
}

func TestRecalculate_FirstMonthEverStartsFromZero(t *testing.T) {
	f := &fakeStore{
		entries: []Entry{
			{ID: 1, OwnerID: owner, Date: date(2025, time.March, 5), Amount: dec("100")},
		},
	}
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 1, march(), noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"100.00"}, got)
}

func TestRecalculate_OpeningAdjustmentFeedsFirstEntry(t *testing.T) {
	f := marchStore()
	f.entries = append(f.entries, Entry{
		ID: 10, OwnerID: owner, Date: date(2025, time.April, 2), Amount: dec("-40"),
	})
	f.adjustments = []Adjustment{
		{ID: 1, OwnerID: owner, Year: 2025, Month: time.April, Amount: dec("150.50"), SourceYear: 2025, SourceMonth: time.March},
	}
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 10, Month{2025, time.April}, noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, Month{2025, time.April})
	assert.Equal(t, []string{"180.50"}, got, "70.00 closing + 150.50 adjustment - 40.00")
}

func TestRecalculate_IdempotentOnConsistentMonth(t *testing.T) {
	f := marchStore()
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 1, march(), noExplicit())
	require.NoError(t, err)
	assert.Empty(t, f.writes, "a consistent month must not be rewritten")

	err = r.RecalculateMonth(context.Background(), owner, march())
	require.NoError(t, err)
	assert.Empty(t, f.writes)
}

func TestRecalculate_RoundsHalfAwayFromZero(t *testing.T) {
	f := &fakeStore{
		entries: []Entry{
			{ID: 1, OwnerID: owner, Date: date(2025, time.March, 5), Amount: dec("10.005")},
		},
	}
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 1, march(), noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"10.01"}, got)
}

func TestRecalculate_NullStoredBalanceTreatedAsZero(t *testing.T) {
	f := &fakeStore{
		entries: []Entry{
			{ID: 1, OwnerID: owner, Date: date(2025, time.March, 5), Amount: dec("100")}, // balance never computed
			{ID: 2, OwnerID: owner, Date: date(2025, time.March, 10), Amount: dec("-30")},
		},
	}
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 2, march(), noExplicit())
	require.NoError(t, err)

	entries, _ := f.ListMonth(context.Background(), owner, march())
	assert.False(t, entries[0].BalanceAfter.Valid, "earlier entry stays untouched")
	assert.Equal(t, "-30.00", entries[1].BalanceAfter.Decimal.StringFixed(2))
}

func TestRecalculate_WriteFailureStopsCascade(t *testing.T) {
	f := &fakeStore{
		entries: []Entry{
			{ID: 1, OwnerID: owner, Date: date(2025, time.March, 1), Amount: dec("5"), BalanceAfter: nullDec("5.00")},
			{ID: 2, OwnerID: owner, Date: date(2025, time.March, 2), Amount: dec("99"), BalanceAfter: nullDec("10.00")},
			{ID: 3, OwnerID: owner, Date: date(2025, time.March, 3), Amount: dec("5"), BalanceAfter: nullDec("15.00")},
			{ID: 4, OwnerID: owner, Date: date(2025, time.March, 4), Amount: dec("5"), BalanceAfter: nullDec("20.00")},
		},
		failWrites: 2,
	}
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 2, march(), noExplicit())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []int64{2, 3}, f.writes, "writes stop at the first failure")
}

func TestRecalculate_MissingEntryFallsBackToFullMonth(t *testing.T) {
	f := marchStore()
	f.entries[0].BalanceAfter = decimal.NullDecimal{}
	f.entries[1].BalanceAfter = nullDec("999.00")
	r := newRecalculator(f)

	err := r.Recalculate(context.Background(), owner, 42, march(), noExplicit())
	require.NoError(t, err)

	got := f.balances(context.Background(), owner, march())
	assert.Equal(t, []string{"100.00", "70.00"}, got)
}

func TestMonth_NextPrevWrap(t *testing.T) {
	dec25 := Month{Year: 2025, Month: time.December}
	jan26 := Month{Year: 2026, Month: time.January}

	assert.Equal(t, jan26, dec25.Next())
	assert.Equal(t, dec25, jan26.Prev())
	assert.Equal(t, Month{2025, time.April}, Month{2025, time.March}.Next())
}

func TestMonth_Bounds(t *testing.T) {
	start, end := Month{2025, time.March}.Bounds()
	assert.Equal(t, date(2025, time.March, 1), start)
	assert.Equal(t, date(2025, time.April, 1), end)

	m := MonthOf(date(2025, time.March, 31))
	assert.True(t, m.Contains(date(2025, time.March, 1)))
	assert.False(t, m.Contains(date(2025, time.April, 1)))
	assert.Equal(t, "2025-03", m.String())
}
