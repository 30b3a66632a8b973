package rent

import (
	"testing"
	"time"

	"rentoasis/internal/models"
	apperrors "rentoasis/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payment(id, unitID uint, amountCents int64, due time.Time, status string) models.RentPayment {
	p := models.RentPayment{
		UnitID:      unitID,
		TenantID:    1,
		AmountCents: amountCents,
		DueDate:     due,
		Status:      status,
	}
	p.ID = id
	return p
}

func april(day int) time.Time {
	return time.Date(2025, time.April, day, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeAprilWindow(t *testing.T) {
	payments := []models.RentPayment{
		payment(1, 1, 150000, april(1), models.PaymentStatusPaid),
		payment(2, 1, 150000, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), models.PaymentStatusPending),
		payment(3, 2, 160000, april(1), models.PaymentStatusOverdue),
		payment(4, 3, 220000, april(1), models.PaymentStatusPaid),
	}

	s, err := Summarize(payments, 2025, 4, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(370000), s.PaidAmountCents)
	assert.Equal(t, int64(0), s.PendingAmountCents)
	assert.Equal(t, int64(160000), s.OverdueAmountCents)
	assert.Equal(t, int64(530000), s.TotalAmountCents)
	assert.Equal(t, 2, s.PaidCount)
	assert.Equal(t, 0, s.PendingCount)
	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, 3, s.TotalCount)
	assert.Empty(t, s.UnrecognizedIDs)
}

func TestSummarizeBucketSumIdentity(t *testing.T) {
	payments := []models.RentPayment{
		payment(1, 1, 150000, april(1), models.PaymentStatusPaid),
		payment(2, 1, 150000, april(15), models.PaymentStatusPending),
		payment(3, 2, 160000, april(1), models.PaymentStatusOverdue),
	}

	s, err := Summarize(payments, 2025, 4, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), s.PaidAmountCents)
	assert.Equal(t, int64(150000), s.PendingAmountCents)
	assert.Equal(t, int64(160000), s.OverdueAmountCents)
	assert.Equal(t, s.PaidAmountCents+s.PendingAmountCents+s.OverdueAmountCents, s.TotalAmountCents)
	assert.Equal(t, int64(460000), s.TotalAmountCents)
	assert.Equal(t, s.PaidCount+s.PendingCount+s.OverdueCount, s.TotalCount)
}

func TestSummarizeIdempotent(t *testing.T) {
	payments := []models.RentPayment{
		payment(1, 1, 150000, april(1), models.PaymentStatusPaid),
		payment(2, 2, 160000, april(1), models.PaymentStatusOverdue),
	}

	first, err := Summarize(payments, 2025, 4, 0, nil)
	require.NoError(t, err)
	second, err := Summarize(payments, 2025, 4, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// 输入不被修改
	assert.Equal(t, models.PaymentStatusPaid, payments[0].Status)
	assert.Equal(t, int64(150000), payments[0].AmountCents)
}

func TestSummarizeInvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		s, err := Summarize(nil, 2025, month, 0, nil)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
}

func TestSummarizeInvalidYear(t *testing.T) {
	s, err := Summarize(nil, 0, 4, 0, nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestSummarizeEmptyInput(t *testing.T) {
	s, err := Summarize(nil, 2025, 4, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.TotalAmountCents)
	assert.Equal(t, 0, s.TotalCount)
}

func TestSummarizePropertyFilter(t *testing.T) {
	payments := []models.RentPayment{
		payment(1, 1, 150000, april(1), models.PaymentStatusPaid),
		payment(2, 2, 160000, april(1), models.PaymentStatusOverdue),
		payment(3, 9, 999900, april(1), models.PaymentStatusPaid), // 无归属映射
	}
	unitIndex := map[uint]uint{1: 10, 2: 20}

	s, err := Summarize(payments, 2025, 4, 10, unitIndex)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), s.TotalAmountCents)
	assert.Equal(t, 1, s.TotalCount)
}

func TestSummarizeUnrecognizedStatus(t *testing.T) {
	payments := []models.RentPayment{
		payment(1, 1, 150000, april(1), models.PaymentStatusPaid),
		payment(2, 1, 160000, april(1), "disputed"),
	}

	s, err := Summarize(payments, 2025, 4, 0, nil)
	require.NoError(t, err)

	// 未识别状态不进任何桶，但要上报
	assert.Equal(t, int64(150000), s.TotalAmountCents)
	assert.Equal(t, 1, s.TotalCount)
	assert.Equal(t, []uint{2}, s.UnrecognizedIDs)
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, float64(0), OccupancyRate(0, 0))
	assert.Equal(t, float64(0), OccupancyRate(3, 0))
	assert.Equal(t, float64(75), OccupancyRate(3, 4))
	assert.Equal(t, float64(100), OccupancyRate(4, 4))
}

func TestCollectionRate(t *testing.T) {
	assert.Equal(t, float64(0), CollectionRate(0, 0))
	assert.Equal(t, float64(0), CollectionRate(100, 0))
	assert.InDelta(t, 80.43, CollectionRate(370000, 460000), 0.01)
	assert.Equal(t, float64(100), CollectionRate(460000, 460000))
}
