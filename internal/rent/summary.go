package rent

import (
	"fmt"

	"rentoasis/internal/models"
	"rentoasis/pkg/errors"
)

// Summary 某个账期窗口内按状态分组的租金汇总
type Summary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	PaidAmountCents    int64 `json:"paid_amount_cents"`
	PendingAmountCents int64 `json:"pending_amount_cents"`
	OverdueAmountCents int64 `json:"overdue_amount_cents"`
	TotalAmountCents   int64 `json:"total_amount_cents"`

	PaidCount    int `json:"paid_count"`
	PendingCount int `json:"pending_count"`
	OverdueCount int `json:"overdue_count"`
	TotalCount   int `json:"total_count"`

	// 状态不在三桶之内的账单ID，由调用方记入数据完整性告警
	UnrecognizedIDs []uint `json:"-"`
}

// Summarize 对账单列表做账期过滤和状态分桶汇总
//
// year/month限定到期日所在的日历年月；propertyID非0时只保留
// 归属该物业的账单，unitIndex提供单元到物业的归属映射，缺失
// 映射的账单视为不匹配过滤条件。函数不修改输入，不做I/O。
func Summarize(payments []models.RentPayment, year, month int, propertyID uint, unitIndex map[uint]uint) (*Summary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range 1-12", errors.ErrInvalidArgument, month)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year %d", errors.ErrInvalidArgument, year)
	}

	summary := &Summary{Year: year, Month: month}

	for i := range payments {
		p := &payments[i]

		if p.DueDate.Year() != year || int(p.DueDate.Month()) != month {
			continue
		}
		if propertyID != 0 {
			owner, ok := unitIndex[p.UnitID]
			if !ok || owner != propertyID {
				continue
			}
		}

		switch p.Status {
		case models.PaymentStatusPaid:
			summary.PaidAmountCents += p.AmountCents
			summary.PaidCount++
		case models.PaymentStatusPending:
			summary.PendingAmountCents += p.AmountCents
			summary.PendingCount++
		case models.PaymentStatusOverdue:
			summary.OverdueAmountCents += p.AmountCents
			summary.OverdueCount++
		default:
			// 上游数据完整性问题，不计入任何桶，交由调用方告警
			summary.UnrecognizedIDs = append(summary.UnrecognizedIDs, p.ID)
			continue
		}
	}

	summary.TotalAmountCents = summary.PaidAmountCents + summary.PendingAmountCents + summary.OverdueAmountCents
	summary.TotalCount = summary.PaidCount + summary.PendingCount + summary.OverdueCount

	return summary, nil
}

// OccupancyRate 入住率百分比，无单元时定义为0，避免除零
func OccupancyRate(occupiedUnits, totalUnits int) float64 {
	if totalUnits <= 0 {
		return 0
	}
	return float64(occupiedUnits) / float64(totalUnits) * 100
}

// CollectionRate 已收租金占全部应收的百分比，无账单时定义为0
func CollectionRate(collectedCents, totalCents int64) float64 {
	if totalCents <= 0 {
		return 0
	}
	return float64(collectedCents) / float64(totalCents) * 100
}
