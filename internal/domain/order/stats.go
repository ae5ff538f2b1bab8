package order

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// StatusStat 按状态统计
type StatusStat struct {
	Status      Status
	Count       int64
	TotalAmount decimal.Decimal
}

// MonthlySales 月度销售汇总,Period格式为"YYYY-M"(月份不补零)
type MonthlySales struct {
	Year        int
	Month       int
	Period      string
	TotalSales  decimal.Decimal
	TotalOrders int64
}

// Totals 整体汇总(不含已取消订单)
type Totals struct {
	TotalSales        decimal.Decimal
	TotalOrders       int64
	AverageOrderValue decimal.Decimal
}

// SortStatusStats 按订单数倒序,数量相同时按状态名升序
func SortStatusStats(stats []StatusStat) []StatusStat {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Status < stats[j].Status
	})
	return stats
}

// FormatPeriod 2024年3月 → "2024-3"
func FormatPeriod(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// FinalizeMonthly 填充Period并按年月升序
func FinalizeMonthly(rows []MonthlySales) []MonthlySales {
	for i := range rows {
		rows[i].Period = FormatPeriod(rows[i].Year, rows[i].Month)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

// LookbackStart 统计起点 = now - months个月
func LookbackStart(now time.Time, months int) time.Time {
	return now.AddDate(0, -months, 0)
}

// NewTotals 根据销售额与订单数计算平均客单价(四舍五入保留2位),没有订单时全部为0
func NewTotals(totalSales decimal.Decimal, totalOrders int64) Totals {
	if totalOrders == 0 {
		return Totals{TotalSales: decimal.Zero, AverageOrderValue: decimal.Zero}
	}
	return Totals{
		TotalSales:        totalSales,
		TotalOrders:       totalOrders,
		AverageOrderValue: totalSales.Div(decimal.NewFromInt(totalOrders)).Round(2),
	}
}
