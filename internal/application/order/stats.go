package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/storefront/internal/domain/order"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// maxLookbackMonths 月度统计最多回溯的月数
const maxLookbackMonths = 120

// StatusStatDTO 按状态统计
type StatusStatDTO struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// MonthlySalesDTO 月度销售
type MonthlySalesDTO struct {
	Period      string          `json:"period"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalOrders int64           `json:"total_orders"`
}

// TotalsDTO 整体汇总
type TotalsDTO struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalOrders       int64           `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// StatsResponse 订单统计
type StatsResponse struct {
	ByStatus     []StatusStatDTO   `json:"by_status"`
	MonthlySales []MonthlySalesDTO `json:"monthly_sales"`
	Totals       TotalsDTO         `json:"totals"`
}

// OrderStatsUseCase 订单统计(管理员)
type OrderStatsUseCase struct {
	orderRepo       order.Repository
	defaultLookback int
	now             func() time.Time
}

// NewOrderStatsUseCase defaultLookback为未指定months时的回溯月数
func NewOrderStatsUseCase(orderRepo order.Repository, defaultLookback int) *OrderStatsUseCase {
	return &OrderStatsUseCase{orderRepo: orderRepo, defaultLookback: defaultLookback, now: time.Now}
}

// Execute months<=0时使用默认回溯月数
// 三个统计互不依赖,并发查询
func (uc *OrderStatsUseCase) Execute(ctx context.Context, months int) (*StatsResponse, error) {
	if months <= 0 {
		months = uc.defaultLookback
	}
	if months > maxLookbackMonths {
		return nil, apperrors.ErrInvalidParams.WithDetails("months不能超过120")
	}

	var (
		byStatus []order.StatusStat
		monthly  []order.MonthlySales
		totals   order.Totals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byStatus, err = uc.orderRepo.StatsByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = uc.orderRepo.MonthlySales(gctx, order.LookbackStart(uc.now(), months))
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = uc.orderRepo.Totals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		ByStatus:     make([]StatusStatDTO, 0, len(byStatus)),
		MonthlySales: make([]MonthlySalesDTO, 0, len(monthly)),
		Totals: TotalsDTO{
			TotalSales:        totals.TotalSales,
			TotalOrders:       totals.TotalOrders,
			AverageOrderValue: totals.AverageOrderValue,
		},
	}
	for _, st := range order.SortStatusStats(byStatus) {
		resp.ByStatus = append(resp.ByStatus, StatusStatDTO{
			Status:      string(st.Status),
			Count:       st.Count,
			TotalAmount: st.TotalAmount,
		})
	}
	for _, m := range order.FinalizeMonthly(monthly) {
		resp.MonthlySales = append(resp.MonthlySales, MonthlySalesDTO{
			Period:      m.Period,
			TotalSales:  m.TotalSales,
			TotalOrders: m.TotalOrders,
		})
	}
	return resp, nil
}
