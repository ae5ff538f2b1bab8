package review

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// RatingStat 单个商品的评分汇总
type RatingStat struct {
	ProductID   string
	ProductName string
	Brand       string
	Price       decimal.Decimal
	AvgRating   float64
	ReviewCount int64
}

// NormalizeLimit limit<=0取默认值10,超过100截断为100
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}

// RoundRating 平均分保留2位小数
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// TopRated 按平均分倒序、评价数倒序排序并截取前limit个
// 平均分先取整到2位小数再比较,与展示值保持一致
func TopRated(stats []RatingStat, limit int) []RatingStat {
	limit = NormalizeLimit(limit)

	ranked := make([]RatingStat, len(stats))
	for i, s := range stats {
		s.AvgRating = RoundRating(s.AvgRating)
		ranked[i] = s
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvgRating != ranked[j].AvgRating {
			return ranked[i].AvgRating > ranked[j].AvgRating
		}
		return ranked[i].ReviewCount > ranked[j].ReviewCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
