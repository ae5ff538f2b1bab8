package review

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
)

// Reviewer 评价作者
type Reviewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReviewDTO 评价信息
type ReviewDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	User      *Reviewer `json:"user,omitempty"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AverageRatingDTO 商品平均分
type AverageRatingDTO struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

// TopRatedDTO 高分商品
type TopRatedDTO struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	AvgRating   float64         `json:"avg_rating"`
	ReviewCount int64           `json:"review_count"`
}

func toReviewDTO(r *review.Review, author *user.User) *ReviewDTO {
	dto := &ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if author != nil {
		dto.User = &Reviewer{ID: author.ID, Name: author.Name}
	}
	return dto
}

// withReviewers 批量查询作者并投影,作者已删除时user为空
func withReviewers(ctx context.Context, userRepo user.Repository, reviews []*review.Review) ([]*ReviewDTO, error) {
	seen := make(map[string]struct{}, len(reviews))
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		ids = append(ids, r.UserID)
	}

	authors := make(map[string]*user.User, len(ids))
	if len(ids) > 0 {
		users, err := userRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.ID] = u
		}
	}

	dtos := make([]*ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		dtos = append(dtos, toReviewDTO(r, authors[r.UserID]))
	}
	return dtos, nil
}
