package review

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xiebiao/storefront/pkg/idgen"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Review 商品评价
type Review struct {
	ID        string
	UserID    string
	ProductID string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建评价,购买资格由调用方在创建前校验
func NewReview(userID, productID string, rating int, comment string) (*Review, error) {
	comment = strings.TrimSpace(comment)
	if err := validate(rating, comment); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Review{
		ID:        idgen.New(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Edit 修改评分或内容,nil表示不修改
func (r *Review) Edit(rating *int, comment *string) error {
	nextRating, nextComment := r.Rating, r.Comment
	if rating != nil {
		nextRating = *rating
	}
	if comment != nil {
		nextComment = strings.TrimSpace(*comment)
	}
	if err := validate(nextRating, nextComment); err != nil {
		return err
	}
	r.Rating, r.Comment = nextRating, nextComment
	r.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 是否为评价作者
func (r *Review) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

func validate(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
