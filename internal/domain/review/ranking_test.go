package review

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopRated_SortAndLimit(t *testing.T) {
	stats := []RatingStat{
		{ProductID: "a", AvgRating: 4.0, ReviewCount: 10},
		{ProductID: "b", AvgRating: 4.5, ReviewCount: 2},
		{ProductID: "c", AvgRating: 4.5, ReviewCount: 8},
		{ProductID: "d", AvgRating: 3.333333, ReviewCount: 3},
	}

	top := TopRated(stats, 3)

	require.Len(t, top, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{top[0].ProductID, top[1].ProductID, top[2].ProductID})
	assert.Equal(t, "a", stats[0].ProductID, "不应修改入参顺序")
}

func TestTopRated_RoundsAverage(t *testing.T) {
	top := TopRated([]RatingStat{{ProductID: "x", AvgRating: 3.456}}, 10)
	assert.Equal(t, 3.46, top[0].AvgRating)
}

func TestTopRated_RoundedTieUsesReviewCount(t *testing.T) {
	// 4.004与4.001取整后都是4.00,按评价数比较
	top := TopRated([]RatingStat{
		{ProductID: "few", AvgRating: 4.004, ReviewCount: 1},
		{ProductID: "many", AvgRating: 4.001, ReviewCount: 9},
	}, 10)
	assert.Equal(t, "many", top[0].ProductID)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 10, NormalizeLimit(0))
	assert.Equal(t, 10, NormalizeLimit(-3))
	assert.Equal(t, 5, NormalizeLimit(5))
	assert.Equal(t, 100, NormalizeLimit(1000))

	many := make([]RatingStat, 150)
	for i := range many {
		many[i] = RatingStat{ProductID: fmt.Sprint(i), AvgRating: 5}
	}
	assert.Len(t, TopRated(many, 500), 100)
}

func TestNewReview_Validation(t *testing.T) {
	r, err := NewReview("u", "p", 5, "  great  ")
	require.NoError(t, err)
	assert.Equal(t, "great", r.Comment)

	_, err = NewReview("u", "p", 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview("u", "p", 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview("u", "p", 3, strings.Repeat("好", 1001))
	assert.ErrorIs(t, err, ErrCommentTooLong)

	_, err = NewReview("u", "p", 3, strings.Repeat("好", 1000))
	assert.NoError(t, err)
}

func TestReview_Edit(t *testing.T) {
	r, _ := NewReview("u", "p", 4, "ok")

	bad := 9
	assert.ErrorIs(t, r.Edit(&bad, nil), ErrInvalidRating)
	assert.Equal(t, 4, r.Rating)

	good := 2
	comment := "changed my mind"
	require.NoError(t, r.Edit(&good, &comment))
	assert.Equal(t, 2, r.Rating)
	assert.Equal(t, "changed my mind", r.Comment)
	assert.True(t, r.IsOwnedBy("u"))
}
