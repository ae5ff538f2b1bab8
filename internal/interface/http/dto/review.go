package dto

// CreateReviewRequest 发表评价,评分范围由领域校验
type CreateReviewRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"5f0c1a2e-0000-4000-8000-000000000002"`
	Rating    int    `json:"rating" example:"5"`
	Comment   string `json:"comment" example:"手感很好"`
}

// UpdateReviewRequest 修改评价,nil字段不修改
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}
