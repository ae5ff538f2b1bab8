package dto

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"5f0c1a2e-0000-4000-8000-000000000002"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"1"`
}

// SetCartItemRequest 修改购物车商品数量
type SetCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}

// CheckoutRequest 购物车结算
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,max=50" example:"credit_card"`
}
