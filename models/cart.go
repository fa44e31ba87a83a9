package models

// CartItem is one cart line. Price is the unit price snapshot taken when the
// item entered the cart; the server recomputes it on every mutation.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Cart is the server's view of the shopping cart. TotalAmount is computed
// server-side and trusted as-is; the client never recomputes it.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

// EmptyCart is the reset value used on logout and after checkout.
func EmptyCart() *Cart {
	return &Cart{Items: []CartItem{}, TotalAmount: 0}
}

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
