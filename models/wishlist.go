package models

// Wishlist is an ordered sequence of liked products with unique ids.
type Wishlist struct {
	Products []Product `json:"products"`
}

func EmptyWishlist() *Wishlist {
	return &Wishlist{Products: []Product{}}
}

// Contains scans the held products; no API call.
func (w *Wishlist) Contains(productID string) bool {
	for _, p := range w.Products {
		if p.ID == productID {
			return true
		}
	}

	return false
}

func (w *Wishlist) Count() int {
	return len(w.Products)
}

type AddWishlistItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
