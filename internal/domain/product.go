package domain

// Product is a catalog entry owned by a seller.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       float64
	Discount    float64
	SellerID    int64
}
