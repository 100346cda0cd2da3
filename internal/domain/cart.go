package domain

// CartLine is one product in a buyer's cart together with its quantity.
type CartLine struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	Product   Product
}
