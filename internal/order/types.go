package order

// ItemRequest adds or removes units of one product.
type ItemRequest struct {
	ProductID uint32 `json:"productId"`
	Quantity  uint32 `json:"quantity"`
}

// DeliveryDetails sets the contact and fulfilment details before checkout.
type DeliveryDetails struct {
	Email      string   `json:"email"`
	Collection bool     `json:"collection"`
	Address    *Address `json:"address,omitempty"`
}

// StatusRequest is the kitchen-side advance command.
type StatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Product is a menu entry.
type Product struct {
	ProductID uint32  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// Menu returns the demo product catalogue.
func Menu() []Product {
	return []Product{
		{ProductID: 1, Name: "Margherita Pizza", Price: 12.99},
		{ProductID: 2, Name: "Pepperoni Pizza", Price: 14.99},
		{ProductID: 3, Name: "Caesar Salad", Price: 8.99},
		{ProductID: 4, Name: "Chicken Wings", Price: 9.99},
		{ProductID: 5, Name: "Coca Cola", Price: 2.99},
	}
}
