package order

// Item is a single line of an order as submitted by the storefront.
type Item struct {
	Title  string `json:"title"`
	Weight string `json:"weight"`
}

// Order is the transient order payload. Orders are not persisted: the
// lifecycle is validate, format, notify, discard.
type Order struct {
	CustomerName  string  `json:"customerName"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Items         []Item  `json:"items,omitempty"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	OrderID       string  `json:"orderId,omitempty"`
}
