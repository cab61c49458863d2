package domain

// OrderItem is a cart line re-keyed to the backend's order contract.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest is the order-creation payload sent to the backend. It is
// composed once per checkout attempt, sent at most once, and never mutated
// after send.
type OrderRequest struct {
	CartItems     []OrderItem   `json:"cartItems"`
	ShippingInfo  ShippingInfo  `json:"shippingInfo"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Total         float64       `json:"total"`
}

// NewOrderRequest builds the order payload from a cart snapshot. The total is
// the snapshot's total, so it always matches the sum of price x quantity over
// the lines being sent.
func NewOrderRequest(snapshot *CartSnapshot, shipping ShippingInfo, method PaymentMethod, status PaymentStatus) *OrderRequest {
	items := make([]OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	return &OrderRequest{
		CartItems:     items,
		ShippingInfo:  shipping,
		PaymentMethod: method,
		PaymentStatus: status,
		Total:         snapshot.TotalAmount,
	}
}
