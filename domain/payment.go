package domain

// PaymentMethod is the payment path selected for one checkout attempt.
// The tags match the backend's order contract.
type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "Stripe"
	PaymentMethodCOD    PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodStripe || m == PaymentMethodCOD
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus is the payment outcome recorded on the order. Card payments
// are captured before submission ("Paid"); cash-on-delivery settles outside
// the system ("Pending").
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
)
