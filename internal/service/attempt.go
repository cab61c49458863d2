package service

import (
	d "github.com/shopveda/storefront/domain"
)

// attempt carries one checkout execution through the state machine. A fresh
// attempt is created per submission, so nothing leaks between attempts.
type attempt struct {
	id       string
	status   d.CheckoutStatus
	snapshot *d.CartSnapshot
	shipping d.ShippingInfo
	method   d.PaymentMethod
}

func (a *attempt) transition(to d.CheckoutStatus) error {
	if !d.CanTransitionTo(a.status, to) {
		return IllegalTransitionError
	}
	a.status = to
	return nil
}

// fail moves the attempt to FAILED where the state machine allows it.
func (a *attempt) fail() {
	if d.CanTransitionTo(a.status, d.CheckoutStatusFailed) {
		a.status = d.CheckoutStatusFailed
	}
}
