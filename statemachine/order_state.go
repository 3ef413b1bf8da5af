package statemachine

import (
	"errors"

	"github.com/bean-buzz/beanbuzz-backend/models"
)

// orderTransitions is the authoritative state machine for order status.
// Completed and Cancelled are terminal; an order can be cancelled at any
// point before completion.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:    {models.OrderInProgress, models.OrderCompleted, models.OrderCancelled},
	models.OrderInProgress: {models.OrderCompleted, models.OrderCancelled},
}

// paymentTransitions mirrors the same idea for payment status. Paid and
// Cancelled are terminal.
var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending: {models.PaymentPaid, models.PaymentCancelled},
}

// CanTransitionOrder checks whether an order may move between the two states.
func CanTransitionOrder(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New("invalid order status transition: " + string(from) + " to " + string(to))
}

// CanTransitionPayment checks whether the payment status may move between
// the two states.
func CanTransitionPayment(from, to models.PaymentStatus) error {
	if from == to {
		return nil
	}
	for _, next := range paymentTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New("invalid payment status transition: " + string(from) + " to " + string(to))
}

// NextOrderStates returns all valid next states from a given order status.
func NextOrderStates(from models.OrderStatus) []models.OrderStatus {
	return orderTransitions[from]
}
