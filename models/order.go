package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus represents all possible states of a café order
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// PaymentStatus tracks whether the order has been paid
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPaid      PaymentStatus = "Paid"
	PaymentCancelled PaymentStatus = "Cancelled"
)

// PaymentMethod is how the customer intends to pay
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodCard   PaymentMethod = "Card"
	MethodOnline PaymentMethod = "Online"
)

// OrderItem is one ordered quantity of a single menu item
type OrderItem struct {
	MenuItem primitive.ObjectID `json:"menuItem" bson:"menuItem"`
	Size     string             `json:"size,omitempty" bson:"size,omitempty"`
	Quantity int                `json:"quantity" bson:"quantity"`
	// Price is the computed line price: unit price at order time × quantity
	Price               float64 `json:"price" bson:"price"`
	SpecialInstructions string  `json:"specialInstructions,omitempty" bson:"specialInstructions,omitempty"`
}

type Order struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TableNumber  string             `json:"tableNumber,omitempty" bson:"tableNumber,omitempty"`
	CustomerName string             `json:"customerName" bson:"customerName"`
	Items        []OrderItem        `json:"items" bson:"items"`
	// TotalPrice is always the sum of the line item prices at last save
	TotalPrice    float64       `json:"totalPrice" bson:"totalPrice"`
	OrderStatus   OrderStatus   `json:"orderStatus" bson:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod" bson:"paymentMethod"`
	// CashTransferCode is set exactly once at creation for cash orders and
	// never regenerated
	CashTransferCode    string    `json:"cashTransferCode,omitempty" bson:"cashTransferCode,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty" bson:"specialInstructions,omitempty"`
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" bson:"updatedAt"`
}
