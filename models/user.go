package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleStaff     UserRole = "staff"
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
)

// roleRank is the authorization hierarchy: higher rank means more access.
// Moderator is a valid stored role but carries no rank, so rank-based
// checks always deny it.
var roleRank = map[UserRole]int{
	RoleUser:  1,
	RoleStaff: 2,
	RoleAdmin: 3,
}

// Rank returns the hierarchy position of a role, or 0 when the role is
// unknown or unranked.
func (r UserRole) Rank() int {
	return roleRank[r]
}

// IsValid reports whether the role is one of the stored role values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// PaymentType is the customer's preferred way to pay
type PaymentType string

const (
	PaymentTypeStripe PaymentType = "stripe"
	PaymentTypeCash   PaymentType = "cash"
)

type User struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName            string             `json:"firstName" bson:"firstName"`
	LastName             string             `json:"lastName" bson:"lastName"`
	Email                string             `json:"email" bson:"email"`
	PhoneNumber          string             `json:"phoneNumber" bson:"phoneNumber"`
	PasswordHash         string             `json:"-" bson:"password"`
	Role                 UserRole           `json:"role" bson:"role"`
	PreferredPaymentType PaymentType        `json:"preferredPaymentType" bson:"preferredPaymentType"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt"`
}
