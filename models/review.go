package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewStatus marks whether a review is visible on the site
type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "approved"
	ReviewDeclined ReviewStatus = "declined"
)

type Review struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserName      string             `json:"userName" bson:"userName"`
	Rating        int                `json:"rating" bson:"rating"`
	ReviewMessage string             `json:"reviewMessage" bson:"reviewMessage"`
	ReviewStatus  ReviewStatus       `json:"reviewStatus" bson:"reviewStatus"`
	CreatedBy     primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
