package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid size keys for multi-size menu items
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// DietaryInformation keeps the dietary flags separate for easier accessibility
type DietaryInformation struct {
	IsVegan      bool `json:"isVegan" bson:"isVegan"`
	IsVegetarian bool `json:"isVegetarian" bson:"isVegetarian"`
	IsGlutenFree bool `json:"isGlutenFree" bson:"isGlutenFree"`
	IsDairyFree  bool `json:"isDairyFree" bson:"isDairyFree"`
	IsHalal      bool `json:"isHalal" bson:"isHalal"`
	IsKosher     bool `json:"isKosher" bson:"isKosher"`
	IsBeefFree   bool `json:"isBeefFree" bson:"isBeefFree"`
}

type MenuItem struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ItemName      string             `json:"itemName" bson:"itemName" binding:"required"`
	Category      string             `json:"category" bson:"category" binding:"required"`
	ImageURL      string             `json:"imageUrl" bson:"imageUrl"`
	Description   string             `json:"description" bson:"description"`
	IsAvailable   bool               `json:"isAvailable" bson:"isAvailable"`
	MultipleSizes bool               `json:"multipleSizes" bson:"multipleSizes"`
	// DefaultPrice applies only when MultipleSizes is false
	DefaultPrice float64 `json:"defaultPrice" bson:"defaultPrice"`
	// Sizes maps a size key (small/medium/large) to its price and applies
	// only when MultipleSizes is true
	Sizes              map[string]float64 `json:"sizes,omitempty" bson:"sizes,omitempty"`
	DietaryInformation DietaryInformation `json:"dietaryInformation" bson:"dietaryInformation"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ErrUnknownSize is returned by PriceFor when a multi-size item has no
// price for the requested size key.
var ErrUnknownSize = errors.New("unknown size")

// PriceFor resolves the unit price of the item for the given size key.
// Single-price items ignore the size entirely.
func (m *MenuItem) PriceFor(size string) (float64, error) {
	if !m.MultipleSizes {
		return m.DefaultPrice, nil
	}
	price, ok := m.Sizes[size]
	if !ok {
		return 0, fmt.Errorf("%w: %q for menu item %s", ErrUnknownSize, size, m.ItemName)
	}
	return price, nil
}

// Validate enforces that exactly one pricing mode is active.
func (m *MenuItem) Validate() error {
	if m.MultipleSizes {
		if len(m.Sizes) == 0 {
			return errors.New("multi-size menu items require per-size prices")
		}
		for key := range m.Sizes {
			switch key {
			case SizeSmall, SizeMedium, SizeLarge:
			default:
				return fmt.Errorf("invalid size key %q", key)
			}
		}
		return nil
	}
	if m.DefaultPrice <= 0 {
		return errors.New("single-price menu items require a default price")
	}
	return nil
}
