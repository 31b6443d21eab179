package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PropertyStatus is the occupancy state of a property.
type PropertyStatus string

const (
	PropertyOccupied    PropertyStatus = "Occupied"
	PropertyVacant      PropertyStatus = "Vacant"
	PropertyMaintenance PropertyStatus = "Maintenance"
)

// ParsePropertyStatus accepts a status name in any letter case.
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	for _, st := range []PropertyStatus{PropertyOccupied, PropertyVacant, PropertyMaintenance} {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown property status %q", s)
}

// Property is a rentable unit. Tenants may reference one by ID.
type Property struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	RentAmount  decimal.Decimal `json:"rentAmount"`
	Status      PropertyStatus  `json:"status"`
	Description string          `json:"description"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   float64         `json:"bathrooms"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
