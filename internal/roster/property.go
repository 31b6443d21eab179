package roster

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
)

// NewPropertyParams holds the form fields for a new property.
type NewPropertyParams struct {
	Name        string  `validate:"required"`
	Address     string  `validate:"required"`
	Bedrooms    int     `validate:"gte=0"`
	Bathrooms   float64 `validate:"gte=0"`
	Description string
	ImageURL    string
	RentAmount  decimal.Decimal `validate:"-"`
	Status      model.PropertyStatus
}

// NewProperty validates p and builds a property. Status defaults to Vacant.
func NewProperty(p NewPropertyParams, id string) (model.Property, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	if err := validate.Struct(p); err != nil {
		return model.Property{}, validationError(err)
	}
	if err := checkRent(p.RentAmount); err != nil {
		return model.Property{}, err
	}
	if id == "" {
		return model.Property{}, fmt.Errorf("%w: empty property id", ErrValidation)
	}
	status := p.Status
	if status == "" {
		status = model.PropertyVacant
	}
	return model.Property{
		ID:          id,
		Name:        p.Name,
		Address:     p.Address,
		RentAmount:  p.RentAmount,
		Status:      status,
		Description: p.Description,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		ImageURL:    p.ImageURL,
	}, nil
}
