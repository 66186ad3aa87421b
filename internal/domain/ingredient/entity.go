// Package ingredient contains the core domain logic for pantry ingredients:
// quantities, pricing, expiry and nutritional information.
package ingredient

import (
	"encoding/json"
	"time"

	"github.com/ItamarS3917/smart-food-manager/pkg/apperrors"
	"github.com/google/uuid"
)

// Ingredient represents a single pantry ingredient. All invariants
// (non-negative quantity, price and nutrient values, non-empty name) are
// enforced at each mutating method.
type Ingredient struct {
	id         string
	name       string
	quantity   float64
	unit       Unit
	unitPrice  float64
	expiryDate time.Time
	nutrition  map[string]float64
}

// New creates a named ingredient with zero quantity in grams
func New(name string) (*Ingredient, error) {
	return NewWithQuantity(name, 0, UnitGram)
}

// NewWithQuantity creates an ingredient with an initial quantity and unit
func NewWithQuantity(name string, quantity float64, unit Unit) (*Ingredient, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if !unit.Valid() {
		return nil, ErrUnknownUnit
	}
	return &Ingredient{
		id:        newID(),
		name:      name,
		quantity:  quantity,
		unit:      unit,
		nutrition: make(map[string]float64),
	}, nil
}

func newID() string {
	return "ing_" + uuid.NewString()
}

// ID returns the ingredient's unique identifier
func (i *Ingredient) ID() string {
	return i.id
}

// Name returns the ingredient's name
func (i *Ingredient) Name() string {
	return i.name
}

// Quantity returns the current quantity expressed in Unit
func (i *Ingredient) Quantity() float64 {
	return i.quantity
}

// Unit returns the unit of measurement
func (i *Ingredient) Unit() Unit {
	return i.unit
}

// UnitPrice returns the price per unit
func (i *Ingredient) UnitPrice() float64 {
	return i.unitPrice
}

// ExpiryDate returns the expiry timestamp
func (i *Ingredient) ExpiryDate() time.Time {
	return i.expiryDate
}

// NutritionalInfo returns the nutrient map (nutrient name to amount)
func (i *Ingredient) NutritionalInfo() map[string]float64 {
	return i.nutrition
}

// SetName updates the ingredient name
func (i *Ingredient) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	i.name = name
	return nil
}

// SetQuantity updates the quantity
func (i *Ingredient) SetQuantity(quantity float64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	i.quantity = quantity
	return nil
}

// SetUnit updates the unit of measurement
func (i *Ingredient) SetUnit(unit Unit) error {
	if !unit.Valid() {
		return ErrUnknownUnit
	}
	i.unit = unit
	return nil
}

// SetUnitPrice updates the price per unit
func (i *Ingredient) SetUnitPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	i.unitPrice = price
	return nil
}

// SetExpiryDate updates the expiry timestamp
func (i *Ingredient) SetExpiryDate(date time.Time) {
	i.expiryDate = date
}

// Scale multiplies the quantity by a positive factor. The unit price is
// unchanged, so cost scales linearly with the factor.
func (i *Ingredient) Scale(factor float64) error {
	if factor <= 0 {
		return ErrInvalidScaleFactor
	}
	i.quantity *= factor
	return nil
}

// AddNutritionalInfo upserts a nutrient amount
func (i *Ingredient) AddNutritionalInfo(nutrient string, value float64) error {
	if value < 0 {
		return ErrNegativeNutrient
	}
	i.nutrition[nutrient] = value
	return nil
}

// RemoveNutritionalInfo drops a nutrient entry; absent entries are ignored
func (i *Ingredient) RemoveNutritionalInfo(nutrient string) {
	delete(i.nutrition, nutrient)
}

// Cost returns quantity times unit price
func (i *Ingredient) Cost() float64 {
	return i.quantity * i.unitPrice
}

// IsExpired reports whether the expiry date has passed
func (i *Ingredient) IsExpired() bool {
	return time.Now().After(i.expiryDate)
}

// IsLowQuantity reports whether the quantity is at or below the per-unit
// replenishment threshold. Units without a threshold are never low.
func (i *Ingredient) IsLowQuantity() bool {
	threshold, ok := lowStockThresholds[i.unit]
	if !ok {
		return false
	}
	return i.quantity <= threshold
}

// Clone returns an independent copy of the ingredient, including its id.
// Mutating the clone never affects the source.
func (i *Ingredient) Clone() *Ingredient {
	nutrition := make(map[string]float64, len(i.nutrition))
	for nutrient, value := range i.nutrition {
		nutrition[nutrient] = value
	}
	return &Ingredient{
		id:         i.id,
		name:       i.name,
		quantity:   i.quantity,
		unit:       i.unit,
		unitPrice:  i.unitPrice,
		expiryDate: i.expiryDate,
		nutrition:  nutrition,
	}
}

// ingredientJSON is the wire representation. Expiry is epoch seconds and the
// unit is its stable integer value.
type ingredientJSON struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Quantity        float64            `json:"quantity"`
	Unit            int                `json:"unit"`
	UnitPrice       float64            `json:"unitPrice"`
	ExpiryDate      int64              `json:"expiryDate"`
	NutritionalInfo map[string]float64 `json:"nutritionalInfo"`
}

// Serialize encodes the ingredient as a JSON string
func (i *Ingredient) Serialize() (string, error) {
	payload := ingredientJSON{
		ID:              i.id,
		Name:            i.name,
		Quantity:        i.quantity,
		Unit:            int(i.unit),
		UnitPrice:       i.unitPrice,
		ExpiryDate:      i.expiryDate.Unix(),
		NutritionalInfo: i.nutrition,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.ParseFailure("failed to serialize ingredient", err)
	}
	return string(data), nil
}

// Deserialize reconstructs an ingredient from its JSON string form. The id is
// preserved. Deserialization either fully succeeds or returns an error with
// no partially populated result; every field goes through the normal
// validating paths so invariants re-establish.
func Deserialize(data string) (*Ingredient, error) {
	var payload ingredientJSON
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, apperrors.ParseFailure("failed to parse ingredient", err)
	}

	ing, err := New(payload.Name)
	if err != nil {
		return nil, err
	}
	ing.id = payload.ID
	if err := ing.SetQuantity(payload.Quantity); err != nil {
		return nil, err
	}
	if err := ing.SetUnit(Unit(payload.Unit)); err != nil {
		return nil, err
	}
	if err := ing.SetUnitPrice(payload.UnitPrice); err != nil {
		return nil, err
	}
	ing.SetExpiryDate(time.Unix(payload.ExpiryDate, 0))
	for nutrient, value := range payload.NutritionalInfo {
		if err := ing.AddNutritionalInfo(nutrient, value); err != nil {
			return nil, err
		}
	}
	return ing, nil
}
