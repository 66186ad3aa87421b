// Package meal contains the core domain logic for meal planning: workflow
// status, serving scaling and cost rollup over an ingredient snapshot that
// may be taken from a recipe.
package meal

import (
	"encoding/json"
	"time"

	"github.com/ItamarS3917/smart-food-manager/internal/domain/ingredient"
	"github.com/ItamarS3917/smart-food-manager/internal/domain/recipe"
	"github.com/ItamarS3917/smart-food-manager/pkg/apperrors"
)

// Meal is a planned meal. It owns its ingredient list outright: when built
// from a recipe the ingredients are independent copies, so scaling a meal
// never touches the source recipe.
type Meal struct {
	name          string
	mealType      Type
	status        Status
	plannedTime   time.Time
	recipe        *recipe.Recipe
	ingredients   []*ingredient.Ingredient
	estimatedCost float64
	servings      int
}

// New creates a named meal planned for now, defaulting to breakfast
func New(name string) (*Meal, error) {
	return NewWithType(name, TypeBreakfast)
}

// NewWithType creates a meal with a name and meal type
func NewWithType(name string, mealType Type) (*Meal, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !mealType.Valid() {
		return nil, ErrUnknownType
	}
	return &Meal{
		name:        name,
		mealType:    mealType,
		status:      StatusPlanned,
		plannedTime: time.Now(),
		servings:    1,
	}, nil
}

// Name returns the meal's name
func (m *Meal) Name() string {
	return m.name
}

// MealType returns the meal's type
func (m *Meal) MealType() Type {
	return m.mealType
}

// Status returns the current workflow status
func (m *Meal) Status() Status {
	return m.status
}

// PlannedTime returns when the meal is planned for
func (m *Meal) PlannedTime() time.Time {
	return m.plannedTime
}

// Recipe returns the associated recipe, or nil if none is attached
func (m *Meal) Recipe() *recipe.Recipe {
	return m.recipe
}

// Ingredients returns the meal's own ingredient list
func (m *Meal) Ingredients() []*ingredient.Ingredient {
	return m.ingredients
}

// EstimatedCost returns the summed ingredient cost
func (m *Meal) EstimatedCost() float64 {
	return m.estimatedCost
}

// Servings returns the serving count
func (m *Meal) Servings() int {
	return m.servings
}

// SetName updates the meal name
func (m *Meal) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	m.name = name
	return nil
}

// SetType updates the meal type
func (m *Meal) SetType(mealType Type) error {
	if !mealType.Valid() {
		return ErrUnknownType
	}
	m.mealType = mealType
	return nil
}

// SetStatus updates the workflow status. Any known status may be set
// directly; there is no transition guard.
func (m *Meal) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}
	m.status = status
	return nil
}

// SetPlannedTime updates the planned time
func (m *Meal) SetPlannedTime(plannedTime time.Time) {
	m.plannedTime = plannedTime
}

// SetRecipe attaches a recipe and replaces the meal's ingredient list with
// independent copies of the recipe's ingredients. The snapshot is rescaled to
// the meal's current serving count and the cost recomputed.
func (m *Meal) SetRecipe(rec *recipe.Recipe) error {
	m.recipe = rec
	if rec == nil {
		return nil
	}

	m.ingredients = m.ingredients[:0]
	for _, ing := range rec.Ingredients() {
		m.ingredients = append(m.ingredients, ing.Clone())
	}
	if err := m.ScaleServings(m.servings); err != nil {
		return err
	}
	m.UpdateCost()
	return nil
}

// SetServings rescales the meal to a new serving count
func (m *Meal) SetServings(servings int) error {
	return m.ScaleServings(servings)
}

// ScaleServings multiplies every ingredient quantity by the ratio of the new
// serving count to the current one, then recomputes the cost. Scaling to the
// current count is a no-op.
func (m *Meal) ScaleServings(servings int) error {
	if servings <= 0 {
		return ErrInvalidServings
	}
	if servings == m.servings {
		return nil
	}

	factor := float64(servings) / float64(m.servings)
	for _, ing := range m.ingredients {
		if err := ing.Scale(factor); err != nil {
			return err
		}
	}
	m.servings = servings
	m.UpdateCost()
	return nil
}

// AddIngredient appends an ingredient and recomputes the cost
func (m *Meal) AddIngredient(ing *ingredient.Ingredient) error {
	if ing == nil {
		return ErrNilIngredient
	}
	m.ingredients = append(m.ingredients, ing)
	m.UpdateCost()
	return nil
}

// RemoveIngredient removes the ingredient with the given id and recomputes
// the cost. Unknown ids are silently ignored.
func (m *Meal) RemoveIngredient(id string) {
	for idx, ing := range m.ingredients {
		if ing.ID() == id {
			m.ingredients = append(m.ingredients[:idx], m.ingredients[idx+1:]...)
			m.UpdateCost()
			return
		}
	}
}

// UpdateCost recomputes the estimated cost from the current ingredients
func (m *Meal) UpdateCost() {
	m.estimatedCost = 0
	for _, ing := range m.ingredients {
		m.estimatedCost += ing.Cost()
	}
}

// IsComplete reports whether the meal has ingredients and has moved past the
// planned status.
func (m *Meal) IsComplete() bool {
	return len(m.ingredients) > 0 && m.status != StatusPlanned
}

// NutritionalValue sums the "calories" nutrient across ingredients. Other
// nutrients are deliberately ignored.
func (m *Meal) NutritionalValue() float64 {
	var calories float64
	for _, ing := range m.ingredients {
		calories += ing.NutritionalInfo()["calories"]
	}
	return calories
}

// Clone returns an independent deep copy of the meal
func (m *Meal) Clone() *Meal {
	clone := &Meal{
		name:          m.name,
		mealType:      m.mealType,
		status:        m.status,
		plannedTime:   m.plannedTime,
		estimatedCost: m.estimatedCost,
		servings:      m.servings,
	}
	if m.recipe != nil {
		clone.recipe = m.recipe.Clone()
	}
	for _, ing := range m.ingredients {
		clone.ingredients = append(clone.ingredients, ing.Clone())
	}
	return clone
}

type mealJSON struct {
	Name          string   `json:"name"`
	Type          int      `json:"type"`
	Status        int      `json:"status"`
	PlannedTime   int64    `json:"plannedTime"`
	EstimatedCost float64  `json:"estimatedCost"`
	Servings      int      `json:"servings"`
	Ingredients   []string `json:"ingredients"`
	Recipe        *string  `json:"recipe,omitempty"`
}

// Serialize encodes the meal as a JSON string. The attached recipe, when
// present, is embedded as its full serialized form.
func (m *Meal) Serialize() (string, error) {
	payload := mealJSON{
		Name:          m.name,
		Type:          int(m.mealType),
		Status:        int(m.status),
		PlannedTime:   m.plannedTime.Unix(),
		EstimatedCost: m.estimatedCost,
		Servings:      m.servings,
		Ingredients:   make([]string, 0, len(m.ingredients)),
	}
	for _, ing := range m.ingredients {
		data, err := ing.Serialize()
		if err != nil {
			return "", err
		}
		payload.Ingredients = append(payload.Ingredients, data)
	}
	if m.recipe != nil {
		data, err := m.recipe.Serialize()
		if err != nil {
			return "", err
		}
		payload.Recipe = &data
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.ParseFailure("failed to serialize meal", err)
	}
	return string(data), nil
}

// Deserialize reconstructs a meal from its JSON string form. The recipe, if
// present, is reconstructed first and attached as a plain reference; the
// meal's own ingredient list is then rebuilt independently from its own
// serialized entries, so the persisted snapshot wins over the recipe's
// current ingredients. Either the whole meal parses or an error is returned.
func Deserialize(data string) (*Meal, error) {
	var payload mealJSON
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, apperrors.ParseFailure("failed to parse meal", err)
	}

	m, err := New(payload.Name)
	if err != nil {
		return nil, err
	}
	if err := m.SetType(Type(payload.Type)); err != nil {
		return nil, err
	}
	if err := m.SetStatus(Status(payload.Status)); err != nil {
		return nil, err
	}
	m.SetPlannedTime(time.Unix(payload.PlannedTime, 0))
	if payload.Servings <= 0 {
		return nil, ErrInvalidServings
	}
	m.servings = payload.Servings

	if payload.Recipe != nil {
		rec, err := recipe.Deserialize(*payload.Recipe)
		if err != nil {
			return nil, err
		}
		m.recipe = rec
	}

	for _, ingredientData := range payload.Ingredients {
		ing, err := ingredient.Deserialize(ingredientData)
		if err != nil {
			return nil, err
		}
		if err := m.AddIngredient(ing); err != nil {
			return nil, err
		}
	}
	m.UpdateCost()
	return m, nil
}
