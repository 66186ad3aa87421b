// Package recipe contains the core domain logic for recipe authoring:
// owned ingredients, ordered preparation steps and nutrition rollup.
package recipe

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/ItamarS3917/smart-food-manager/internal/domain/ingredient"
	"github.com/ItamarS3917/smart-food-manager/pkg/apperrors"
	"github.com/google/uuid"
)

// Step is a single preparation step. Orders within one recipe are unique,
// positive and contiguous from 1 after every mutation settles.
type Step struct {
	Order       int
	Description string
	Duration    time.Duration
}

// Recipe is the aggregate root for a cooking recipe. It owns its ingredient
// list and steps; nutrition totals are recomputed on every ingredient change.
type Recipe struct {
	id          string
	name        string
	description string
	difficulty  Difficulty
	servings    int
	ingredients []*ingredient.Ingredient
	steps       []Step
	nutrition   map[string]float64
}

// New creates a named recipe with one serving and easy difficulty
func New(name string) (*Recipe, error) {
	return NewWithDescription(name, "")
}

// NewWithDescription creates a recipe with a name and description
func NewWithDescription(name, description string) (*Recipe, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Recipe{
		id:          newID(),
		name:        name,
		description: description,
		difficulty:  DifficultyEasy,
		servings:    1,
		nutrition:   make(map[string]float64),
	}, nil
}

func newID() string {
	return "rec_" + uuid.NewString()
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() string {
	return r.id
}

// Name returns the recipe's name
func (r *Recipe) Name() string {
	return r.name
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// Difficulty returns the difficulty level
func (r *Recipe) Difficulty() Difficulty {
	return r.difficulty
}

// Servings returns the number of servings the recipe makes
func (r *Recipe) Servings() int {
	return r.servings
}

// Ingredients returns the owned ingredient list
func (r *Recipe) Ingredients() []*ingredient.Ingredient {
	return r.ingredients
}

// Steps returns the preparation steps sorted by order
func (r *Recipe) Steps() []Step {
	return r.steps
}

// NutritionalInfo returns the aggregated nutrient totals across ingredients
func (r *Recipe) NutritionalInfo() map[string]float64 {
	return r.nutrition
}

// TotalTime returns the summed duration of all steps
func (r *Recipe) TotalTime() time.Duration {
	var total time.Duration
	for _, step := range r.steps {
		total += step.Duration
	}
	return total
}

// SetName updates the recipe name
func (r *Recipe) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	r.name = name
	return nil
}

// SetDescription updates the recipe description
func (r *Recipe) SetDescription(description string) {
	r.description = description
}

// SetDifficulty updates the difficulty level
func (r *Recipe) SetDifficulty(difficulty Difficulty) error {
	if !difficulty.Valid() {
		return ErrUnknownDifficulty
	}
	r.difficulty = difficulty
	return nil
}

// SetServings updates the target serving count
func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return ErrInvalidServings
	}
	r.servings = servings
	return nil
}

// AddIngredient appends an ingredient and recomputes nutrition totals
func (r *Recipe) AddIngredient(ing *ingredient.Ingredient) error {
	if ing == nil {
		return ErrNilIngredient
	}
	r.ingredients = append(r.ingredients, ing)
	r.recalculateNutrition()
	return nil
}

// RemoveIngredient removes the ingredient with the given id and recomputes
// nutrition totals. Unknown ids are silently ignored.
func (r *Recipe) RemoveIngredient(id string) {
	for idx, ing := range r.ingredients {
		if ing.ID() == id {
			r.ingredients = append(r.ingredients[:idx], r.ingredients[idx+1:]...)
			r.recalculateNutrition()
			return
		}
	}
}

// AddStep inserts a step at its requested order. If the slot is taken, every
// step at or above that order shifts up by one first, so nothing is silently
// overwritten. The list stays sorted by order.
func (r *Recipe) AddStep(step Step) error {
	if step.Order <= 0 {
		return ErrInvalidStepOrder
	}

	occupied := false
	for _, existing := range r.steps {
		if existing.Order == step.Order {
			occupied = true
			break
		}
	}
	if occupied {
		for idx := range r.steps {
			if r.steps[idx].Order >= step.Order {
				r.steps[idx].Order++
			}
		}
	}

	r.steps = append(r.steps, step)
	r.sortSteps()
	return nil
}

// RemoveStep removes the step with the given order and renumbers the rest to
// a contiguous 1..N sequence. Unknown orders are silently ignored.
func (r *Recipe) RemoveStep(order int) {
	for idx, step := range r.steps {
		if step.Order == order {
			r.steps = append(r.steps[:idx], r.steps[idx+1:]...)
			for i := range r.steps {
				r.steps[i].Order = i + 1
			}
			return
		}
	}
}

// ReorderStep moves the step at oldOrder to newOrder. Steps strictly between
// the two positions shift by one toward the vacated slot, so the result is a
// contiguous permutation with no gaps or duplicates.
func (r *Recipe) ReorderStep(oldOrder, newOrder int) error {
	if oldOrder <= 0 || newOrder <= 0 {
		return ErrInvalidStepOrder
	}

	idx := -1
	for i, step := range r.steps {
		if step.Order == oldOrder {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrStepNotFound
	}

	moved := r.steps[idx]
	r.steps = append(r.steps[:idx], r.steps[idx+1:]...)
	moved.Order = newOrder

	for i := range r.steps {
		if oldOrder < newOrder {
			if r.steps[i].Order > oldOrder && r.steps[i].Order <= newOrder {
				r.steps[i].Order--
			}
		} else {
			if r.steps[i].Order >= newOrder && r.steps[i].Order < oldOrder {
				r.steps[i].Order++
			}
		}
	}

	r.steps = append(r.steps, moved)
	r.sortSteps()
	return nil
}

func (r *Recipe) sortSteps() {
	sort.Slice(r.steps, func(a, b int) bool {
		return r.steps[a].Order < r.steps[b].Order
	})
}

// TotalCost sums the cost of all ingredients
func (r *Recipe) TotalCost() float64 {
	var total float64
	for _, ing := range r.ingredients {
		total += ing.Cost()
	}
	return total
}

// UpdateNutritionalInfo recomputes the nutrient totals from the current
// ingredient list.
func (r *Recipe) UpdateNutritionalInfo() {
	r.recalculateNutrition()
}

// recalculateNutrition clears the totals and sums each ingredient's nutrient
// map into the aggregate; the same nutrient accumulates across ingredients.
func (r *Recipe) recalculateNutrition() {
	r.nutrition = make(map[string]float64)
	for _, ing := range r.ingredients {
		for nutrient, value := range ing.NutritionalInfo() {
			r.nutrition[nutrient] += value
		}
	}
}

// IsValid reports whether the recipe is complete: it has a name, positive
// servings, at least one ingredient and at least one step.
func (r *Recipe) IsValid() bool {
	return r.name != "" &&
		r.servings > 0 &&
		len(r.ingredients) > 0 &&
		len(r.steps) > 0
}

// Clone returns an independent deep copy of the recipe, including its id
func (r *Recipe) Clone() *Recipe {
	clone := &Recipe{
		id:          r.id,
		name:        r.name,
		description: r.description,
		difficulty:  r.difficulty,
		servings:    r.servings,
		steps:       append([]Step(nil), r.steps...),
		nutrition:   make(map[string]float64, len(r.nutrition)),
	}
	for _, ing := range r.ingredients {
		clone.ingredients = append(clone.ingredients, ing.Clone())
	}
	for nutrient, value := range r.nutrition {
		clone.nutrition[nutrient] = value
	}
	return clone
}

type stepJSON struct {
	Order       int    `json:"order"`
	Description string `json:"description"`
	Duration    int    `json:"duration"` // minutes
}

type recipeJSON struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Difficulty      int                `json:"difficulty"`
	Servings        int                `json:"servings"`
	Ingredients     []string           `json:"ingredients"`
	Steps           []stepJSON         `json:"steps"`
	NutritionalInfo map[string]float64 `json:"nutritionalInfo"`
}

// Serialize encodes the recipe as a JSON string. Each ingredient is embedded
// as its own serialized JSON string; step durations are whole minutes.
func (r *Recipe) Serialize() (string, error) {
	payload := recipeJSON{
		ID:              r.id,
		Name:            r.name,
		Description:     r.description,
		Difficulty:      int(r.difficulty),
		Servings:        r.servings,
		Ingredients:     make([]string, 0, len(r.ingredients)),
		Steps:           make([]stepJSON, 0, len(r.steps)),
		NutritionalInfo: r.nutrition,
	}
	for _, ing := range r.ingredients {
		data, err := ing.Serialize()
		if err != nil {
			return "", err
		}
		payload.Ingredients = append(payload.Ingredients, data)
	}
	for _, step := range r.steps {
		payload.Steps = append(payload.Steps, stepJSON{
			Order:       step.Order,
			Description: step.Description,
			Duration:    int(step.Duration / time.Minute),
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.ParseFailure("failed to serialize recipe", err)
	}
	return string(data), nil
}

// Deserialize reconstructs a recipe from its JSON string form. Ingredients
// and steps are re-added through the normal mutating paths so ordering and
// nutrition invariants re-establish; the stored nutrient totals are applied
// last, as the authoritative persisted values. Either the whole recipe parses
// or an error is returned.
func Deserialize(data string) (*Recipe, error) {
	var payload recipeJSON
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, apperrors.ParseFailure("failed to parse recipe", err)
	}

	rec, err := NewWithDescription(payload.Name, payload.Description)
	if err != nil {
		return nil, err
	}
	rec.id = payload.ID
	if err := rec.SetDifficulty(Difficulty(payload.Difficulty)); err != nil {
		return nil, err
	}
	if err := rec.SetServings(payload.Servings); err != nil {
		return nil, err
	}

	for _, ingredientData := range payload.Ingredients {
		ing, err := ingredient.Deserialize(ingredientData)
		if err != nil {
			return nil, err
		}
		if err := rec.AddIngredient(ing); err != nil {
			return nil, err
		}
	}

	for _, step := range payload.Steps {
		err := rec.AddStep(Step{
			Order:       step.Order,
			Description: step.Description,
			Duration:    time.Duration(step.Duration) * time.Minute,
		})
		if err != nil {
			return nil, err
		}
	}

	if payload.NutritionalInfo != nil {
		rec.nutrition = payload.NutritionalInfo
	}
	return rec, nil
}
