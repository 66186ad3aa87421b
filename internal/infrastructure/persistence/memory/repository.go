// Package memory provides the in-memory repository for meals, recipes and
// ingredients, with whole-store JSON file persistence.
package memory

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ItamarS3917/smart-food-manager/internal/domain/ingredient"
	"github.com/ItamarS3917/smart-food-manager/internal/domain/meal"
	"github.com/ItamarS3917/smart-food-manager/internal/domain/recipe"
	"github.com/ItamarS3917/smart-food-manager/pkg/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository errors

var (
	ErrNilEntity   = apperrors.InvalidArgument("entity cannot be nil")
	ErrDuplicateID = apperrors.InvalidArgument("an entity with this id already exists")
)

// Repository is the process-wide store for all three entity kinds. One
// mutex serializes every operation, including file I/O during load and save;
// a save blocks concurrent readers for its duration.
//
// The repository owns canonical copies: entities are deep-copied on add and
// update, and every read returns an independent snapshot. Mutating a
// retrieved entity has no effect until it is re-submitted through the
// corresponding Update call.
type Repository struct {
	mu          sync.Mutex
	meals       map[string]*meal.Meal
	recipes     map[string]*recipe.Recipe
	ingredients map[string]*ingredient.Ingredient
	wasteLog    []WasteRecord
	logger      *zap.Logger
}

// WasteRecord captures an ingredient that was discarded while expired. The
// surrounding system records these; the repository only aggregates them.
type WasteRecord struct {
	IngredientID string
	Name         string
	Value        float64
	RecordedAt   time.Time
}

// NewRepository creates an empty repository. The logger must not be nil;
// pass zap.NewNop() to discard output.
func NewRepository(logger *zap.Logger) *Repository {
	return &Repository{
		meals:       make(map[string]*meal.Meal),
		recipes:     make(map[string]*recipe.Recipe),
		ingredients: make(map[string]*ingredient.Ingredient),
		logger:      logger,
	}
}

// --- Meal management ---

// AddMeal stores a copy of the meal and returns its generated id
func (r *Repository) AddMeal(m *meal.Meal) (string, error) {
	if err := validateMeal(m); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := "meal_" + uuid.NewString()
	r.meals[id] = m.Clone()
	r.logger.Debug("meal added", zap.String("id", id), zap.String("name", m.Name()))
	return id, nil
}

// Meal returns a snapshot of the meal with the given id
func (r *Repository) Meal(id string) (*meal.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meals[id]
	if !ok {
		return nil, apperrors.NotFound("meal", id)
	}
	return m.Clone(), nil
}

// Meals returns snapshots of all stored meals
func (r *Repository) Meals() []*meal.Meal {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*meal.Meal, 0, len(r.meals))
	for _, m := range r.meals {
		result = append(result, m.Clone())
	}
	return result
}

// MealsByDate returns snapshots of meals planned for the same calendar day
func (r *Repository) MealsByDate(date time.Time) []*meal.Meal {
	r.mu.Lock()
	defer r.mu.Unlock()

	year, month, day := date.Date()
	var result []*meal.Meal
	for _, m := range r.meals {
		y, mo, d := m.PlannedTime().Date()
		if y == year && mo == month && d == day {
			result = append(result, m.Clone())
		}
	}
	return result
}

// UpdateMeal re-validates and replaces the stored meal atomically
func (r *Repository) UpdateMeal(id string, m *meal.Meal) error {
	if err := validateMeal(m); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meals[id]; !ok {
		return apperrors.NotFound("meal", id)
	}
	r.meals[id] = m.Clone()
	r.logger.Debug("meal updated", zap.String("id", id))
	return nil
}

// RemoveMeal deletes the meal with the given id; unknown ids are ignored
func (r *Repository) RemoveMeal(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.meals, id)
}

// --- Recipe management ---

// AddRecipe stores a copy of the recipe, keyed by the recipe's own id
func (r *Repository) AddRecipe(rec *recipe.Recipe) error {
	if err := validateRecipe(rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[rec.ID()]; ok {
		return ErrDuplicateID
	}
	r.recipes[rec.ID()] = rec.Clone()
	r.logger.Debug("recipe added", zap.String("id", rec.ID()), zap.String("name", rec.Name()))
	return nil
}

// Recipe returns a snapshot of the recipe with the given id
func (r *Repository) Recipe(id string) (*recipe.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok {
		return nil, apperrors.NotFound("recipe", id)
	}
	return rec.Clone(), nil
}

// Recipes returns snapshots of all stored recipes
func (r *Repository) Recipes() []*recipe.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*recipe.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		result = append(result, rec.Clone())
	}
	return result
}

// SearchRecipes returns snapshots of recipes whose name or description
// contains the query, case-insensitively.
func (r *Repository) SearchRecipes(query string) []*recipe.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(query)
	var result []*recipe.Recipe
	for _, rec := range r.recipes {
		if strings.Contains(strings.ToLower(rec.Name()), needle) ||
			strings.Contains(strings.ToLower(rec.Description()), needle) {
			result = append(result, rec.Clone())
		}
	}
	return result
}

// UpdateRecipe re-validates and replaces the stored recipe atomically
func (r *Repository) UpdateRecipe(rec *recipe.Recipe) error {
	if err := validateRecipe(rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[rec.ID()]; !ok {
		return apperrors.NotFound("recipe", rec.ID())
	}
	r.recipes[rec.ID()] = rec.Clone()
	r.logger.Debug("recipe updated", zap.String("id", rec.ID()))
	return nil
}

// RemoveRecipe deletes the recipe with the given id; unknown ids are ignored
func (r *Repository) RemoveRecipe(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.recipes, id)
}

// --- Ingredient management ---

// AddIngredient stores a copy of the ingredient, keyed by its own id
func (r *Repository) AddIngredient(ing *ingredient.Ingredient) error {
	if err := validateIngredient(ing); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ingredients[ing.ID()]; ok {
		return ErrDuplicateID
	}
	r.ingredients[ing.ID()] = ing.Clone()
	r.logger.Debug("ingredient added", zap.String("id", ing.ID()), zap.String("name", ing.Name()))
	return nil
}

// Ingredient returns a snapshot of the ingredient with the given id
func (r *Repository) Ingredient(id string) (*ingredient.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ing, ok := r.ingredients[id]
	if !ok {
		return nil, apperrors.NotFound("ingredient", id)
	}
	return ing.Clone(), nil
}

// Ingredients returns snapshots of all stored ingredients
func (r *Repository) Ingredients() []*ingredient.Ingredient {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*ingredient.Ingredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		result = append(result, ing.Clone())
	}
	return result
}

// LowStockIngredients returns snapshots of ingredients at or below their
// per-unit replenishment threshold.
func (r *Repository) LowStockIngredients() []*ingredient.Ingredient {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*ingredient.Ingredient
	for _, ing := range r.ingredients {
		if ing.IsLowQuantity() {
			result = append(result, ing.Clone())
		}
	}
	return result
}

// ExpiringIngredients returns snapshots of ingredients past their expiry date
func (r *Repository) ExpiringIngredients() []*ingredient.Ingredient {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*ingredient.Ingredient
	for _, ing := range r.ingredients {
		if ing.IsExpired() {
			result = append(result, ing.Clone())
		}
	}
	return result
}

// UpdateIngredient re-validates and replaces the stored ingredient atomically
func (r *Repository) UpdateIngredient(ing *ingredient.Ingredient) error {
	if err := validateIngredient(ing); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ingredients[ing.ID()]; !ok {
		return apperrors.NotFound("ingredient", ing.ID())
	}
	r.ingredients[ing.ID()] = ing.Clone()
	r.logger.Debug("ingredient updated", zap.String("id", ing.ID()))
	return nil
}

// RemoveIngredient deletes the ingredient with the given id; unknown ids are
// ignored
func (r *Repository) RemoveIngredient(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.ingredients, id)
}

// --- Validation ---

func validateMeal(m *meal.Meal) error {
	if m == nil {
		return ErrNilEntity
	}
	if m.Name() == "" {
		return meal.ErrEmptyName
	}
	if m.Servings() <= 0 {
		return meal.ErrInvalidServings
	}
	if !m.MealType().Valid() {
		return meal.ErrUnknownType
	}
	if !m.Status().Valid() {
		return meal.ErrUnknownStatus
	}
	return validateIngredients(m.Ingredients())
}

func validateRecipe(rec *recipe.Recipe) error {
	if rec == nil {
		return ErrNilEntity
	}
	if rec.Name() == "" {
		return recipe.ErrEmptyName
	}
	if rec.Servings() <= 0 {
		return recipe.ErrInvalidServings
	}
	for _, step := range rec.Steps() {
		if step.Order <= 0 {
			return recipe.ErrInvalidStepOrder
		}
	}
	return validateIngredients(rec.Ingredients())
}

func validateIngredient(ing *ingredient.Ingredient) error {
	if ing == nil {
		return ErrNilEntity
	}
	if ing.Name() == "" {
		return ingredient.ErrEmptyName
	}
	if ing.Quantity() < 0 {
		return ingredient.ErrNegativeQuantity
	}
	if ing.UnitPrice() < 0 {
		return ingredient.ErrNegativePrice
	}
	if !ing.Unit().Valid() {
		return ingredient.ErrUnknownUnit
	}
	for _, value := range ing.NutritionalInfo() {
		if value < 0 {
			return ingredient.ErrNegativeNutrient
		}
	}
	return nil
}

func validateIngredients(ingredients []*ingredient.Ingredient) error {
	for _, ing := range ingredients {
		if err := validateIngredient(ing); err != nil {
			return err
		}
	}
	return nil
}

// --- Persistence ---

// storeJSON is the whole-repository wire format: each entity embedded as its
// own serialized JSON string, keyed by repository id.
type storeJSON struct {
	Meals       map[string]string `json:"meals"`
	Recipes     map[string]string `json:"recipes"`
	Ingredients map[string]string `json:"ingredients"`
}

// SaveToFile serializes the entire repository to a single JSON document. The
// store lock is held for the duration of the write.
func (r *Repository) SaveToFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store := storeJSON{
		Meals:       make(map[string]string, len(r.meals)),
		Recipes:     make(map[string]string, len(r.recipes)),
		Ingredients: make(map[string]string, len(r.ingredients)),
	}
	for id, m := range r.meals {
		data, err := m.Serialize()
		if err != nil {
			return err
		}
		store.Meals[id] = data
	}
	for id, rec := range r.recipes {
		data, err := rec.Serialize()
		if err != nil {
			return err
		}
		store.Recipes[id] = data
	}
	for id, ing := range r.ingredients {
		data, err := ing.Serialize()
		if err != nil {
			return err
		}
		store.Ingredients[id] = data
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return apperrors.ParseFailure("failed to serialize repository", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.IOFailure("failed to write repository file", err)
	}

	r.logger.Info("repository saved",
		zap.String("path", path),
		zap.Int("meals", len(store.Meals)),
		zap.Int("recipes", len(store.Recipes)),
		zap.Int("ingredients", len(store.Ingredients)))
	return nil
}

// LoadFromFile replaces the repository contents with the file's. The load is
// all-or-nothing: on any parse failure the current contents are untouched.
func (r *Repository) LoadFromFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.IOFailure("failed to read repository file", err)
	}

	var store storeJSON
	if err := json.Unmarshal(data, &store); err != nil {
		return apperrors.ParseFailure("failed to parse repository file", err)
	}

	meals := make(map[string]*meal.Meal, len(store.Meals))
	for id, entry := range store.Meals {
		m, err := meal.Deserialize(entry)
		if err != nil {
			return err
		}
		meals[id] = m
	}
	recipes := make(map[string]*recipe.Recipe, len(store.Recipes))
	for id, entry := range store.Recipes {
		rec, err := recipe.Deserialize(entry)
		if err != nil {
			return err
		}
		recipes[id] = rec
	}
	ingredients := make(map[string]*ingredient.Ingredient, len(store.Ingredients))
	for id, entry := range store.Ingredients {
		ing, err := ingredient.Deserialize(entry)
		if err != nil {
			return err
		}
		ingredients[id] = ing
	}

	r.meals = meals
	r.recipes = recipes
	r.ingredients = ingredients

	r.logger.Info("repository loaded",
		zap.String("path", path),
		zap.Int("meals", len(meals)),
		zap.Int("recipes", len(recipes)),
		zap.Int("ingredients", len(ingredients)))
	return nil
}

// Clear empties all three entity maps and the waste log
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.meals = make(map[string]*meal.Meal)
	r.recipes = make(map[string]*recipe.Recipe)
	r.ingredients = make(map[string]*ingredient.Ingredient)
	r.wasteLog = nil
	r.logger.Debug("repository cleared")
}
