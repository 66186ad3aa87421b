// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/ItamarS3917/smart-food-manager/internal/domain/ingredient"
	"github.com/ItamarS3917/smart-food-manager/internal/domain/meal"
	"github.com/ItamarS3917/smart-food-manager/internal/domain/recipe"
	"github.com/brianvoe/gofakeit/v6"
)

// IngredientFactory provides methods to create test ingredients
type IngredientFactory struct {
	faker *gofakeit.Faker
}

// NewIngredientFactory creates an ingredient factory with a seeded faker
func NewIngredientFactory(seed int64) *IngredientFactory {
	return &IngredientFactory{faker: gofakeit.New(seed)}
}

// CreateIngredient creates a stocked ingredient with price, a future expiry
// and a calorie entry.
func (f *IngredientFactory) CreateIngredient() (*ingredient.Ingredient, error) {
	ing, err := ingredient.NewWithQuantity(
		f.faker.Fruit(),
		f.faker.Float64Range(150, 900),
		ingredient.UnitGram,
	)
	if err != nil {
		return nil, err
	}
	if err := ing.SetUnitPrice(f.faker.Float64Range(0.01, 0.5)); err != nil {
		return nil, err
	}
	ing.SetExpiryDate(time.Now().Add(7 * 24 * time.Hour))
	if err := ing.AddNutritionalInfo("calories", f.faker.Float64Range(50, 400)); err != nil {
		return nil, err
	}
	return ing, nil
}

// CreateExpiredIngredient creates an ingredient whose expiry is in the past
func (f *IngredientFactory) CreateExpiredIngredient() (*ingredient.Ingredient, error) {
	ing, err := f.CreateIngredient()
	if err != nil {
		return nil, err
	}
	ing.SetExpiryDate(time.Now().Add(-24 * time.Hour))
	return ing, nil
}

// CreateLowStockIngredient creates an ingredient below its unit threshold
func (f *IngredientFactory) CreateLowStockIngredient() (*ingredient.Ingredient, error) {
	ing, err := f.CreateIngredient()
	if err != nil {
		return nil, err
	}
	if err := ing.SetQuantity(50); err != nil { // gram threshold is 100
		return nil, err
	}
	return ing, nil
}

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker       *gofakeit.Faker
	ingredients *IngredientFactory
}

// NewRecipeFactory creates a recipe factory with a seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker:       gofakeit.New(seed),
		ingredients: NewIngredientFactory(seed),
	}
}

// CreateValidRecipe creates a recipe that passes IsValid: two ingredients and
// two ordered steps.
func (f *RecipeFactory) CreateValidRecipe() (*recipe.Recipe, error) {
	rec, err := recipe.NewWithDescription(f.faker.Dinner(), f.faker.Sentence(8))
	if err != nil {
		return nil, err
	}
	if err := rec.SetServings(2); err != nil {
		return nil, err
	}

	for i := 0; i < 2; i++ {
		ing, err := f.ingredients.CreateIngredient()
		if err != nil {
			return nil, err
		}
		if err := rec.AddIngredient(ing); err != nil {
			return nil, err
		}
	}

	steps := []recipe.Step{
		{Order: 1, Description: "Prepare the ingredients", Duration: 10 * time.Minute},
		{Order: 2, Description: "Cook and serve", Duration: 25 * time.Minute},
	}
	for _, step := range steps {
		if err := rec.AddStep(step); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// MealFactory provides methods to create test meals
type MealFactory struct {
	faker       *gofakeit.Faker
	ingredients *IngredientFactory
}

// NewMealFactory creates a meal factory with a seeded faker
func NewMealFactory(seed int64) *MealFactory {
	return &MealFactory{
		faker:       gofakeit.New(seed),
		ingredients: NewIngredientFactory(seed),
	}
}

// CreateValidMeal creates a meal with one ingredient, past the planned status
func (f *MealFactory) CreateValidMeal() (*meal.Meal, error) {
	m, err := meal.NewWithType(f.faker.Dinner(), meal.TypeDinner)
	if err != nil {
		return nil, err
	}
	ing, err := f.ingredients.CreateIngredient()
	if err != nil {
		return nil, err
	}
	if err := m.AddIngredient(ing); err != nil {
		return nil, err
	}
	if err := m.SetStatus(meal.StatusPreparing); err != nil {
		return nil, err
	}
	return m, nil
}
