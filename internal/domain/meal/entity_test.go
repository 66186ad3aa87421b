package meal

import (
	"testing"
	"time"

	"github.com/ItamarS3917/smart-food-manager/internal/domain/ingredient"
	"github.com/ItamarS3917/smart-food-manager/internal/domain/recipe"
	"github.com/ItamarS3917/smart-food-manager/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MealTestSuite provides a test suite for the Meal aggregate
type MealTestSuite struct {
	suite.Suite
}

func (suite *MealTestSuite) newIngredient(name string, quantity, price float64) *ingredient.Ingredient {
	ing, err := ingredient.NewWithQuantity(name, quantity, ingredient.UnitGram)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), ing.SetUnitPrice(price))
	return ing
}

func (suite *MealTestSuite) TestCreation() {
	suite.Run("ValidMeal_ShouldCreateWithDefaults", func() {
		m, err := NewWithType("Sunday Roast", TypeDinner)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Sunday Roast", m.Name())
		assert.Equal(suite.T(), TypeDinner, m.MealType())
		assert.Equal(suite.T(), StatusPlanned, m.Status())
		assert.Equal(suite.T(), 1, m.Servings())
		assert.WithinDuration(suite.T(), time.Now(), m.PlannedTime(), time.Second)
		assert.Nil(suite.T(), m.Recipe())
		assert.Empty(suite.T(), m.Ingredients())
	})

	suite.Run("EmptyName_ShouldReturnError", func() {
		m, err := New("")

		assert.Nil(suite.T(), m)
		assert.Equal(suite.T(), ErrEmptyName, err)
	})

	suite.Run("UnknownType_ShouldReturnError", func() {
		m, err := NewWithType("Roast", Type(9))

		assert.Nil(suite.T(), m)
		assert.Equal(suite.T(), ErrUnknownType, err)
	})
}

func (suite *MealTestSuite) TestSetters() {
	m, _ := New("Oatmeal")

	assert.Equal(suite.T(), ErrEmptyName, m.SetName(""))
	assert.Equal(suite.T(), ErrUnknownType, m.SetType(Type(9)))
	assert.Equal(suite.T(), ErrUnknownStatus, m.SetStatus(Status(9)))
	assert.Equal(suite.T(), "Oatmeal", m.Name())
	assert.Equal(suite.T(), TypeBreakfast, m.MealType())
	assert.Equal(suite.T(), StatusPlanned, m.Status())

	require.NoError(suite.T(), m.SetName("Porridge"))
	require.NoError(suite.T(), m.SetType(TypeSnack))
	require.NoError(suite.T(), m.SetStatus(StatusReady))
	planned := time.Now().Add(3 * time.Hour)
	m.SetPlannedTime(planned)

	assert.Equal(suite.T(), "Porridge", m.Name())
	assert.Equal(suite.T(), TypeSnack, m.MealType())
	assert.Equal(suite.T(), StatusReady, m.Status())
	assert.Equal(suite.T(), planned, m.PlannedTime())
}

func (suite *MealTestSuite) TestCostAndScaling() {
	newMeal := func() *Meal {
		m, _ := NewWithType("Stir Fry", TypeDinner)
		require.NoError(suite.T(), m.AddIngredient(suite.newIngredient("Chicken", 100, 0.1)))
		require.NoError(suite.T(), m.AddIngredient(suite.newIngredient("Noodles", 200, 0.2)))
		return m
	}

	suite.Run("CostSumsIngredientCosts", func() {
		m := newMeal()

		assert.InDelta(suite.T(), 50.0, m.EstimatedCost(), 1e-9)
	})

	suite.Run("ScaleServings_ScalesQuantitiesAndCost", func() {
		m := newMeal()

		require.NoError(suite.T(), m.ScaleServings(4))

		assert.Equal(suite.T(), 4, m.Servings())
		assert.InDelta(suite.T(), 400.0, m.Ingredients()[0].Quantity(), 1e-9)
		assert.InDelta(suite.T(), 800.0, m.Ingredients()[1].Quantity(), 1e-9)
		assert.InDelta(suite.T(), 200.0, m.EstimatedCost(), 1e-9)
	})

	suite.Run("ScalingViaIntermediateCount_EndsAtSameState", func() {
		direct := newMeal()
		stepped := newMeal()

		require.NoError(suite.T(), direct.ScaleServings(6))
		require.NoError(suite.T(), stepped.ScaleServings(3))
		require.NoError(suite.T(), stepped.ScaleServings(6))

		assert.Equal(suite.T(), direct.Servings(), stepped.Servings())
		for idx := range direct.Ingredients() {
			assert.InDelta(suite.T(),
				direct.Ingredients()[idx].Quantity(),
				stepped.Ingredients()[idx].Quantity(), 1e-9)
		}
		assert.InDelta(suite.T(), direct.EstimatedCost(), stepped.EstimatedCost(), 1e-9)
	})

	suite.Run("SameCount_IsNoOp", func() {
		m := newMeal()

		require.NoError(suite.T(), m.ScaleServings(1))

		assert.InDelta(suite.T(), 100.0, m.Ingredients()[0].Quantity(), 1e-9)
	})

	suite.Run("NonPositiveCount_ShouldRejectAndLeaveStateUnchanged", func() {
		m := newMeal()

		assert.Equal(suite.T(), ErrInvalidServings, m.ScaleServings(0))
		assert.Equal(suite.T(), ErrInvalidServings, m.SetServings(-2))

		assert.Equal(suite.T(), 1, m.Servings())
		assert.InDelta(suite.T(), 100.0, m.Ingredients()[0].Quantity(), 1e-9)
	})
}

func (suite *MealTestSuite) TestIngredients() {
	m, _ := New("Salad")

	assert.Equal(suite.T(), ErrNilIngredient, m.AddIngredient(nil))

	lettuce := suite.newIngredient("Lettuce", 150, 0.01)
	require.NoError(suite.T(), m.AddIngredient(lettuce))
	require.NoError(suite.T(), m.AddIngredient(suite.newIngredient("Feta", 80, 0.05)))
	assert.InDelta(suite.T(), 150*0.01+80*0.05, m.EstimatedCost(), 1e-9)

	m.RemoveIngredient(lettuce.ID())
	assert.Len(suite.T(), m.Ingredients(), 1)
	assert.InDelta(suite.T(), 80*0.05, m.EstimatedCost(), 1e-9)

	m.RemoveIngredient("ing_missing") // silent no-op
	assert.Len(suite.T(), m.Ingredients(), 1)
}

func (suite *MealTestSuite) TestSetRecipe() {
	newRecipe := func() *recipe.Recipe {
		rec, err := recipe.New("Bolognese")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), rec.AddIngredient(suite.newIngredient("Beef", 400, 0.02)))
		require.NoError(suite.T(), rec.AddIngredient(suite.newIngredient("Pasta", 300, 0.01)))
		return rec
	}

	suite.Run("CopiesIngredientsAndComputesCost", func() {
		m, _ := NewWithType("Pasta Night", TypeDinner)
		rec := newRecipe()

		require.NoError(suite.T(), m.SetRecipe(rec))

		assert.Same(suite.T(), rec, m.Recipe())
		require.Len(suite.T(), m.Ingredients(), 2)
		assert.InDelta(suite.T(), 400*0.02+300*0.01, m.EstimatedCost(), 1e-9)
	})

	suite.Run("ScalingMeal_DoesNotTouchRecipe", func() {
		m, _ := NewWithType("Pasta Night", TypeDinner)
		rec := newRecipe()
		require.NoError(suite.T(), m.SetRecipe(rec))

		require.NoError(suite.T(), m.ScaleServings(3))

		assert.InDelta(suite.T(), 1200.0, m.Ingredients()[0].Quantity(), 1e-9)
		assert.InDelta(suite.T(), 400.0, rec.Ingredients()[0].Quantity(), 1e-9)
	})

	suite.Run("MutatingRecipeAfterAttach_DoesNotTouchMeal", func() {
		m, _ := NewWithType("Pasta Night", TypeDinner)
		rec := newRecipe()
		require.NoError(suite.T(), m.SetRecipe(rec))

		require.NoError(suite.T(), rec.Ingredients()[0].SetQuantity(1))

		assert.InDelta(suite.T(), 400.0, m.Ingredients()[0].Quantity(), 1e-9)
	})

	suite.Run("ReplacesExistingIngredientList", func() {
		m, _ := NewWithType("Pasta Night", TypeDinner)
		require.NoError(suite.T(), m.AddIngredient(suite.newIngredient("Leftover", 10, 1)))

		require.NoError(suite.T(), m.SetRecipe(newRecipe()))

		require.Len(suite.T(), m.Ingredients(), 2)
		assert.Equal(suite.T(), "Beef", m.Ingredients()[0].Name())
	})

	suite.Run("NilRecipe_DetachesWithoutClearingIngredients", func() {
		m, _ := NewWithType("Pasta Night", TypeDinner)
		require.NoError(suite.T(), m.SetRecipe(newRecipe()))

		require.NoError(suite.T(), m.SetRecipe(nil))

		assert.Nil(suite.T(), m.Recipe())
		assert.Len(suite.T(), m.Ingredients(), 2)
	})
}

func (suite *MealTestSuite) TestNutritionalValue() {
	m, _ := New("Breakfast Bowl")

	oats := suite.newIngredient("Oats", 80, 0.01)
	require.NoError(suite.T(), oats.AddNutritionalInfo("calories", 300))
	require.NoError(suite.T(), oats.AddNutritionalInfo("protein", 10))
	banana := suite.newIngredient("Banana", 120, 0.005)
	require.NoError(suite.T(), banana.AddNutritionalInfo("calories", 200))

	require.NoError(suite.T(), m.AddIngredient(oats))
	require.NoError(suite.T(), m.AddIngredient(banana))

	// Only calories count; protein is ignored.
	assert.Equal(suite.T(), 500.0, m.NutritionalValue())
}

func (suite *MealTestSuite) TestIsComplete() {
	m, _ := New("Toast")
	assert.False(suite.T(), m.IsComplete(), "no ingredients yet")

	require.NoError(suite.T(), m.AddIngredient(suite.newIngredient("Bread", 100, 0.01)))
	assert.False(suite.T(), m.IsComplete(), "still planned")

	require.NoError(suite.T(), m.SetStatus(StatusPreparing))
	assert.True(suite.T(), m.IsComplete())
}

func (suite *MealTestSuite) TestClone() {
	m, _ := NewWithType("Curry", TypeDinner)
	rec, _ := recipe.New("Curry Base")
	require.NoError(suite.T(), rec.AddIngredient(suite.newIngredient("Rice", 200, 0.01)))
	require.NoError(suite.T(), m.SetRecipe(rec))

	clone := m.Clone()
	require.NoError(suite.T(), clone.SetStatus(StatusConsumed))
	require.NoError(suite.T(), clone.Ingredients()[0].SetQuantity(1))
	clone.Recipe().RemoveIngredient(clone.Recipe().Ingredients()[0].ID())

	assert.Equal(suite.T(), StatusPlanned, m.Status())
	assert.Equal(suite.T(), 200.0, m.Ingredients()[0].Quantity())
	assert.Len(suite.T(), m.Recipe().Ingredients(), 1)
}

func (suite *MealTestSuite) TestSerialization() {
	suite.Run("RoundTrip_WithEmbeddedRecipe", func() {
		m, _ := NewWithType("Taco Night", TypeDinner)
		require.NoError(suite.T(), m.SetStatus(StatusShopping))
		m.SetPlannedTime(time.Now().Add(26 * time.Hour).Truncate(time.Second))

		rec, _ := recipe.New("Tacos")
		beef := suite.newIngredient("Beef", 300, 0.02)
		require.NoError(suite.T(), beef.AddNutritionalInfo("calories", 600))
		require.NoError(suite.T(), rec.AddIngredient(beef))
		require.NoError(suite.T(), rec.AddStep(recipe.Step{Order: 1, Description: "Fry the beef", Duration: 12 * time.Minute}))
		require.NoError(suite.T(), m.SetRecipe(rec))
		require.NoError(suite.T(), m.ScaleServings(2))

		data, err := m.Serialize()
		require.NoError(suite.T(), err)

		restored, err := Deserialize(data)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), m.Name(), restored.Name())
		assert.Equal(suite.T(), m.MealType(), restored.MealType())
		assert.Equal(suite.T(), m.Status(), restored.Status())
		assert.True(suite.T(), restored.PlannedTime().Equal(m.PlannedTime()))
		assert.Equal(suite.T(), m.Servings(), restored.Servings())
		assert.InDelta(suite.T(), m.EstimatedCost(), restored.EstimatedCost(), 1e-9)
		assert.Equal(suite.T(), m.NutritionalValue(), restored.NutritionalValue())

		require.NotNil(suite.T(), restored.Recipe())
		assert.Equal(suite.T(), rec.ID(), restored.Recipe().ID())

		require.Len(suite.T(), restored.Ingredients(), 1)
		assert.InDelta(suite.T(), 600.0, restored.Ingredients()[0].Quantity(), 1e-9)
	})

	suite.Run("RoundTrip_WithoutRecipe", func() {
		m, _ := NewWithType("Snack", TypeSnack)
		require.NoError(suite.T(), m.AddIngredient(suite.newIngredient("Apple", 1, 0.4)))

		data, err := m.Serialize()
		require.NoError(suite.T(), err)

		restored, err := Deserialize(data)
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), restored.Recipe())
		assert.Len(suite.T(), restored.Ingredients(), 1)
	})

	suite.Run("MalformedInput_ShouldFailAsParseError", func() {
		restored, err := Deserialize("][")

		assert.Nil(suite.T(), restored)
		assert.True(suite.T(), apperrors.IsParseFailure(err))
	})

	suite.Run("InvalidFieldValues_ShouldFailWithoutPartialResult", func() {
		restored, err := Deserialize(`{"name":"Bad","type":7,"status":0,"plannedTime":0,"estimatedCost":0,"servings":1,"ingredients":[]}`)
		assert.Nil(suite.T(), restored)
		assert.Equal(suite.T(), ErrUnknownType, err)

		restored, err = Deserialize(`{"name":"Bad","type":0,"status":0,"plannedTime":0,"estimatedCost":0,"servings":0,"ingredients":[]}`)
		assert.Nil(suite.T(), restored)
		assert.Equal(suite.T(), ErrInvalidServings, err)
	})
}

// TestMealTestSuite runs the meal test suite
func TestMealTestSuite(t *testing.T) {
	suite.Run(t, new(MealTestSuite))
}

func TestParseType(t *testing.T) {
	for _, mealType := range []Type{TypeBreakfast, TypeLunch, TypeDinner, TypeSnack} {
		parsed, err := ParseType(mealType.String())
		require.NoError(t, err)
		assert.Equal(t, mealType, parsed)
	}

	_, err := ParseType("brunch")
	assert.Equal(t, ErrUnknownType, err)
	assert.Equal(t, "unknown", Type(9).String())
}

func TestParseStatus(t *testing.T) {
	for _, status := range []Status{StatusPlanned, StatusShopping, StatusPreparing, StatusReady, StatusConsumed} {
		parsed, err := ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseStatus("abandoned")
	assert.Equal(t, ErrUnknownStatus, err)
	assert.Equal(t, "unknown", Status(9).String())
}
