package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMeal() Meal {
	return Meal{
		MealName:          "Masala Dosa",
		Cuisine:           "South Indian",
		Category:          "Breakfast",
		Calories:          350,
		Protein:           9,
		DietaryPreference: "Vegetarian",
	}
}

func TestMealValidateOK(t *testing.T) {
	m := validMeal()
	assert.Empty(t, m.Validate())
}

func TestMealValidateCollectsAllViolations(t *testing.T) {
	score := 12.0
	m := Meal{
		Cuisine:           "Fusion",
		Category:          "Dessert",
		Calories:          -1,
		Protein:           -1,
		DietaryPreference: "Vegan",
		NutritionScore:    &score,
	}
	// name, cuisine, category, calories, protein, diet, nutritionScore
	details := m.Validate()
	assert.Len(t, details, 7)
}

func TestMealValidateOptionalRanges(t *testing.T) {
	m := validMeal()
	neg := -5.0
	m.Carbohydrates = &neg
	m.Fats = &neg
	assert.Len(t, m.Validate(), 2)
}

func TestStudentValidate(t *testing.T) {
	s := Student{Name: "Asha", Email: "asha@example.com"}
	s.Preferences.DietaryPreference = "Vegetarian"
	assert.Empty(t, s.Validate())

	s.Preferences.Cuisines = []string{"South Indian", "Thai"}
	s.ActivityLevel = "Extreme"
	low := 3
	s.NutritionGoals.MinProteinPerMeal = &low
	details := s.Validate()
	assert.Len(t, details, 3)
}
