package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Preferences narrow the candidate set when recommending meals.
type Preferences struct {
	Cuisines          datatypes.JSONSlice[string] `json:"cuisines,omitempty"`
	DietaryPreference string                      `gorm:"default:Vegetarian" json:"dietaryPreference"`
	Categories        datatypes.JSONSlice[string] `json:"categories,omitempty"`
}

// NutritionGoals are all optional; nil means the student never set one.
type NutritionGoals struct {
	CaloriesPerDay     *int `json:"caloriesPerDay,omitempty"`
	ProteinGramsPerDay *int `json:"proteinGramsPerDay,omitempty"`
	MaxCaloriesPerMeal *int `json:"maxCaloriesPerMeal,omitempty"`
	MinProteinPerMeal  *int `json:"minProteinPerMeal,omitempty"`
}

// Student is a user's nutrition profile, keyed by email everywhere.
type Student struct {
	ID             uint                        `gorm:"primaryKey" json:"-"`
	Name           string                      `json:"name"`
	Email          string                      `gorm:"uniqueIndex;not null" json:"email"`
	Preferences    Preferences                 `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	Allergies      datatypes.JSONSlice[string] `json:"allergies,omitempty"`
	NutritionGoals NutritionGoals              `gorm:"embedded;embeddedPrefix:goal_" json:"nutritionGoals"`
	ActivityLevel  string                      `gorm:"default:Moderate" json:"activityLevel"`
	MealHistory    []MealHistoryEntry          `gorm:"foreignKey:StudentID" json:"mealHistory,omitempty"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

// MealHistoryEntry records one like/dislike signal. MealID is a weak
// reference: the meal may be deactivated or gone, and the populated
// Meal field is null in that case. At most one entry per (student, meal).
type MealHistoryEntry struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	StudentID  uint      `gorm:"index:idx_history_student_meal,unique" json:"-"`
	MealID     string    `gorm:"type:varchar(36);index:idx_history_student_meal,unique" json:"mealId"`
	Liked      bool      `json:"liked"`
	ConsumedAt time.Time `json:"consumedAt"`
	Meal       *Meal     `gorm:"foreignKey:MealID;references:ID" json:"meal"`
}

// Validate checks the enum-constrained and range-constrained fields.
// Email presence is checked separately because it is the upsert key.
func (s *Student) Validate() []string {
	var details []string
	if s.Name == "" {
		details = append(details, "name is required")
	}
	if s.Preferences.DietaryPreference != "" && !contains(DietaryPreferences, s.Preferences.DietaryPreference) {
		details = append(details, fmt.Sprintf("preferences.dietaryPreference must be one of %v", DietaryPreferences))
	}
	for _, c := range s.Preferences.Cuisines {
		if !contains(Cuisines, c) {
			details = append(details, fmt.Sprintf("preferences.cuisines: %q is not a valid cuisine", c))
		}
	}
	for _, c := range s.Preferences.Categories {
		if !contains(Categories, c) {
			details = append(details, fmt.Sprintf("preferences.categories: %q is not a valid category", c))
		}
	}
	if s.ActivityLevel != "" && !contains(ActivityLevels, s.ActivityLevel) {
		details = append(details, fmt.Sprintf("activityLevel must be one of %v", ActivityLevels))
	}
	details = append(details, s.NutritionGoals.validate()...)
	return details
}

func (g *NutritionGoals) validate() []string {
	var details []string
	check := func(name string, v *int, min, max int) {
		if v != nil && (*v < min || *v > max) {
			details = append(details, fmt.Sprintf("nutritionGoals.%s must be between %d and %d", name, min, max))
		}
	}
	check("caloriesPerDay", g.CaloriesPerDay, 1000, 5000)
	check("proteinGramsPerDay", g.ProteinGramsPerDay, 20, 200)
	check("maxCaloriesPerMeal", g.MaxCaloriesPerMeal, 100, 1000)
	check("minProteinPerMeal", g.MinProteinPerMeal, 5, 50)
	return details
}
