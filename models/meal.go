package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Allowed enum values, shared by meals and student preferences.
var (
	Cuisines           = []string{"North Indian", "South Indian", "Street Food", "General"}
	Categories         = []string{"Main Dish", "Breakfast", "Snack", "Side Dish", "Staple"}
	DietaryPreferences = []string{"Vegetarian", "Non-Vegetarian"}
	ActivityLevels     = []string{"Low", "Moderate", "High"}
)

// Meal is one servable dish in the catalog. Deleting a meal only clears
// IsActive; the row stays so student history keeps pointing somewhere.
type Meal struct {
	ID                string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	MealName          string                      `gorm:"not null" json:"mealName"`
	Cuisine           string                      `gorm:"not null;index:idx_meal_prefs" json:"cuisine"`
	Category          string                      `gorm:"not null;index:idx_meal_prefs" json:"category"`
	Calories          float64                     `gorm:"not null" json:"calories"`
	Protein           float64                     `gorm:"not null" json:"protein"`
	Carbohydrates     *float64                    `json:"carbohydrates,omitempty"`
	Fats              *float64                    `json:"fats,omitempty"`
	DietaryPreference string                      `gorm:"not null;index:idx_meal_prefs" json:"dietaryPreference"`
	ServingSize       string                      `json:"servingSize,omitempty"`
	Allergens         datatypes.JSONSlice[string] `json:"allergens,omitempty"`
	Ingredients       datatypes.JSONSlice[string] `json:"ingredients,omitempty"`
	Description       string                      `json:"description,omitempty"`
	ImageURL          string                      `json:"imageUrl,omitempty"`
	IsActive          bool                        `gorm:"default:true" json:"isActive"`
	NutritionScore    *float64                    `json:"nutritionScore,omitempty"`
	Popularity        int                         `gorm:"default:0" json:"popularity"`
	AverageRating     float64                     `gorm:"type:numeric(4,2);default:0" json:"averageRating"`
	TotalRatings      int                         `gorm:"default:0" json:"totalRatings"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Validate collects every violation instead of stopping at the first,
// so the API can report all of them at once.
func (m *Meal) Validate() []string {
	var details []string
	if m.MealName == "" {
		details = append(details, "mealName is required")
	}
	if !contains(Cuisines, m.Cuisine) {
		details = append(details, fmt.Sprintf("cuisine must be one of %v", Cuisines))
	}
	if !contains(Categories, m.Category) {
		details = append(details, fmt.Sprintf("category must be one of %v", Categories))
	}
	if m.Calories < 0 {
		details = append(details, "calories must be >= 0")
	}
	if m.Protein < 0 {
		details = append(details, "protein must be >= 0")
	}
	if m.Carbohydrates != nil && *m.Carbohydrates < 0 {
		details = append(details, "carbohydrates must be >= 0")
	}
	if m.Fats != nil && *m.Fats < 0 {
		details = append(details, "fats must be >= 0")
	}
	if !contains(DietaryPreferences, m.DietaryPreference) {
		details = append(details, fmt.Sprintf("dietaryPreference must be one of %v", DietaryPreferences))
	}
	if m.NutritionScore != nil && (*m.NutritionScore < 0 || *m.NutritionScore > 10) {
		details = append(details, "nutritionScore must be between 0 and 10")
	}
	return details
}
