package services

import (
	"errors"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/models"

	"gorm.io/gorm"
)

type MealService struct{}

func NewMealService() *MealService {
	return &MealService{}
}

// MealInput is the create/bulk-import request shape.
type MealInput struct {
	MealName          string   `json:"mealName"`
	Cuisine           string   `json:"cuisine"`
	Category          string   `json:"category"`
	Calories          float64  `json:"calories"`
	Protein           float64  `json:"protein"`
	Carbohydrates     *float64 `json:"carbohydrates"`
	Fats              *float64 `json:"fats"`
	DietaryPreference string   `json:"dietaryPreference"`
	ServingSize       string   `json:"servingSize"`
	Allergens         []string `json:"allergens"`
	Ingredients       []string `json:"ingredients"`
	Description       string   `json:"description"`
	ImageURL          string   `json:"imageUrl"`
	NutritionScore    *float64 `json:"nutritionScore"`
}

func (in MealInput) toMeal() models.Meal {
	return models.Meal{
		MealName:          in.MealName,
		Cuisine:           in.Cuisine,
		Category:          in.Category,
		Calories:          in.Calories,
		Protein:           in.Protein,
		Carbohydrates:     in.Carbohydrates,
		Fats:              in.Fats,
		DietaryPreference: in.DietaryPreference,
		ServingSize:       in.ServingSize,
		Allergens:         in.Allergens,
		Ingredients:       in.Ingredients,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		IsActive:          true,
		NutritionScore:    in.NutritionScore,
	}
}

// MealUpdateInput is a partial update: nil means "leave untouched".
type MealUpdateInput struct {
	MealName          *string   `json:"mealName"`
	Cuisine           *string   `json:"cuisine"`
	Category          *string   `json:"category"`
	Calories          *float64  `json:"calories"`
	Protein           *float64  `json:"protein"`
	Carbohydrates     *float64  `json:"carbohydrates"`
	Fats              *float64  `json:"fats"`
	DietaryPreference *string   `json:"dietaryPreference"`
	ServingSize       *string   `json:"servingSize"`
	Allergens         *[]string `json:"allergens"`
	Ingredients       *[]string `json:"ingredients"`
	Description       *string   `json:"description"`
	ImageURL          *string   `json:"imageUrl"`
	IsActive          *bool     `json:"isActive"`
	NutritionScore    *float64  `json:"nutritionScore"`
}

// MealFilter is a conjunction; zero values mean "no constraint".
// Listing is always restricted to active meals.
type MealFilter struct {
	Cuisine           string
	Cuisines          []string
	Category          string
	DietaryPreference string
	MinCalories       *float64
	MaxCalories       *float64
	MinProtein        *float64
}

func (s *MealService) Create(in MealInput) (*models.Meal, error) {
	meal := in.toMeal()
	if details := meal.Validate(); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// List returns active meals matching the filter, most popular first,
// ties broken by average rating.
func (s *MealService) List(f MealFilter) ([]models.Meal, error) {
	q := config.DB.Model(&models.Meal{}).Where("is_active = ?", true)
	if f.Cuisine != "" {
		q = q.Where("cuisine = ?", f.Cuisine)
	}
	if len(f.Cuisines) > 0 {
		q = q.Where("cuisine IN ?", []string(f.Cuisines))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.DietaryPreference != "" {
		q = q.Where("dietary_preference = ?", f.DietaryPreference)
	}
	if f.MinCalories != nil {
		q = q.Where("calories >= ?", *f.MinCalories)
	}
	if f.MaxCalories != nil {
		q = q.Where("calories <= ?", *f.MaxCalories)
	}
	if f.MinProtein != nil {
		q = q.Where("protein >= ?", *f.MinProtein)
	}

	var meals []models.Meal
	err := q.Order("popularity DESC").Order("average_rating DESC").Find(&meals).Error
	return meals, err
}

func (s *MealService) GetByID(id string) (*models.Meal, error) {
	var meal models.Meal
	if err := config.DB.First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// Update merges the non-nil fields into the stored meal and re-validates
// the whole document before saving.
func (s *MealService) Update(id string, in MealUpdateInput) (*models.Meal, error) {
	meal, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.MealName != nil {
		meal.MealName = *in.MealName
	}
	if in.Cuisine != nil {
		meal.Cuisine = *in.Cuisine
	}
	if in.Category != nil {
		meal.Category = *in.Category
	}
	if in.Calories != nil {
		meal.Calories = *in.Calories
	}
	if in.Protein != nil {
		meal.Protein = *in.Protein
	}
	if in.Carbohydrates != nil {
		meal.Carbohydrates = in.Carbohydrates
	}
	if in.Fats != nil {
		meal.Fats = in.Fats
	}
	if in.DietaryPreference != nil {
		meal.DietaryPreference = *in.DietaryPreference
	}
	if in.ServingSize != nil {
		meal.ServingSize = *in.ServingSize
	}
	if in.Allergens != nil {
		meal.Allergens = *in.Allergens
	}
	if in.Ingredients != nil {
		meal.Ingredients = *in.Ingredients
	}
	if in.Description != nil {
		meal.Description = *in.Description
	}
	if in.ImageURL != nil {
		meal.ImageURL = *in.ImageURL
	}
	if in.NutritionScore != nil {
		meal.NutritionScore = in.NutritionScore
	}

	if in.IsActive != nil {
		meal.IsActive = *in.IsActive
	}

	if details := meal.Validate(); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}
	if err := config.DB.Save(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// Deactivate soft-deletes a meal. Deactivating twice is fine.
func (s *MealService) Deactivate(id string) error {
	res := config.DB.Model(&models.Meal{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkCreate inserts what it can: an invalid row is skipped, not fatal.
// Returns the number of rows actually inserted.
func (s *MealService) BulkCreate(inputs []MealInput) (int, error) {
	inserted := 0
	for i, in := range inputs {
		if _, err := s.Create(in); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				config.Log.Warnw("skipping invalid meal row", "row", i, "details", verr.Details)
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
