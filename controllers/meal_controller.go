package controllers

import (
	"errors"
	"strconv"

	"github.com/Minhaj225/NutriGoal/services"
	"github.com/Minhaj225/NutriGoal/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	meals   *services.MealService
	ratings *services.RatingService
	recs    *services.RecommendationService
}

func NewMealController(meals *services.MealService, ratings *services.RatingService, recs *services.RecommendationService) *MealController {
	return &MealController{meals: meals, ratings: ratings, recs: recs}
}

func validationDetails(err error) ([]string, bool) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Details, true
	}
	return nil, false
}

func parseFloatParam(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (ctl *MealController) ListMeals(c *gin.Context) {
	filter := services.MealFilter{
		Cuisine:           c.Query("cuisine"),
		Category:          c.Query("category"),
		DietaryPreference: c.Query("dietaryPreference"),
		MinCalories:       parseFloatParam(c, "minCalories"),
		MaxCalories:       parseFloatParam(c, "maxCalories"),
		MinProtein:        parseFloatParam(c, "minProtein"),
	}

	meals, err := ctl.meals.List(filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "count": len(meals), "meals": meals})
}

func (ctl *MealController) GetMeal(c *gin.Context) {
	meal, err := ctl.meals.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "meal": meal})
}

type createMealBody struct {
	services.MealInput
	// ImageData is an optional base64 data URL; it gets uploaded and the
	// resulting URL stored on the meal.
	ImageData string `json:"imageData"`
}

func (ctl *MealController) CreateMeal(c *gin.Context) {
	var body createMealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "error": err.Error()})
		return
	}

	if body.ImageData != "" {
		url, err := utils.UploadBase64ImageToS3(body.ImageData, body.MealName)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "failed to upload image: " + err.Error()})
			return
		}
		body.MealInput.ImageURL = url
	}

	meal, err := ctl.meals.Create(body.MealInput)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			c.JSON(400, gin.H{"success": false, "error": "Validation error", "details": details})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Meal created successfully", "meal": meal})
}

type updateMealBody struct {
	services.MealUpdateInput
	ImageData string `json:"imageData"`
}

func (ctl *MealController) UpdateMeal(c *gin.Context) {
	var body updateMealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "error": err.Error()})
		return
	}

	if body.ImageData != "" {
		url, err := utils.UploadBase64ImageToS3(body.ImageData, c.Param("id"))
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "failed to upload image: " + err.Error()})
			return
		}
		body.MealUpdateInput.ImageURL = &url
	}

	meal, err := ctl.meals.Update(c.Param("id"), body.MealUpdateInput)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		if details, ok := validationDetails(err); ok {
			c.JSON(400, gin.H{"success": false, "error": "Validation error", "details": details})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Meal updated successfully", "meal": meal})
}

func (ctl *MealController) DeleteMeal(c *gin.Context) {
	if err := ctl.meals.Deactivate(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Meal deactivated successfully"})
}

type rateMealBody struct {
	Rating int    `json:"rating"`
	Email  string `json:"email"`
}

func (ctl *MealController) RateMeal(c *gin.Context) {
	var body rateMealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "error": err.Error()})
		return
	}

	meal, err := ctl.ratings.Rate(c.Param("id"), body.Rating, body.Email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		if _, ok := validationDetails(err); ok {
			c.JSON(400, gin.H{"success": false, "error": "Rating must be between 1 and 5"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"success":          true,
		"message":          "Rating recorded successfully",
		"newAverageRating": meal.AverageRating,
		"totalRatings":     meal.TotalRatings,
	})
}

type bulkImportBody struct {
	Meals []services.MealInput `json:"meals"`
}

func (ctl *MealController) BulkImport(c *gin.Context) {
	var body bulkImportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(body.Meals) == 0 {
		c.JSON(400, gin.H{"success": false, "error": "Meals array is required"})
		return
	}

	count, err := ctl.meals.BulkCreate(body.Meals)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"success":       true,
		"message":       strconv.Itoa(count) + " meals imported successfully",
		"importedCount": count,
	})
}

func (ctl *MealController) Recommend(c *gin.Context) {
	limit := services.DefaultRecommendationLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	result, err := ctl.recs.Recommend(c.Request.Context(), c.Param("email"), limit, c.Query("mealType"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"success": false, "error": "Student not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"success":             true,
		"recommendations":     result.Recommendations,
		"studentPreferences":  result.StudentPreferences,
		"totalMealsEvaluated": result.TotalMealsEvaluated,
		"mlApiUsed":           result.MLAPIUsed,
	})
}
