package services

import (
	"context"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/models"

	"gorm.io/gorm"
)

// RatingService folds one star rating into a meal's running average and
// popularity counter, and mirrors the like/dislike signal into the
// rater's history.
type RatingService struct {
	students *StudentService
	cache    RecommendationInvalidator
}

func NewRatingService(students *StudentService, cache RecommendationInvalidator) *RatingService {
	return &RatingService{students: students, cache: cache}
}

// Rate applies stars (1-5) to the meal. The average, count and
// popularity move together in a single UPDATE with arithmetic on the
// current column values, so two simultaneous raters serialize on the row
// instead of clobbering each other's read-modify-write. The stored
// average is rounded to 2 decimals on every write; repeated rounding is
// an accepted lossy property of the running mean.
func (s *RatingService) Rate(mealID string, stars int, raterEmail string) (*models.Meal, error) {
	if stars < 1 || stars > 5 {
		return nil, newValidationError("rating must be between 1 and 5")
	}

	res := config.DB.Model(&models.Meal{}).Where("id = ?", mealID).Updates(map[string]any{
		"average_rating": gorm.Expr("round((average_rating * total_ratings + ?) * 1.0 / (total_ratings + 1), 2)", stars),
		"total_ratings":  gorm.Expr("total_ratings + 1"),
		"popularity":     gorm.Expr("popularity + 1"),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var meal models.Meal
	if err := config.DB.First(&meal, "id = ?", mealID).Error; err != nil {
		return nil, err
	}

	// History mirror is best-effort: an unknown rater email must not
	// undo a rating that is already persisted.
	if raterEmail != "" {
		liked := stars >= 3
		if err := s.students.RecordFeedback(raterEmail, mealID, liked); err != nil {
			config.Log.Warnw("rating recorded but history update skipped",
				"meal", mealID, "email", raterEmail, "error", err)
		} else if s.cache != nil {
			s.cache.Invalidate(context.Background(), raterEmail)
		}
	}

	return &meal, nil
}
