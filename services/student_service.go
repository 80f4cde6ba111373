package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/models"

	"gorm.io/gorm"
)

type StudentService struct {
	cache RecommendationInvalidator
}

func NewStudentService(cache RecommendationInvalidator) *StudentService {
	return &StudentService{cache: cache}
}

// Profile writes change what Recommend would return, so the student's
// cached rankings must not outlive them.
func (s *StudentService) invalidateRecommendations(email string) {
	if s.cache != nil {
		s.cache.Invalidate(context.Background(), email)
	}
}

// StudentInput is the profile-save payload. Meal history is not part of
// it: history rows only come from rating and feedback events.
type StudentInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Preferences struct {
		Cuisines          []string `json:"cuisines"`
		DietaryPreference string   `json:"dietaryPreference"`
		Categories        []string `json:"categories"`
	} `json:"preferences"`
	Allergies      []string              `json:"allergies"`
	NutritionGoals models.NutritionGoals `json:"nutritionGoals"`
	ActivityLevel  string                `json:"activityLevel"`
}

// toStudent builds a fresh document with schema defaults applied, so an
// upsert behaves as a whole-document replace: anything the caller left
// out reverts to its default.
func (in StudentInput) toStudent() models.Student {
	s := models.Student{
		Name:  in.Name,
		Email: strings.TrimSpace(in.Email),
		Preferences: models.Preferences{
			Cuisines:          in.Preferences.Cuisines,
			DietaryPreference: in.Preferences.DietaryPreference,
			Categories:        in.Preferences.Categories,
		},
		Allergies:      in.Allergies,
		NutritionGoals: in.NutritionGoals,
		ActivityLevel:  in.ActivityLevel,
	}
	if s.Preferences.DietaryPreference == "" {
		s.Preferences.DietaryPreference = "Vegetarian"
	}
	if s.ActivityLevel == "" {
		s.ActivityLevel = "Moderate"
	}
	return s
}

// UpsertByEmail creates or fully replaces the profile stored under the
// given email. Replace semantics are deliberate and documented: omitted
// fields revert to defaults. History rows are untouched.
func (s *StudentService) UpsertByEmail(in StudentInput) (*models.Student, error) {
	replacement := in.toStudent()
	if replacement.Email == "" {
		return nil, newValidationError("email is required")
	}
	if details := replacement.Validate(); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	var existing models.Student
	err := config.DB.Where("email = ?", replacement.Email).First(&existing).Error
	switch {
	case err == nil:
		replacement.ID = existing.ID
		replacement.CreatedAt = existing.CreatedAt
		if err := config.DB.Save(&replacement).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := config.DB.Create(&replacement).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicate
			}
			return nil, err
		}
	default:
		return nil, err
	}
	s.invalidateRecommendations(replacement.Email)
	return &replacement, nil
}

// GetByEmail returns the profile with meal history populated. A history
// entry whose meal no longer resolves keeps its null meal rather than
// failing the read.
func (s *StudentService) GetByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := config.DB.
		// Insertion order: an entry updated in place keeps its position.
		Preload("MealHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("MealHistory.Meal").
		Where("email = ?", email).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// ListAll is the admin summary view; history is omitted.
func (s *StudentService) ListAll() ([]models.Student, error) {
	var students []models.Student
	err := config.DB.Order("email ASC").Find(&students).Error
	return students, err
}

// RecordFeedback applies the update-in-place-or-append rule: one history
// entry per meal id, refreshed on repeat feedback.
func (s *StudentService) RecordFeedback(email, mealID string, liked bool) error {
	if mealID == "" {
		return newValidationError("mealId is required")
	}

	var student models.Student
	if err := config.DB.Where("email = ?", email).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var entry models.MealHistoryEntry
	err := config.DB.
		Where("student_id = ? AND meal_id = ?", student.ID, mealID).
		First(&entry).Error
	switch {
	case err == nil:
		entry.Liked = liked
		entry.ConsumedAt = time.Now()
		return config.DB.Save(&entry).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.MealHistoryEntry{
			StudentID:  student.ID,
			MealID:     mealID,
			Liked:      liked,
			ConsumedAt: time.Now(),
		}
		return config.DB.Create(&entry).Error
	default:
		return err
	}
}

// DeleteByEmail removes the profile and its history rows in one
// transaction, so a failure never strands a profile without history or
// orphaned history rows.
func (s *StudentService) DeleteByEmail(email string) error {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.Where("email = ?", email).First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.MealHistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		return err
	}
	s.invalidateRecommendations(email)
	return nil
}
