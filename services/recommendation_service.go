package services

import (
	"context"
	"sort"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/models"
)

const DefaultRecommendationLimit = 10

// fallbackConfidence is attached to every entry ranked without the
// scorer's help.
const fallbackConfidence = 0.5

// RecommendedMeal is a meal plus its relevance signal.
type RecommendedMeal struct {
	models.Meal
	Confidence             float64 `json:"confidence"`
	MLRecommended          bool    `json:"mlRecommended"`
	FallbackRecommendation bool    `json:"fallbackRecommendation,omitempty"`
}

type RecommendationResult struct {
	Recommendations     []RecommendedMeal  `json:"recommendations"`
	StudentPreferences  models.Preferences `json:"studentPreferences"`
	TotalMealsEvaluated int                `json:"totalMealsEvaluated"`
	MLAPIUsed           bool               `json:"mlApiUsed"`
}

// RecommendationService turns a student's stored preferences plus the
// matching meal candidates into a ranked list. Scorer trouble of any
// kind degrades to a popularity/rating sort; an unknown student is the
// only hard error.
type RecommendationService struct {
	meals    *MealService
	students *StudentService
	scorer   Scorer
	cache    *RecommendationCache
}

func NewRecommendationService(meals *MealService, students *StudentService, scorer Scorer, cache *RecommendationCache) *RecommendationService {
	return &RecommendationService{meals: meals, students: students, scorer: scorer, cache: cache}
}

// filterFor derives the candidate filter from the stored profile plus
// the optional per-request category restriction.
func filterFor(student *models.Student, mealType string) MealFilter {
	f := MealFilter{
		Category:          mealType,
		DietaryPreference: student.Preferences.DietaryPreference,
		Cuisines:          student.Preferences.Cuisines,
	}
	if v := student.NutritionGoals.MaxCaloriesPerMeal; v != nil {
		max := float64(*v)
		f.MaxCalories = &max
	}
	if v := student.NutritionGoals.MinProteinPerMeal; v != nil {
		min := float64(*v)
		f.MinProtein = &min
	}
	return f
}

func (s *RecommendationService) Recommend(ctx context.Context, email string, limit int, mealType string) (*RecommendationResult, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	if cached, ok := s.cache.Get(ctx, email, limit, mealType); ok {
		return cached, nil
	}

	student, err := s.students.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	candidates, err := s.meals.List(filterFor(student, mealType))
	if err != nil {
		return nil, err
	}

	result := &RecommendationResult{
		Recommendations:     []RecommendedMeal{},
		StudentPreferences:  student.Preferences,
		TotalMealsEvaluated: len(candidates),
	}
	// Nothing matched the profile: an empty list, not an error.
	if len(candidates) == 0 {
		return result, nil
	}

	predictions, err := s.scorer.ScoreBatch(ctx, candidates)
	if err != nil {
		config.Log.Warnw("ml scorer unavailable, using fallback ranking", "email", email, "error", err)
		result.Recommendations = rankFallback(candidates, limit)
		return result, nil
	}

	result.Recommendations = rankScored(candidates, predictions, limit)
	// Mirrors the API contract: mlApiUsed reflects whether anything in
	// the returned list actually came from the scorer.
	result.MLAPIUsed = len(result.Recommendations) > 0 && result.Recommendations[0].MLRecommended

	s.cache.Set(ctx, email, limit, mealType, result)
	return result, nil
}

// rankScored keeps candidates the scorer endorsed with confidence above
// 0.5 and orders them by 0.7*confidence + 0.3*averageRating. Candidates
// arrive popularity-desc/rating-desc from the store and the sort is
// stable, so that order breaks ties.
func rankScored(candidates []models.Meal, predictions []PredictionResult, limit int) []RecommendedMeal {
	recommended := make([]RecommendedMeal, 0, len(candidates))
	for i, p := range predictions {
		if p.Recommended && p.Confidence > 0.5 {
			recommended = append(recommended, RecommendedMeal{
				Meal:          candidates[i],
				Confidence:    p.Confidence,
				MLRecommended: true,
			})
		}
	}
	sort.SliceStable(recommended, func(i, j int) bool {
		si := recommended[i].Confidence*0.7 + recommended[i].AverageRating*0.3
		sj := recommended[j].Confidence*0.7 + recommended[j].AverageRating*0.3
		return si > sj
	})
	if len(recommended) > limit {
		recommended = recommended[:limit]
	}
	return recommended
}

// rankFallback orders all candidates by 0.6*averageRating +
// 0.4*popularity, the best the stored signals can do without a scorer.
func rankFallback(candidates []models.Meal, limit int) []RecommendedMeal {
	ranked := make([]RecommendedMeal, len(candidates))
	for i, m := range candidates {
		ranked[i] = RecommendedMeal{
			Meal:                   m,
			Confidence:             fallbackConfidence,
			MLRecommended:          false,
			FallbackRecommendation: true,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si := ranked[i].AverageRating*0.6 + float64(ranked[i].Popularity)*0.4
		sj := ranked[j].AverageRating*0.6 + float64(ranked[j].Popularity)*0.4
		return si > sj
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
