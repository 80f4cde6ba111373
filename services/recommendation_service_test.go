package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Minhaj225/NutriGoal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScorer returns canned results keyed by meal name, or fails.
type fakeScorer struct {
	results map[string]PredictionResult
	err     error
	calls   int
}

func (f *fakeScorer) ScoreBatch(ctx context.Context, candidates []models.Meal) ([]PredictionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]PredictionResult, len(candidates))
	for i, m := range candidates {
		out[i] = f.results[m.MealName]
	}
	return out, nil
}

func newRecommender(scorer Scorer) (*RecommendationService, *MealService, *StudentService) {
	meals := NewMealService()
	students := NewStudentService(nil)
	return NewRecommendationService(meals, students, scorer, nil), meals, students
}

func TestRecommendUnknownStudent(t *testing.T) {
	setupTestDB(t)
	svc, _, _ := newRecommender(&fakeScorer{})

	_, err := svc.Recommend(context.Background(), "ghost@example.com", 10, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendEmptyCandidateSet(t *testing.T) {
	setupTestDB(t)
	scorer := &fakeScorer{}
	svc, _, students := newRecommender(scorer)

	mustUpsertStudent(t, students, studentInput("empty@example.com"))

	result, err := svc.Recommend(context.Background(), "empty@example.com", 10, "")
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Zero(t, result.TotalMealsEvaluated)
	assert.False(t, result.MLAPIUsed)
	assert.Zero(t, scorer.calls, "no candidates means no scorer call")
}

func TestRecommendFilterRespectsProfile(t *testing.T) {
	setupTestDB(t)
	scorer := &fakeScorer{results: map[string]PredictionResult{
		"Idli":           {Recommended: true, Confidence: 0.9},
		"Butter Chicken": {Recommended: true, Confidence: 0.9},
		"Heavy Dosa":     {Recommended: true, Confidence: 0.9},
	}}
	svc, meals, students := newRecommender(scorer)

	mustCreateMeal(t, meals, mealInput("Idli", func(in *MealInput) { in.Calories = 150 }))
	// Wrong cuisine for this student.
	mustCreateMeal(t, meals, mealInput("Butter Chicken", func(in *MealInput) {
		in.Cuisine = "North Indian"
		in.DietaryPreference = "Non-Vegetarian"
	}))
	// Right cuisine, too heavy.
	mustCreateMeal(t, meals, mealInput("Heavy Dosa", func(in *MealInput) { in.Calories = 800 }))

	in := studentInput("picky@example.com")
	maxCal := 400
	in.NutritionGoals.MaxCaloriesPerMeal = &maxCal
	mustUpsertStudent(t, students, in)

	result, err := svc.Recommend(context.Background(), "picky@example.com", 10, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalMealsEvaluated)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Idli", result.Recommendations[0].MealName)
}

func TestRecommendSuccessPath(t *testing.T) {
	setupTestDB(t)
	scorer := &fakeScorer{results: map[string]PredictionResult{
		"Low Confidence":  {Recommended: true, Confidence: 0.4},
		"Not Recommended": {Recommended: false, Confidence: 0.99},
		"Strong Pick":     {Recommended: true, Confidence: 0.95},
		"Decent Pick":     {Recommended: true, Confidence: 0.6},
	}}
	svc, meals, students := newRecommender(scorer)

	for _, name := range []string{"Low Confidence", "Not Recommended", "Strong Pick", "Decent Pick"} {
		mustCreateMeal(t, meals, mealInput(name))
	}
	mustUpsertStudent(t, students, studentInput("s@example.com"))

	result, err := svc.Recommend(context.Background(), "s@example.com", 10, "")
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalMealsEvaluated)
	assert.True(t, result.MLAPIUsed)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Strong Pick", result.Recommendations[0].MealName)
	assert.Equal(t, "Decent Pick", result.Recommendations[1].MealName)
	for _, rec := range result.Recommendations {
		assert.True(t, rec.MLRecommended)
		assert.Greater(t, rec.Confidence, 0.5)
		assert.False(t, rec.FallbackRecommendation)
	}

	// Composite ordering is non-increasing.
	for i := 1; i < len(result.Recommendations); i++ {
		prev := result.Recommendations[i-1]
		cur := result.Recommendations[i]
		assert.GreaterOrEqual(t,
			prev.Confidence*0.7+prev.AverageRating*0.3,
			cur.Confidence*0.7+cur.AverageRating*0.3)
	}
}

func TestRecommendLimitTruncates(t *testing.T) {
	setupTestDB(t)
	results := map[string]PredictionResult{}
	names := []string{"M1", "M2", "M3", "M4", "M5"}
	for _, n := range names {
		results[n] = PredictionResult{Recommended: true, Confidence: 0.8}
	}
	scorer := &fakeScorer{results: results}
	svc, meals, students := newRecommender(scorer)

	for _, n := range names {
		mustCreateMeal(t, meals, mealInput(n))
	}
	mustUpsertStudent(t, students, studentInput("limited@example.com"))

	result, err := svc.Recommend(context.Background(), "limited@example.com", 2, "")
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 2)
	assert.Equal(t, 5, result.TotalMealsEvaluated)
}

func TestRecommendFallbackPath(t *testing.T) {
	setupTestDB(t)
	scorer := &fakeScorer{err: errors.New("connection refused")}
	svc, meals, students := newRecommender(scorer)

	popular := mustCreateMeal(t, meals, mealInput("Popular"))
	quiet := mustCreateMeal(t, meals, mealInput("Quiet"))
	ratings := NewRatingService(NewStudentService(nil), nil)
	for i := 0; i < 3; i++ {
		_, err := ratings.Rate(popular.ID, 5, "")
		require.NoError(t, err)
	}
	_, err := ratings.Rate(quiet.ID, 4, "")
	require.NoError(t, err)

	mustUpsertStudent(t, students, studentInput("fb@example.com"))

	result, err := svc.Recommend(context.Background(), "fb@example.com", 10, "")
	require.NoError(t, err, "scorer failure must degrade, not error")

	assert.False(t, result.MLAPIUsed)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Popular", result.Recommendations[0].MealName)
	for _, rec := range result.Recommendations {
		assert.False(t, rec.MLRecommended)
		assert.True(t, rec.FallbackRecommendation)
		assert.Equal(t, 0.5, rec.Confidence)
	}

	for i := 1; i < len(result.Recommendations); i++ {
		prev := result.Recommendations[i-1]
		cur := result.Recommendations[i]
		assert.GreaterOrEqual(t,
			prev.AverageRating*0.6+float64(prev.Popularity)*0.4,
			cur.AverageRating*0.6+float64(cur.Popularity)*0.4)
	}
}

func TestRecommendCategoryRestriction(t *testing.T) {
	setupTestDB(t)
	scorer := &fakeScorer{results: map[string]PredictionResult{
		"Breakfast Pick": {Recommended: true, Confidence: 0.9},
		"Snack Pick":     {Recommended: true, Confidence: 0.9},
	}}
	svc, meals, students := newRecommender(scorer)

	mustCreateMeal(t, meals, mealInput("Breakfast Pick"))
	mustCreateMeal(t, meals, mealInput("Snack Pick", func(in *MealInput) { in.Category = "Snack" }))
	mustUpsertStudent(t, students, studentInput("cat@example.com"))

	result, err := svc.Recommend(context.Background(), "cat@example.com", 10, "Snack")
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Snack Pick", result.Recommendations[0].MealName)
}

func TestRecommendAllBelowThreshold(t *testing.T) {
	setupTestDB(t)
	scorer := &fakeScorer{results: map[string]PredictionResult{
		"Meh": {Recommended: true, Confidence: 0.3},
	}}
	svc, meals, students := newRecommender(scorer)

	mustCreateMeal(t, meals, mealInput("Meh"))
	mustUpsertStudent(t, students, studentInput("meh@example.com"))

	result, err := svc.Recommend(context.Background(), "meh@example.com", 10, "")
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.False(t, result.MLAPIUsed, "an empty scored list means the scorer contributed nothing")
	assert.Equal(t, 1, result.TotalMealsEvaluated)
}
