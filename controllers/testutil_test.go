package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/middlewares"
	"github.com/Minhaj225/NutriGoal/models"
	"github.com/Minhaj225/NutriGoal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubScorer always endorses everything; controller tests care about the
// HTTP surface, not ranking.
type stubScorer struct{ fail bool }

func (s *stubScorer) ScoreBatch(ctx context.Context, candidates []models.Meal) ([]services.PredictionResult, error) {
	if s.fail {
		return nil, fmt.Errorf("scorer down")
	}
	out := make([]services.PredictionResult, len(candidates))
	for i := range candidates {
		out[i] = services.PredictionResult{Recommended: true, Confidence: 0.9}
	}
	return out, nil
}

func setupRouter(t *testing.T, scorer services.Scorer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if config.Log == nil {
		config.Log = zap.NewNop().Sugar()
	}

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Meal{}, &models.Student{}, &models.MealHistoryEntry{}))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		config.DB = prev
	})

	mealSvc := services.NewMealService()
	studentSvc := services.NewStudentService(nil)
	ratingSvc := services.NewRatingService(studentSvc, nil)
	recSvc := services.NewRecommendationService(mealSvc, studentSvc, scorer, nil)

	mealCtl := NewMealController(mealSvc, ratingSvc, recSvc)
	studentCtl := NewStudentController(studentSvc)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", Login)
	api.GET("/health", Health)

	meals := api.Group("/meals")
	meals.GET("", mealCtl.ListMeals)
	meals.GET("/:id", mealCtl.GetMeal)
	meals.GET("/recommend/:email", mealCtl.Recommend)
	meals.POST("/:id/rate", mealCtl.RateMeal)
	admin := meals.Group("", middlewares.AdminRequired())
	admin.POST("", mealCtl.CreateMeal)
	admin.PUT("/:id", mealCtl.UpdateMeal)
	admin.DELETE("/:id", mealCtl.DeleteMeal)
	admin.POST("/bulk-import", mealCtl.BulkImport)

	students := api.Group("/students")
	students.GET("", studentCtl.ListStudents)
	students.POST("", studentCtl.UpsertStudent)
	students.GET("/:email", studentCtl.GetStudent)
	students.POST("/:email/feedback", studentCtl.RecordFeedback)
	students.DELETE("/:email", studentCtl.DeleteStudent)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func adminHeaders(t *testing.T) map[string]string {
	t.Helper()
	token := mintToken(t, "admin")
	return map[string]string{"Authorization": "Bearer " + token}
}

func mustCreateMealRow(t *testing.T, name string) *models.Meal {
	t.Helper()
	meal, err := services.NewMealService().Create(services.MealInput{
		MealName:          name,
		Cuisine:           "South Indian",
		Category:          "Breakfast",
		Calories:          200,
		Protein:           8,
		DietaryPreference: "Vegetarian",
	})
	require.NoError(t, err)
	return meal
}

func mustCreateStudentRow(t *testing.T, email string) *models.Student {
	t.Helper()
	in := services.StudentInput{Name: "Controller Test", Email: email}
	in.Preferences.Cuisines = []string{"South Indian"}
	student, err := services.NewStudentService(nil).UpsertByEmail(in)
	require.NoError(t, err)
	return student
}
