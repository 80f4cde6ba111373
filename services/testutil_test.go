package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps config.DB for a per-test in-memory database. The
// shared-cache name is derived from the test name so parallel tests
// never see each other's rows.
func setupTestDB(t *testing.T) {
	t.Helper()
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
}

func mealInput(name string, overrides ...func(*MealInput)) MealInput {
	in := MealInput{
		MealName:          name,
		Cuisine:           "South Indian",
		Category:          "Breakfast",
		Calories:          250,
		Protein:           10,
		DietaryPreference: "Vegetarian",
	}
	for _, o := range overrides {
		o(&in)
	}
	return in
}

func mustCreateMeal(t *testing.T, svc *MealService, in MealInput) *models.Meal {
	t.Helper()
	meal, err := svc.Create(in)
	require.NoError(t, err)
	return meal
}

func studentInput(email string) StudentInput {
	in := StudentInput{Name: "Test Student", Email: email}
	in.Preferences.Cuisines = []string{"South Indian"}
	in.Preferences.DietaryPreference = "Vegetarian"
	return in
}

func mustUpsertStudent(t *testing.T, svc *StudentService, in StudentInput) *models.Student {
	t.Helper()
	student, err := svc.UpsertByEmail(in)
	require.NoError(t, err)
	return student
}
