package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/services"
)

// Seeds the meal catalog from the Indian food nutrition dataset CSV.
// Column layout: name, category, _, calories, protein, carbs, fats, diet.

func assignCuisine(foodName string) string {
	name := strings.ToLower(foodName)
	anyOf := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(name, w) {
				return true
			}
		}
		return false
	}
	switch {
	case anyOf("idli", "dosa", "sambar", "rasam", "vada", "uttapam"):
		return "South Indian"
	case anyOf("roti", "dal", "chole", "butter", "tandoori", "paratha", "palak"):
		return "North Indian"
	case anyOf("pani puri", "samosa", "dhokla"):
		return "Street Food"
	default:
		return "General"
	}
}

func assignCategory(foodName, originalCategory string) string {
	name := strings.ToLower(foodName)
	category := strings.ToLower(originalCategory)
	anyOf := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(name, w) {
				return true
			}
		}
		return false
	}
	switch {
	case strings.Contains(category, "breakfast") || anyOf("idli", "dosa", "upma", "poha", "paratha"):
		return "Breakfast"
	case strings.Contains(category, "snack") || anyOf("samosa", "vada", "dhokla", "pani puri"):
		return "Snack"
	case strings.Contains(category, "side") || anyOf("sambar", "rasam"):
		return "Side Dish"
	case strings.Contains(category, "staple") || anyOf("roti", "rice"):
		return "Staple"
	default:
		return "Main Dish"
	}
}

func parseField(record []string, idx int) float64 {
	if idx >= len(record) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}

func main() {
	csvPath := flag.String("csv", "ml/indian_food_nutrition_dataset.csv", "path to the nutrition dataset")
	flag.Parse()

	config.InitLogger()
	config.InitDB()

	f, err := os.Open(*csvPath)
	if err != nil {
		config.Log.Fatalw("cannot open dataset", "path", *csvPath, "error", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		config.Log.Fatalw("cannot parse dataset", "error", err)
	}
	if len(records) < 2 {
		config.Log.Fatalw("dataset has no data rows")
	}

	var inputs []services.MealInput
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		foodName := strings.TrimSpace(record[0])
		calories := parseField(record, 3)
		if foodName == "" || calories <= 0 {
			continue
		}

		protein := math.Round(parseField(record, 4)*10) / 10
		carbs := math.Round(parseField(record, 5)*10) / 10
		fats := math.Round(parseField(record, 6)*10) / 10
		diet := "Vegetarian"
		if len(record) > 7 && strings.Contains(record[7], "Non") {
			diet = "Non-Vegetarian"
		}

		cuisine := assignCuisine(foodName)
		score := math.Min(10, math.Max(1, math.Round(protein/calories*100*2)))

		inputs = append(inputs, services.MealInput{
			MealName:          foodName,
			Cuisine:           cuisine,
			Category:          assignCategory(foodName, record[1]),
			Calories:          math.Round(calories),
			Protein:           protein,
			Carbohydrates:     &carbs,
			Fats:              &fats,
			DietaryPreference: diet,
			ServingSize:       "1 serving",
			Description:       fmt.Sprintf("Traditional Indian %s dish", cuisine),
			NutritionScore:    &score,
		})
	}

	inserted, err := services.NewMealService().BulkCreate(inputs)
	if err != nil {
		config.Log.Fatalw("seeding aborted", "inserted", inserted, "error", err)
	}
	config.Log.Infow("seeding complete", "parsed", len(inputs), "inserted", inserted)
}
