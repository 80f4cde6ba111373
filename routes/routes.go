package routes

import (
	"os"

	"github.com/Minhaj225/NutriGoal/controllers"
	"github.com/Minhaj225/NutriGoal/middlewares"
	"github.com/Minhaj225/NutriGoal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	mealSvc := services.NewMealService()
	cache := services.NewRecommendationCache()
	studentSvc := services.NewStudentService(cache)
	scorer := services.NewMLClient(os.Getenv("ML_API_URL"))
	ratingSvc := services.NewRatingService(studentSvc, cache)
	recSvc := services.NewRecommendationService(mealSvc, studentSvc, scorer, cache)

	mealCtl := controllers.NewMealController(mealSvc, ratingSvc, recSvc)
	studentCtl := controllers.NewStudentController(studentSvc)

	r.GET("/", controllers.Root)

	api := r.Group("/api")
	{
		api.GET("", controllers.APIInfo)
		api.GET("/health", controllers.Health)
		api.POST("/auth/login", controllers.Login)

		meals := api.Group("/meals")
		{
			meals.GET("", mealCtl.ListMeals)
			meals.GET("/:id", mealCtl.GetMeal)
			meals.GET("/recommend/:email", mealCtl.Recommend)
			meals.POST("/:id/rate", mealCtl.RateMeal)

			admin := meals.Group("", middlewares.AdminRequired())
			{
				admin.POST("", mealCtl.CreateMeal)
				admin.PUT("/:id", mealCtl.UpdateMeal)
				admin.DELETE("/:id", mealCtl.DeleteMeal)
				admin.POST("/bulk-import", mealCtl.BulkImport)
			}
		}

		students := api.Group("/students")
		{
			students.GET("", studentCtl.ListStudents)
			students.POST("", studentCtl.UpsertStudent)
			students.GET("/:email", studentCtl.GetStudent)
			students.POST("/:email/feedback", studentCtl.RecordFeedback)
			students.DELETE("/:email", studentCtl.DeleteStudent)
		}
	}

	r.NoRoute(controllers.NotFound)

	return r
}
