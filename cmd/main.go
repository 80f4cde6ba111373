package main

import (
	"os"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/routes"
	"github.com/Minhaj225/NutriGoal/utils"
)

func main() {
	config.InitLogger()
	config.InitDB()
	config.InitRedis()
	config.InitAdminAuth()
	utils.InitS3()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	config.Log.Infow("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatalw("server exited", "error", err)
	}
}
