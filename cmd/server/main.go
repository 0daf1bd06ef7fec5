package main

import (
	"context"
	"log"
	"os"
	"strings"

	"drinkmate_backend/internal/config"
	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ Stripe key missing, card payments disabled")
	} else {
		log.Println("✅ Stripe initialized")
	}

	database.ConnectDatabases()
	database.InitPreparedStatements()
	warmupRedisCache()

	r := gin.Default()
	r.Use(corsConfig())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Drinkmate server listening on port", port)
	r.Run(":" + port)
}

func corsConfig() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowCredentials = true
	return cors.New(cfg)
}

// warmupRedisCache pings Redis so the first request does not pay the
// connection setup.
func warmupRedisCache() {
	if err := database.Redis.Ping(context.Background()).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
