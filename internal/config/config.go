package config

import "os"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port         string
	PostgresDSN  string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	RecipeAPIKey string
	RecipeAPIURL string
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8000"),
		PostgresDSN:  getenv("POSTGRES_DSN", ""),
		MongoURI:     getenv("MONGO_URI", ""),
		MongoDB:      getenv("MONGO_DB", "recipe_box"),
		JWTSecret:    getenv("JWT_SECRET", ""),
		RecipeAPIKey: getenv("RECIPE_API_KEY", ""),
		RecipeAPIURL: getenv("RECIPE_API_URL", "https://api.spoonacular.com"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
