package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv         string   `envconfig:"APP_ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"8080"`
	MongoURI       string   `envconfig:"MONGODB_URI" required:"true"`
	MongoDB        string   `envconfig:"MONGODB_NAME" default:"abarrotes"`
	JWTSecret      string   `envconfig:"JWT_SECRET" required:"true"`
	AdminSecret    string   `envconfig:"ADMIN_SECRET_KEY"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load carga el .env según APP_ENV y luego procesa las variables de entorno.
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if err := godotenv.Load(".env." + env); err != nil {
		logrus.Warnf("no se pudo cargar .env.%s, usando variables del sistema", env)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
