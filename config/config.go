package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Storage  Storage
	Database Database
	Sheets   Sheets
	Auth     Auth
}

type Server struct {
	Port string
}

// Storage selects the repository backend: "sheets" (default) or "postgres".
type Storage struct {
	Backend  string
	CacheTTL time.Duration
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Sheets struct {
	CredentialsFile        string
	UsersSpreadsheetID     string
	QuizSpreadsheetID      string
	ResponsesSpreadsheetID string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("STORAGE_BACKEND", "sheets")
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("TOKEN_TTL_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")

	config.Storage.Backend = viper.GetString("STORAGE_BACKEND")
	config.Storage.CacheTTL = time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Sheets.CredentialsFile = viper.GetString("GOOGLE_CREDENTIALS_FILE")
	config.Sheets.UsersSpreadsheetID = viper.GetString("USERS_SPREADSHEET_ID")
	config.Sheets.QuizSpreadsheetID = viper.GetString("QUIZ_SPREADSHEET_ID")
	config.Sheets.ResponsesSpreadsheetID = viper.GetString("RESPONSES_SPREADSHEET_ID")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = time.Duration(viper.GetInt("TOKEN_TTL_MINUTES")) * time.Minute

	log.Info().Str("backend", config.Storage.Backend).Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
