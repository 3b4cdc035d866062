package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Ledger   Ledger
	Tree     Tree
	LogLevel string
}

type Server struct {
	Port             string
	CorsAllowOrigins []string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Ledger selects where session answers live: "memory", "redis" or "postgres".
type Ledger struct {
	Backend    string
	SessionTTL time.Duration
}

// Tree.CacheTTL bounds the redis copy of a test; LocalTTL bounds the built
// navigation tree kept in this process. A zero LocalTTL disables it.
type Tree struct {
	MaxBranchDepth int
	CacheTTL       time.Duration
	LocalTTL       time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LEDGER_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("TREE_CACHE_TTL", "10m")
	viper.SetDefault("TREE_LOCAL_TTL", "30s")
	viper.SetDefault("MAX_BRANCH_DEPTH", 64)
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.CorsAllowOrigins = splitList(viper.GetString("CORS_ALLOW_ORIGINS"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Ledger.Backend = strings.ToLower(viper.GetString("LEDGER_BACKEND"))
	config.Ledger.SessionTTL = viper.GetDuration("SESSION_TTL")
	config.Tree.MaxBranchDepth = viper.GetInt("MAX_BRANCH_DEPTH")
	config.Tree.CacheTTL = viper.GetDuration("TREE_CACHE_TTL")
	config.Tree.LocalTTL = viper.GetDuration("TREE_LOCAL_TTL")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("redisAddr", config.Redis.Addr).
		Str("ledgerBackend", config.Ledger.Backend).
		Msg("Config loaded")
	return &config, nil

}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
