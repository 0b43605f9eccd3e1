package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath       string `envconfig:"DB_PATH" default:"./data/bot.db"`
	Timezone     string `envconfig:"TIMEZONE" default:"Asia/Bangkok"` // reference TZ for reminder triggers
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`        // debug|info|warn|error
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8080"`       // healthz
	OpenAIKey    string `envconfig:"OPENAI_API_KEY"`                  // empty -> canned support replies
	SupportModel string `envconfig:"SUPPORT_MODEL" default:"gpt-4o-mini"`
}

// Load reads .env (if present) and then the environment into Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
