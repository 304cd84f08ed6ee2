package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string  `yaml:"env" env:"ENV" env-default:"production"`
	Gateway Gateway `yaml:"gateway" env-required:"true"`
	Session Session `yaml:"session"`
	Redis   Redis   `yaml:"redis"`
	Refresh Refresh `yaml:"refresh"`
}

type Gateway struct {
	URL string `yaml:"url" env:"SEED_API_URL" env-required:"true"`
	// AuthToken, when set, is sent as a bearer Authorization header. The
	// backend ignores unknown headers, so this is safe to leave empty.
	AuthToken string `yaml:"auth_token" env:"SEED_API_TOKEN"`
	// Timeout of zero means no client timeout, matching the browser client.
	Timeout time.Duration `yaml:"timeout"`
}

type Session struct {
	Backend string `yaml:"backend" env-default:"file"` // file or redis
	Path    string `yaml:"path" env-default:".seed-session.json"`
	Secret  string `yaml:"secret" env:"SEED_SESSION_SECRET" env-default:"seed-demo-secret"`
}

type Redis struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Refresh struct {
	Feed   time.Duration `yaml:"feed" env-default:"1m"`
	Events time.Duration `yaml:"events" env-default:"5m"`
}

func MustLoad() *Config {
	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to config file")
		flag.Parse()
		configPath = *flags

		if configPath == "" {
			log.Fatal("config path must be provided")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist at path: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("failed to read config: %s", err)
	}

	return &cfg
}
