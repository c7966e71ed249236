package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type RentalConfig struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	RentalDB   `yaml:"rental_db"`
	Kafka      `yaml:"kafka"`
	Payment    `yaml:"payment"`
	Migrations `yaml:"migrations"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

type RentalDB struct {
	Dsn string `yaml:"dsn"`
}

type Kafka struct {
	Enabled bool     `yaml:"enabled" env-default:"false"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic" env-default:"rental-events"`
}

type Payment struct {
	Currency string        `yaml:"currency" env-default:"KES"`
	Window   time.Duration `yaml:"window" env-default:"30m"`
	Sweep    time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

type Migrations struct {
	Path string `yaml:"path"`
}

func MustLoad() *RentalConfig {

	// Processing env config variable and file
	configPath := os.Getenv("RENTAL_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("RENTAL_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg RentalConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
