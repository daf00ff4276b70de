package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
}

var (
	configInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig controls the optional rate-limit store. An empty URI disables
// rate limiting entirely.
type RedisConfig struct {
	URI string
}

// KafkaConfig controls the optional vote event stream. No brokers means no
// events are published.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type JWTConfig struct {
	Secret string
	Expire time.Duration
}

// Load reads configuration from the environment, applying defaults suitable
// for local development.
func Load() *Config {
	once.Do(func() {
		viper.SetDefault("POLLS_HOST", "")
		viper.SetDefault("POLLS_PORT", "8080")
		viper.SetDefault("POLLS_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("POLLS_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("POLLS_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("POLLS_JWT_SECRET", "secret")
		viper.SetDefault("POLLS_JWT_EXPIRE", "24h")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_DB", "polls")
		viper.SetDefault("POSTGRES_SSLMODE", "disable")
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("KAFKA_BROKERS", []string{})
		viper.SetDefault("KAFKA_TOPIC", "poll-votes")
		viper.AutomaticEnv()

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("POLLS_HOST"),
				Port:         viper.GetString("POLLS_PORT"),
				ReadTimeout:  viper.GetDuration("POLLS_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("POLLS_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("POLLS_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("POSTGRES_HOST"),
				Port:     viper.GetString("POSTGRES_PORT"),
				User:     viper.GetString("POSTGRES_USER"),
				Password: viper.GetString("POSTGRES_PASSWORD"),
				DBName:   viper.GetString("POSTGRES_DB"),
				SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			},
			Redis: RedisConfig{
				URI: viper.GetString("REDIS_URL"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
				Topic:   viper.GetString("KAFKA_TOPIC"),
			},
			JWT: JWTConfig{
				Secret: viper.GetString("POLLS_JWT_SECRET"),
				Expire: viper.GetDuration("POLLS_JWT_EXPIRE"),
			},
		}
	})

	return configInstance
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}
