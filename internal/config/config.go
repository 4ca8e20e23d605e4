package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Kafka  KafkaConfig
	Minio  MinioConfig
	App    AppConfig
}

var (
	ConfigInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URI          string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	EmailTopic string
	EventTopic string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

type AppConfig struct {
	// BaseURL is used to build verification and password-reset links.
	BaseURL string
}

func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("SOCIAL_PORT", "8800")
		viper.SetDefault("SOCIAL_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("SOCIAL_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("SOCIAL_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("SOCIAL_JWT_SECRET", "secret")
		viper.SetDefault("SOCIAL_JWT_EXPIRE", "24h")
		viper.SetDefault("SOCIAL_BASE_URL", "http://localhost:8800")
		viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
		viper.SetDefault("MONGO_DB", "social")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("REDIS_MAX_RETRIES", 3)
		viper.SetDefault("REDIS_POOL_SIZE", 100)
		viper.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
		viper.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
		viper.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
		viper.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
		viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
		viper.SetDefault("KAFKA_EMAIL_TOPIC", "social.emails")
		viper.SetDefault("KAFKA_EVENT_TOPIC", "social.events")
		viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
		viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
		viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
		viper.SetDefault("MINIO_BUCKET", "social-media")
		viper.AutomaticEnv()

		ConfigInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("SOCIAL_HOST"),
				Port:         viper.GetString("SOCIAL_PORT"),
				ReadTimeout:  viper.GetDuration("SOCIAL_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("SOCIAL_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("SOCIAL_IDLE_TIMEOUT"),
			},
			Mongo: MongoConfig{
				URI:      viper.GetString("MONGO_URI"),
				Database: viper.GetString("MONGO_DB"),
			},
			Redis: RedisConfig{
				URI:          viper.GetString("REDIS_URL"),
				MaxRetries:   viper.GetInt("REDIS_MAX_RETRIES"),
				DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
				ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
				PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
				MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("SOCIAL_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("SOCIAL_JWT_EXPIRE"),
			},
			Kafka: KafkaConfig{
				Brokers:    strings.Split(viper.GetString("KAFKA_BROKERS"), ","),
				EmailTopic: viper.GetString("KAFKA_EMAIL_TOPIC"),
				EventTopic: viper.GetString("KAFKA_EVENT_TOPIC"),
			},
			Minio: MinioConfig{
				Endpoint:  viper.GetString("MINIO_ENDPOINT"),
				AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("MINIO_SECRET_KEY"),
				Bucket:    viper.GetString("MINIO_BUCKET"),
			},
			App: AppConfig{
				BaseURL: viper.GetString("SOCIAL_BASE_URL"),
			},
		}
	})

	return ConfigInstance, nil
}
