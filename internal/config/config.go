package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_seconds"`
	ShutdownSec     int    `mapstructure:"shutdown_seconds"`
	BodyLimitMB     int    `mapstructure:"body_limit_mb"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTConf struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
	Folder   string `mapstructure:"folder"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConf struct {
	LoginLimit     int `mapstructure:"login_limit"`
	LoginWindowSec int `mapstructure:"login_window_seconds"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	JWT       JWTConf       `mapstructure:"jwt"`
	AWS       AWSConf       `mapstructure:"aws"`
	Redis     RedisConf     `mapstructure:"redis"`
	RateLimit RateLimitConf `mapstructure:"ratelimit"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the YAML config at path and overlays environment variables.
// Secrets (MONGO_URI, JWT_SECRET, AWS credentials) are env-only.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	// secret material never lives in the YAML file
	_ = v.BindEnv("mongodb.uri", "MONGO_URI")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("app.port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24 * 7
	}
	if cfg.App.ShutdownSec == 0 {
		cfg.App.ShutdownSec = 15
	}
	if cfg.App.BodyLimitMB == 0 {
		cfg.App.BodyLimitMB = 50
	}
	if cfg.RateLimit.LoginLimit == 0 {
		cfg.RateLimit.LoginLimit = 10
	}
	if cfg.RateLimit.LoginWindowSec == 0 {
		cfg.RateLimit.LoginWindowSec = 60
	}
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLHours) * time.Hour
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSec) * time.Second
	return &cfg, nil
}
