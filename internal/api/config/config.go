package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// legacyEnv 旧部署中使用的环境变量名
var legacyEnv = map[string]string{
	"mongo.url":           "MONGODB_URI",
	"minio.endpoint":      "CLOUDFLARE_R2_ENDPOINT",
	"minio.access_key":    "CLOUDFLARE_R2_ACCESS_KEY_ID",
	"minio.secret_key":    "CLOUDFLARE_R2_SECRET_ACCESS_KEY",
	"minio.bucket":        "CLOUDFLARE_R2_BUCKET_NAME",
	"admin.email":         "ADMIN_EMAIL",
	"admin.password":      "ADMIN_PASSWORD",
	"auth.session_secret": "NEXTAUTH_SECRET",
}

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	cfg, err := Load(viper.New(), "./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 读取 .env、配置文件与环境变量，环境变量优先
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env not loaded", "err", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "PORTFOLIO_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_mb", 15)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("mongo.database", "portfolio")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("minio.region", "")
	v.SetDefault("minio.bucket", "portfolio")
	v.SetDefault("minio.use_ssl", true)
	v.SetDefault("auth.issuer", "portfolio")
	v.SetDefault("auth.expiry_days", 30)
	v.SetDefault("admin.name", "Admin")
	v.SetDefault("job.orphan_cleanup", "@daily")
	v.SetDefault("job.orphan_min_age_hours", 24)
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	var missing []string
	if c.Mongo.URL == "" {
		missing = append(missing, "mongo.url")
	}
	if c.MinIO.Endpoint == "" {
		missing = append(missing, "minio.endpoint")
	}
	if c.Auth.SessionSecret == "" {
		missing = append(missing, "auth.session_secret")
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		missing = append(missing, "admin.password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
