package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Job    JobConfig    `mapstructure:"job"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// 请求体上限 (MB)，上传接口的 base64 负载需要比图片本身大约 4/3
	MaxBodyMB int `mapstructure:"max_body_mb"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig 对象存储配置，兼容 MinIO / R2 / S3
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// AuthConfig 会话令牌配置
type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
	Issuer        string `mapstructure:"issuer"`
	ExpiryDays    int    `mapstructure:"expiry_days"`
}

// AdminConfig 管理员身份
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// JobConfig 定时任务配置
type JobConfig struct {
	OrphanCleanup string `mapstructure:"orphan_cleanup"`
	OrphanMinAgeH int    `mapstructure:"orphan_min_age_hours"`
}
