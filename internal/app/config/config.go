package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	MySQL      MySQLConfig      `mapstructure:"mysql"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Lmstfy     LmstfyConfig     `mapstructure:"lmstfy"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
}

type AppConfig struct {
	Name          string `mapstructure:"name"`
	Env           string `mapstructure:"env"`
	LogLevel      string `mapstructure:"log_level"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	MaxBodyMB   int      `mapstructure:"max_body_mb"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Addr 为空时不启用事件广播
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Host 为空时不投递新订单通知
type LmstfyConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Namespace   string `mapstructure:"namespace"`
	Token       string `mapstructure:"token"`
	NotifyQueue string `mapstructure:"notify_queue"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// CloudinaryConfig 三项任一为空时直接走本地兜底
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	Currency      string `mapstructure:"currency"`
}

type UploadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// NotifierConfig notifier 进程配置
type NotifierConfig struct {
	WebhookURL   string        `mapstructure:"webhook_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
	TTR          time.Duration `mapstructure:"ttr"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

const envPrefix = "KCS"

// Load 从配置文件加载配置，环境变量 KCS_<SECTION>_<KEY> 可覆盖任意配置项
func Load(configPath string) (*Config, error) {
	// .env 只用于本地开发，不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	cfg.App.PublicBaseURL = strings.TrimSuffix(cfg.App.PublicBaseURL, "/")

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "keychain-studio")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.public_base_url", "http://localhost:5000")

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.max_body_mb", 50)

	v.SetDefault("mysql.dsn", "")
	v.SetDefault("mysql.max_open_conns", 10)
	v.SetDefault("mysql.max_idle_conns", 5)
	v.SetDefault("mysql.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("lmstfy.host", "")
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("lmstfy.namespace", "keychain")
	v.SetDefault("lmstfy.token", "")
	v.SetDefault("lmstfy.notify_queue", "order_notify")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 8*time.Hour)

	v.SetDefault("cloudinary.cloud_name", "")
	v.SetDefault("cloudinary.api_key", "")
	v.SetDefault("cloudinary.api_secret", "")
	v.SetDefault("cloudinary.folder", "keychain-orders")

	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.currency", "usd")

	v.SetDefault("uploads.dir", "./uploads")

	v.SetDefault("notifier.webhook_url", "")
	v.SetDefault("notifier.timeout", 10*time.Second)
	v.SetDefault("notifier.poll_timeout", 3*time.Second)
	v.SetDefault("notifier.ttr", 30*time.Second)
	v.SetDefault("notifier.poll_interval", 100*time.Millisecond)
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token_ttl must be positive")
	}
	return nil
}

// IsProduction 生产环境不向客户端暴露错误细节
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// CloudinaryEnabled 图床是否已配置
func (c *Config) CloudinaryEnabled() bool {
	return c.Cloudinary.CloudName != "" && c.Cloudinary.APIKey != "" && c.Cloudinary.APISecret != ""
}

// GetServerPort 获取服务端口
func (c *Config) GetServerPort() string {
	if c.Server.Port != "" {
		return c.Server.Port
	}
	return "5000"
}
