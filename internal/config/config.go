// Package config 负责加载应用配置。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf 全局配置
var Conf Config

// Config 对应 configs/config.yaml
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Advisor       AdvisorConfig       `mapstructure:"advisor"`
	Mail          MailConfig          `mapstructure:"mail"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Dashboard     DashboardConfig     `mapstructure:"dashboard"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// JWTConfig holds client token settings.
type JWTConfig struct {
	Secret                string `mapstructure:"secret"`
	ClientTokenExpireDays int    `mapstructure:"client_token_expire_days"`
	CookieSecure          bool   `mapstructure:"cookie_secure"`
}

// StorageConfig selects the local storage backend.
type StorageConfig struct {
	Driver    string `mapstructure:"driver"` // bolt or redis
	BoltPath  string `mapstructure:"bolt_path"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type MySQLConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig 咨询归档队列配置
type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ElasticsearchConfig holds the optional catalogue search backend settings.
type ElasticsearchConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
}

// MinIOConfig 证书与头像的对象存储配置
type MinIOConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// LLMConfig holds the generative-language API settings.
type LLMConfig struct {
	APIKey     string              `mapstructure:"api_key"`
	BaseURL    string              `mapstructure:"base_url"`
	Model      string              `mapstructure:"model"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
	Prompt     LLMPromptConfig     `mapstructure:"prompt"`
}

// LLMGenerationConfig holds sampling parameters. Zero values are omitted from requests.
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// LLMPromptConfig overrides the built-in advisor instruction when set.
type LLMPromptConfig struct {
	SystemInstruction string `mapstructure:"system_instruction"`
}

// AdvisorConfig holds chat widget session settings.
type AdvisorConfig struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// MailConfig selects and configures the contact form relay.
type MailConfig struct {
	Provider  string         `mapstructure:"provider"` // emailjs, sendgrid or console
	FromName  string         `mapstructure:"from_name"`
	FromEmail string         `mapstructure:"from_email"`
	ToEmail   string         `mapstructure:"to_email"`
	EmailJS   EmailJSConfig  `mapstructure:"emailjs"`
	SendGrid  SendGridConfig `mapstructure:"sendgrid"`
}

type EmailJSConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	ServiceID   string `mapstructure:"service_id"`
	TemplateID  string `mapstructure:"template_id"`
	PublicKey   string `mapstructure:"public_key"`
	AccessToken string `mapstructure:"access_token"`
}

type SendGridConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AuthConfig holds auth gateway settings.
type AuthConfig struct {
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
	AdminEmails      []string      `mapstructure:"admin_emails"`
}

// DashboardConfig holds the simulated backend delays.
type DashboardConfig struct {
	SendDelay  time.Duration `mapstructure:"send_delay"`
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
}

// Init 先加载可选的 .env 文件，再读取 configPath 处的 YAML 配置到 Conf。
// 以 SEYONE_ 为前缀的环境变量会覆盖文件中的值，
// 例如 SEYONE_LLM_API_KEY 对应 llm.api_key。
func Init(configPath string) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SEYONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("failed to read config file: %w", err))
	}
	if err := v.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("jwt.client_token_expire_days", 365)
	v.SetDefault("storage.driver", "bolt")
	v.SetDefault("storage.bolt_path", "./data/local_storage.db")
	v.SetDefault("kafka.topic", "contact-enquiries")
	v.SetDefault("kafka.group_id", "seyone-academy-go-consumer")
	v.SetDefault("elasticsearch.index_name", "seyone_courses")
	v.SetDefault("minio.bucket_name", "seyone-academy")
	v.SetDefault("minio.presign_expiry", time.Hour)
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.model", "gemini-3-flash-preview")
	v.SetDefault("llm.generation.temperature", 0.7)
	v.SetDefault("llm.generation.top_p", 0.9)
	v.SetDefault("advisor.session_ttl", 30*time.Minute)
	v.SetDefault("advisor.sweep_interval", time.Minute)
	v.SetDefault("mail.provider", "console")
	v.SetDefault("mail.emailjs.base_url", "https://api.emailjs.com/api/v1.0")
	v.SetDefault("auth.simulated_latency", time.Second)
	v.SetDefault("dashboard.send_delay", 1500*time.Millisecond)
	v.SetDefault("dashboard.reply_delay", 3000*time.Millisecond)
}
