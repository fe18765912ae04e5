package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Storage     StorageConfig     `yaml:"storage"`
	SMS         SMSConfig         `yaml:"sms"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig 两个模型后端的配置
type LLMConfig struct {
	OpenAI      OpenAIConfig  `yaml:"openai"`
	Claude      ClaudeConfig  `yaml:"claude"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
}

// OpenAIConfig OpenAI 兼容后端
type OpenAIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	MaxPromptChars int    `yaml:"max_prompt_chars"`
}

// ClaudeConfig Claude 兼容后端
type ClaudeConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	MaxPromptChars int    `yaml:"max_prompt_chars"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider             string        `yaml:"provider"`
	MaxResults           int           `yaml:"max_results"`
	Timeout              time.Duration `yaml:"timeout"`
	FetchMissingSnippets bool          `yaml:"fetch_missing_snippets"`
	Brave                BraveConfig   `yaml:"brave"`
	Tavily               TavilyConfig  `yaml:"tavily"`
	SearXNG              SearXNGConfig `yaml:"searxng"`
}

// BraveConfig Brave Search 配置
type BraveConfig struct {
	APIKey string `yaml:"api_key"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// StorageConfig 报告存储配置，Driver 可选 file / postgres / minio
type StorageConfig struct {
	Driver string      `yaml:"driver"`
	Dir    string      `yaml:"dir"`
	DB     DBConfig    `yaml:"db"`
	MinIO  MinIOConfig `yaml:"minio"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// SMSConfig 短信推送配置
type SMSConfig struct {
	Twilio TwilioConfig `yaml:"twilio"`
}

// TwilioConfig Twilio 凭证
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	From       string `yaml:"from"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Default 返回带默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置，随后合并环境变量并补齐默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDotEnv 加载 .env 文件，文件不存在时忽略
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv 使用环境变量覆盖凭证类配置
func (c *Config) ApplyEnv() {
	setFromEnv(&c.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	setFromEnv(&c.LLM.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setFromEnv(&c.LLM.Claude.APIKey, "CLAUDE_API_KEY", "ANTHROPIC_API_KEY")
	setFromEnv(&c.Search.Brave.APIKey, "BRAVE_API_KEY")
	setFromEnv(&c.Search.Tavily.APIKey, "TAVILY_API_KEY")
	setFromEnv(&c.Search.SearXNG.BaseURL, "SEARXNG_BASE_URL")
	setFromEnv(&c.SMS.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setFromEnv(&c.SMS.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setFromEnv(&c.SMS.Twilio.From, "TWILIO_PHONE_NUMBER")
	setFromEnv(&c.Storage.Dir, "MARKET_RESEARCH_REPORTS_DIR")
	c.applyDefaults()
}

// setFromEnv 按顺序取第一个非空的环境变量
func setFromEnv(dst *string, keys ...string) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
			return
		}
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.OpenAI.Model == "" {
		c.LLM.OpenAI.Model = "gpt-4-turbo-preview"
	}
	if c.LLM.OpenAI.MaxPromptChars <= 0 {
		c.LLM.OpenAI.MaxPromptChars = 16000
	}
	if c.LLM.Claude.Model == "" {
		c.LLM.Claude.Model = "claude-3-opus-20240229"
	}
	if c.LLM.Claude.MaxPromptChars <= 0 {
		c.LLM.Claude.MaxPromptChars = 32000
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 1500
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 10
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 15 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "reports"
	}
	if c.Storage.DB.Port == 0 {
		c.Storage.DB.Port = 5432
	}
	if c.Storage.DB.SSLMode == "" {
		c.Storage.DB.SSLMode = "disable"
	}
	if c.Storage.MinIO.Bucket == "" {
		c.Storage.MinIO.Bucket = "market-reports"
	}
	if c.Storage.MinIO.Prefix == "" {
		c.Storage.MinIO.Prefix = "reports/"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
}

// HasOpenAI 是否配置了 OpenAI 后端
func (c *Config) HasOpenAI() bool { return c.LLM.OpenAI.APIKey != "" }

// HasClaude 是否配置了 Claude 后端
func (c *Config) HasClaude() bool { return c.LLM.Claude.APIKey != "" }

// HasSMS 是否配置了短信推送
func (c *Config) HasSMS() bool {
	t := c.SMS.Twilio
	return t.AccountSID != "" && t.AuthToken != "" && t.From != ""
}
