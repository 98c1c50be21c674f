package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 文本提取配置
	Extractor ExtractorConfig `yaml:"extractor"`

	// Tika服务器配置
	Tika TikaConfig `yaml:"tika"`

	// 语义引擎配置
	Semantic SemanticConfig `yaml:"semantic"`

	// 匹配规则配置
	Matching MatchingConfig `yaml:"matching"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address        string `yaml:"address"`         // 例如 ":8080" or "0.0.0.0:8080"
	RequestTimeout string `yaml:"request_timeout"` // 单次匹配请求的超时，例如 "30s"
	MaxUploadMB    int    `yaml:"max_upload_mb"`   // 上传文件大小上限(MiB)
}

// ExtractorConfig 文本提取器配置
type ExtractorConfig struct {
	// PDFEngine PDF提取引擎: "eino"(本地解析) 或 "tika"(走Tika服务器)
	PDFEngine string `yaml:"pdf_engine"`
	// CacheSize 提取结果缓存条数，按文件MD5去重，0表示关闭
	CacheSize int `yaml:"cache_size"`
}

// TikaConfig Tika服务器配置结构
type TikaConfig struct {
	ServerURL string `yaml:"server_url"`      // Tika服务器URL
	Timeout   int    `yaml:"timeout_seconds"` // 超时时间(秒)
}

// SemanticConfig 语义引擎配置
type SemanticConfig struct {
	Enabled bool `yaml:"enabled"` // 关闭后所有请求都走纯关键词路径
	Warmup  bool `yaml:"warmup"`  // 启动时预热（立即初始化嵌入客户端）

	// Provider 嵌入服务提供方: "dashscope" 或 "openai"
	Provider string `yaml:"provider"`

	// 嵌入调用的限流与重试
	QPM              int `yaml:"qpm"`                // 每分钟请求数限制
	MaxRetries       int `yaml:"max_retries"`        // 最大重试次数
	RetryWaitSeconds int `yaml:"retry_wait_seconds"` // 重试等待时间(秒)

	Dashscope EmbeddingProviderConfig `yaml:"dashscope"`
	OpenAI    EmbeddingProviderConfig `yaml:"openai"`
}

// EmbeddingProviderConfig 单个嵌入服务提供方的配置
type EmbeddingProviderConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// MatchingConfig 匹配规则配置
type MatchingConfig struct {
	// ExtraSkills 追加到内置技能词表的条目
	ExtraSkills []string `yaml:"extra_skills"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`     // OTLP gRPC 端点，例如 "localhost:4317"
	ServiceName string  `yaml:"service_name"` // 上报的服务名
	SampleRatio float64 `yaml:"sample_ratio"` // 采样率 [0,1]
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-match", "config.yaml"),
		}

		// 可执行文件所在目录及其上级
		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到时：测试环境返回默认配置，否则按默认路径继续走存在性检查
		if configPath == "" {
			if isTestEnv() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if isTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)

	return &config, nil
}

// LoadConfigFromFileOnly 从文件加载配置，不从环境变量覆盖（供需要确定性配置的测试使用）
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// applyEnvOverrides 用环境变量覆盖敏感项，密钥不落盘
func applyEnvOverrides(config *Config) {
	if envKey := os.Getenv("DASHSCOPE_API_KEY"); envKey != "" {
		config.Semantic.Dashscope.APIKey = envKey
	}
	if envKey := os.Getenv("OPENAI_API_KEY"); envKey != "" {
		config.Semantic.OpenAI.APIKey = envKey
	}
	if envURL := os.Getenv("TIKA_SERVER_URL"); envURL != "" {
		config.Tika.ServerURL = envURL
	}
	if envEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); envEndpoint != "" {
		config.Tracing.Endpoint = envEndpoint
	}
}

// applyDefaults 填充未设置的配置项
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Server.RequestTimeout == "" {
		config.Server.RequestTimeout = "30s"
	}
	if config.Server.MaxUploadMB <= 0 {
		config.Server.MaxUploadMB = 16
	}

	if config.Extractor.PDFEngine == "" {
		config.Extractor.PDFEngine = "eino"
	}
	if config.Extractor.CacheSize < 0 {
		config.Extractor.CacheSize = 0
	}

	if config.Tika.ServerURL == "" {
		config.Tika.ServerURL = "http://localhost:9998"
	}
	if config.Tika.Timeout <= 0 {
		config.Tika.Timeout = 60
	}

	if config.Semantic.Provider == "" {
		config.Semantic.Provider = "dashscope"
	}
	if config.Semantic.QPM <= 0 {
		config.Semantic.QPM = 60
	}
	if config.Semantic.MaxRetries <= 0 {
		config.Semantic.MaxRetries = 3
	}
	if config.Semantic.RetryWaitSeconds <= 0 {
		config.Semantic.RetryWaitSeconds = 1
	}
	if config.Semantic.Dashscope.Model == "" {
		config.Semantic.Dashscope.Model = "text-embedding-v3"
	}
	if config.Semantic.Dashscope.Dimensions <= 0 {
		config.Semantic.Dashscope.Dimensions = 1024
	}
	if config.Semantic.Dashscope.BaseURL == "" {
		config.Semantic.Dashscope.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}
	if config.Semantic.OpenAI.Model == "" {
		config.Semantic.OpenAI.Model = "text-embedding-3-small"
	}
	if config.Semantic.OpenAI.Dimensions <= 0 {
		config.Semantic.OpenAI.Dimensions = 1536
	}

	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}

	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = "resume-match"
	}
	if config.Tracing.SampleRatio <= 0 {
		config.Tracing.SampleRatio = 1.0
	}
}

// Default 返回一份带默认值的配置。
// 离线CLI等无配置文件的场景使用：语义路径默认关闭，评分走纯关键词。
func Default() *Config {
	return createDefaultConfig()
}

// isTestEnv 判断当前是否在 go test 进程中
func isTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// 创建一个默认配置，用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}

	config.Server.Address = ":8080"
	config.Server.RequestTimeout = "30s"
	config.Server.MaxUploadMB = 16

	config.Extractor.PDFEngine = "eino"
	config.Extractor.CacheSize = 128

	config.Tika.ServerURL = "http://localhost:9998"
	config.Tika.Timeout = 60

	// 测试环境关闭语义路径，保证确定性的纯关键词评分
	config.Semantic.Enabled = false
	config.Semantic.Provider = "dashscope"
	config.Semantic.QPM = 60
	config.Semantic.MaxRetries = 3
	config.Semantic.RetryWaitSeconds = 1
	config.Semantic.Dashscope.Model = "text-embedding-v3"
	config.Semantic.Dashscope.Dimensions = 1024
	config.Semantic.Dashscope.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	config.Semantic.OpenAI.Model = "text-embedding-3-small"
	config.Semantic.OpenAI.Dimensions = 1536
	if envKey := os.Getenv("DASHSCOPE_API_KEY"); envKey != "" {
		config.Semantic.Dashscope.APIKey = envKey
	} else {
		config.Semantic.Dashscope.APIKey = "test_api_key"
	}

	config.Logger.Level = "info"
	config.Logger.Format = "pretty" // 开发环境默认使用美化输出
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	config.Tracing.Enabled = false
	config.Tracing.ServiceName = "resume-match"
	config.Tracing.SampleRatio = 1.0

	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	config := createDefaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	fmt.Printf("示例配置文件已创建: %s\n", filePath)
	return nil
}

// RequestTimeout 解析服务器请求超时配置
func (c *Config) RequestTimeout() time.Duration {
	return GetDuration(c.Server.RequestTimeout, 30*time.Second)
}

// EmbeddingProvider 返回当前生效的嵌入服务配置
func (c *Config) EmbeddingProvider() EmbeddingProviderConfig {
	if c.Semantic.Provider == "openai" {
		return c.Semantic.OpenAI
	}
	return c.Semantic.Dashscope
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
