// Package config 提供了统一的配置加载与管理能力.
// 配置文件为 TOML，环境变量以 APP_ 为前缀覆盖同名键（点号替换为下划线）。
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/inversion/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Version string        `mapstructure:"version" toml:"version"`
	Server  ServerConfig  `mapstructure:"server"  toml:"server"`
	Log     LogConfig     `mapstructure:"log"     toml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" toml:"tracing"`
	Counter CounterConfig `mapstructure:"counter" toml:"counter"`
	Cache   CacheConfig   `mapstructure:"cache"   toml:"cache"`
}

// ServerConfig 定义服务器运行时的基础网络与环境参数.
type ServerConfig struct {
	Name        string `mapstructure:"name"        toml:"name"        validate:"required"`
	Environment string `mapstructure:"environment" toml:"environment" validate:"oneof=dev test prod"`
	HTTP        struct {
		Addr            string        `mapstructure:"addr"             toml:"addr"`
		Port            int           `mapstructure:"port"             toml:"port"             validate:"required,min=1,max=65535"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"     toml:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"    toml:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" toml:"shutdown_timeout"`
		MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   toml:"max_body_bytes"   validate:"min=0"`
		RateLimit       float64       `mapstructure:"rate_limit"       toml:"rate_limit"       validate:"min=0"` // 每个客户端 IP 每秒请求数，0 表示不限制。
		RateBurst       int           `mapstructure:"rate_burst"       toml:"rate_burst"       validate:"min=0"`
		MaxConcurrency  int           `mapstructure:"max_concurrency"  toml:"max_concurrency"  validate:"min=0"` // 同时处理的请求上限，0 表示不限制。
		ConcurrencyWait time.Duration `mapstructure:"concurrency_wait" toml:"concurrency_wait"`
	} `mapstructure:"http" toml:"http"`
}

// Address 返回 HTTP 监听地址。
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.HTTP.Addr, s.HTTP.Port)
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"` // 日志级别。
	File       string `mapstructure:"file"        toml:"file"`                                                        // 日志文件路径。
	Console    bool   `mapstructure:"console"     toml:"console"`                                                     // 写文件时是否同时输出到 stdout。
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`                                                    // 单个文件最大大小 (MB)。
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`                                                 // 最大备份数。
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`                                                     // 最大保留天数。
	Compress   bool   `mapstructure:"compress"    toml:"compress"`                                                    // 是否启用压缩。
}

// MetricsConfig 定义 Prometheus 指标暴露参数.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path"    toml:"path"`
}

// TracingConfig 分布式链路追踪（OpenTelemetry）配置，OTLPEndpoint 为空时不启用导出.
type TracingConfig struct {
	ServiceName  string  `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" toml:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"  toml:"sample_ratio"  validate:"min=0,max=1"`
}

// CounterConfig 定义逆序对计数服务参数.
type CounterConfig struct {
	Strategy     string `mapstructure:"strategy"       toml:"strategy"       validate:"omitempty,oneof=tree fenwick"`
	MaxLength    int    `mapstructure:"max_length"     toml:"max_length"     validate:"min=0"` // 0 表示不限制。
	BatchWorkers int    `mapstructure:"batch_workers"  toml:"batch_workers"  validate:"min=1"`
	MaxBatchSize int    `mapstructure:"max_batch_size" toml:"max_batch_size" validate:"min=1"`
}

// CacheConfig 定义计数结果本地缓存参数.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"     toml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl"         toml:"ttl"`
	MaxSizeMB int           `mapstructure:"max_size_mb" toml:"max_size_mb" validate:"min=0"`
	MinLength int           `mapstructure:"min_length"  toml:"min_length"  validate:"min=0"` // 短于该长度的序列不缓存。
}

var (
	vInstance = viper.New()
	mu        sync.Mutex
	onReload  []func(*Config)
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "inversion")
	v.SetDefault("server.environment", "dev")
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.read_timeout", 10*time.Second)
	v.SetDefault("server.http.write_timeout", 30*time.Second)
	v.SetDefault("server.http.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.http.max_body_bytes", 64<<20)
	v.SetDefault("server.http.concurrency_wait", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("tracing.service_name", "inversion")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("counter.strategy", "tree")
	v.SetDefault("counter.max_length", 10_000_000)
	v.SetDefault("counter.batch_workers", 4)
	v.SetDefault("counter.max_batch_size", 1000)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.max_size_mb", 64)
	v.SetDefault("cache.min_length", 1024)
}

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	onReload = append(onReload, hook)
}

// Default 返回只包含默认值的配置，供没有配置文件的命令行场景使用。
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal default config error: %w", err)
	}
	return conf, nil
}

// Load 读取、校验配置并开启文件监听，文件变更后自动重新加载。
func Load(path string, conf *Config) error {
	mu.Lock()
	defer mu.Unlock()

	setDefaults(vInstance)
	vInstance.SetConfigFile(path)
	vInstance.SetConfigType("toml")

	vInstance.SetEnvPrefix("APP")
	vInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vInstance.AutomaticEnv()

	if err := vInstance.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := vInstance.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	vInstance.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		next := new(Config)
		if err := vInstance.Unmarshal(next); err != nil {
			slog.Error("reload config unmarshal failed", "error", err)
			return
		}
		if err := validate.Struct(next); err != nil {
			slog.Error("reload config validation failed", "error", err)
			return
		}

		mu.Lock()
		*conf = *next
		hooks := append([]func(*Config){}, onReload...)
		mu.Unlock()

		logging.SetLevel(next.Log.Level)
		slog.Info("config hot-reloaded and validated successfully")
		for _, hook := range hooks {
			hook(next)
		}
	})
	vInstance.WatchConfig()

	return nil
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	masked, err := Masked(conf)
	if err != nil {
		slog.Error("failed to mask config for printing", "error", err)
		return
	}
	slog.Info("Current effective configuration", "config", masked)
}

// Masked 返回把敏感字段替换为 ****** 后的 JSON 文本.
func Masked(conf any) (string, error) {
	data, err := json.Marshal(conf)
	if err != nil {
		return "", err
	}

	var configMap map[string]any
	if err := json.Unmarshal(data, &configMap); err != nil {
		return "", err
	}

	mask(configMap)

	out, err := json.MarshalIndent(configMap, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "dsn", "key", "token"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)
			continue
		}

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"
				break
			}
		}
	}
}

// GetViper 返回底层的 Viper 实例.
func GetViper() *viper.Viper {
	return vInstance
}
