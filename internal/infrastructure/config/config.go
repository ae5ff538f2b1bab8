package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 建表方式
const (
	MigrateAuto = "auto"
	MigrateSQL  = "sql"
	MigrateNone = "none"
)

// EnvPrefix 环境变量前缀,如STOREFRONT_DATABASE_PASSWORD覆盖database.password
const EnvPrefix = "STOREFRONT"

// DefaultJWTSecret 示例配置中的JWT密钥,release模式下禁止使用
const DefaultJWTSecret = "your-secret-key-change-in-production"

// Config 全局配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Order    OrderConfig    `mapstructure:"order"`
	Cart     CartConfig     `mapstructure:"cart"`
	MQ       MQConfig       `mapstructure:"mq"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// Migrate 启动时的建表方式: auto(GORM AutoMigrate) | sql(golang-migrate) | none
	Migrate string `mapstructure:"migrate"`
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// loc需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpire  time.Duration `mapstructure:"access_token_expire"`
	RefreshTokenExpire time.Duration `mapstructure:"refresh_token_expire"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// OrderConfig 订单相关配置
type OrderConfig struct {
	// StrictStatusTransitions 为true时按状态流转表校验,为false时任意已知状态可互相切换
	StrictStatusTransitions bool `mapstructure:"strict_status_transitions"`
	DefaultLookbackMonths   int  `mapstructure:"default_lookback_months"`
}

type CartConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MQConfig 事件发布配置,enabled=false时使用空发布者
type MQConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url"`
	Exchange     string        `mapstructure:"exchange"`
	ExchangeType string        `mapstructure:"exchange_type"`
	Queue        string        `mapstructure:"queue"`
	BreakerTrips uint32        `mapstructure:"breaker_trips"`
	BreakerOpen  time.Duration `mapstructure:"breaker_open"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	Insecure    bool    `mapstructure:"insecure"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CORSConfig 跨域配置
// allow_credentials=true时allow_origins不能包含"*"
type CORSConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	AllowOrigins     []string      `mapstructure:"allow_origins"`
	AllowMethods     []string      `mapstructure:"allow_methods"`
	AllowHeaders     []string      `mapstructure:"allow_headers"`
	ExposeHeaders    []string      `mapstructure:"expose_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

// CacheConfig 商品详情缓存(Cache-Aside)
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	ProductTTL time.Duration `mapstructure:"product_ttl"`
}

// Load 加载配置文件
// 1. 默认加载config/config.yaml
// 2. STOREFRONT_ENV指定环境（如prod → config.prod.yaml）
// 3. 环境变量覆盖（如STOREFRONT_DATABASE_PASSWORD）,支持.env文件
func Load() (*Config, error) {
	// 本地开发可用.env提供STOREFRONT_*变量,文件不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取.env失败: %w", err)
	}
	return load(viper.New(), os.Getenv(EnvPrefix+"_ENV"), "./config", ".")
}

func load(v *viper.Viper, env string, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetConfigName("config")
	if env != "" {
		v.SetConfigName("config." + env)
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// database.password → STOREFRONT_DATABASE_PASSWORD
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 配置文件缺省项的默认值
// AutomaticEnv只对viper已知的key生效,默认值同时让这些key可被环境变量覆盖
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.migrate", MigrateAuto)

	v.SetDefault("jwt.access_token_expire", time.Hour)
	v.SetDefault("jwt.refresh_token_expire", 7*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("order.strict_status_transitions", true)
	v.SetDefault("order.default_lookback_months", 6)

	v.SetDefault("cart.ttl", 30*24*time.Hour)

	v.SetDefault("mq.enabled", false)
	v.SetDefault("mq.exchange", "storefront.events")
	v.SetDefault("mq.exchange_type", "topic")
	v.SetDefault("mq.queue", "storefront.events.log")
	v.SetDefault("mq.breaker_trips", 5)
	v.SetDefault("mq.breaker_open", 30*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "storefront-api")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.insecure", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.expose_headers", []string{"X-Request-ID"})
	v.SetDefault("cors.max_age", 12*time.Hour)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.product_ttl", 10*time.Minute)
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT密钥不能为空")
	}
	if cfg.JWT.Secret == DefaultJWTSecret && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须修改JWT密钥")
	}

	if cfg.Order.DefaultLookbackMonths <= 0 {
		return fmt.Errorf("无效的默认统计月数: %d", cfg.Order.DefaultLookbackMonths)
	}

	switch cfg.Database.Migrate {
	case MigrateAuto, MigrateSQL, MigrateNone:
	default:
		return fmt.Errorf("无效的建表方式: %s", cfg.Database.Migrate)
	}

	if cfg.MQ.Enabled && cfg.MQ.URL == "" {
		return fmt.Errorf("启用MQ时必须配置mq.url")
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("启用链路追踪时必须配置tracing.endpoint")
	}
	if cfg.CORS.Enabled && cfg.CORS.AllowCredentials {
		for _, origin := range cfg.CORS.AllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors.allow_credentials=true时allow_origins不能为*")
			}
		}
	}
	if cfg.Cache.Enabled && cfg.Cache.ProductTTL <= 0 {
		return fmt.Errorf("无效的商品缓存时间: %s", cfg.Cache.ProductTTL)
	}

	return nil
}
