package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
server:
  port: 8080
  mode: debug
database:
  host: db
  port: 3306
  user: root
  password: secret
  dbname: storefront
  loc: Asia/Shanghai
jwt:
  secret: test-secret
order:
  strict_status_transitions: false
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	return dir
}

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := writeConfig(t, "config.yaml", baseYAML)

	cfg, err := load(viper.New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpire)
	assert.False(t, cfg.Order.StrictStatusTransitions)
	assert.Equal(t, 6, cfg.Order.DefaultLookbackMonths)
	assert.Equal(t, "storefront.events", cfg.MQ.Exchange)
	assert.Equal(t, 30*24*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, MigrateAuto, cfg.Database.Migrate)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ProductTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := writeConfig(t, "config.yaml", baseYAML)
	t.Setenv("STOREFRONT_SERVER_PORT", "9090")
	t.Setenv("STOREFRONT_DATABASE_PASSWORD", "from-env")

	cfg, err := load(viper.New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_EnvSpecificFile(t *testing.T) {
	dir := writeConfig(t, "config.prod.yaml", baseYAML+"\nlog:\n  format: json\n")

	cfg, err := load(viper.New(), "prod", dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(viper.New(), "", t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "release"},
			JWT:      JWTConfig{Secret: "real-secret"},
			Order:    OrderConfig{DefaultLookbackMonths: 6},
			Database: DatabaseConfig{Migrate: MigrateAuto},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"生产环境默认密钥", func(c *Config) { c.JWT.Secret = DefaultJWTSecret }, true},
		{"开发环境默认密钥", func(c *Config) { c.JWT.Secret = DefaultJWTSecret; c.Server.Mode = "debug" }, false},
		{"空密钥", func(c *Config) { c.JWT.Secret = "" }, true},
		{"统计月数非正", func(c *Config) { c.Order.DefaultLookbackMonths = 0 }, true},
		{"启用MQ无地址", func(c *Config) { c.MQ.Enabled = true }, true},
		{"启用追踪无地址", func(c *Config) { c.Tracing.Enabled = true }, true},
		{"未知建表方式", func(c *Config) { c.Database.Migrate = "magic" }, true},
		{"跨域凭证与通配来源", func(c *Config) {
			c.CORS = CORSConfig{Enabled: true, AllowOrigins: []string{"*"}, AllowCredentials: true}
		}, true},
		{"缓存时间非正", func(c *Config) { c.Cache = CacheConfig{Enabled: true} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 3306, User: "root", Password: "pw", DBName: "storefront",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(db:3306)/storefront?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
