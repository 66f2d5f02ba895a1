package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 服务启动参数，全部来自环境变量
type Config struct {
	Addr string `env:"GEM_ADDR" envDefault:":8000"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// 为空时不归档对局结果
	MySQLDSN string `env:"MYSQL_DSN"`

	AccessSecret  string        `env:"GEM_ACCESS_SECRET"  envDefault:"access-secret"`
	RefreshSecret string        `env:"GEM_REFRESH_SECRET" envDefault:"refresh-secret"`
	AccessTTL     time.Duration `env:"GEM_ACCESS_TTL"     envDefault:"15m"`
	RefreshTTL    time.Duration `env:"GEM_REFRESH_TTL"    envDefault:"168h"`

	LogLevel string `env:"GEM_LOG_LEVEL" envDefault:"info"`
	Dev      bool   `env:"GEM_DEV"       envDefault:"false"`

	OneActionPerTurn bool `env:"GEM_ONE_ACTION_PER_TURN" envDefault:"true"`
	AllowDebug       bool `env:"GEM_ALLOW_DEBUG"         envDefault:"false"`
}

// Load 读取环境变量并校验
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("解析环境变量失败: %w", err)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, fmt.Errorf("GEM_ACCESS_SECRET 和 GEM_REFRESH_SECRET 不能相同")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return Config{}, fmt.Errorf("token 有效期必须大于 0")
	}
	return cfg, nil
}
