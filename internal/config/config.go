package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	StaticDir string `mapstructure:"static_dir"`
	// 二维码中的加入链接前缀，为空时按请求的 Host 生成
	PublicURL string `mapstructure:"public_url"`

	TickIntervalMs int `mapstructure:"tick_interval_ms"`
	BroadcastEvery int `mapstructure:"broadcast_every"`
	// 0 表示使用随机种子
	Seed uint32 `mapstructure:"seed"`

	LobbyIdleTimeoutSec int `mapstructure:"lobby_idle_timeout_sec"`
	MaxLobbies          int `mapstructure:"max_lobbies"`

	ArchivePath      string `mapstructure:"archive_path"`
	ArchiveCacheSize int    `mapstructure:"archive_cache_size"`
}

const ENV_PREFIX = "NEBULA"

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("static_dir", "")
	v.SetDefault("public_url", "")
	v.SetDefault("tick_interval_ms", 50)
	v.SetDefault("broadcast_every", 2)
	v.SetDefault("seed", 0)
	v.SetDefault("lobby_idle_timeout_sec", 600)
	v.SetDefault("max_lobbies", 200)
	v.SetDefault("archive_path", "nebula_archive.db")
	v.SetDefault("archive_cache_size", 128)
}

// Load 读取配置，优先级：环境变量 NEBULA_* > app_config.json > 默认值。
// 当前目录下的 .env 会先被载入环境变量，文件不存在时忽略。
func Load(dir string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("加载 .env 失败: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	return &config, nil
}

func InitConfig() *AppConfig {
	config, err := Load(".")
	if err != nil {
		panic(err)
	}

	return config
}
