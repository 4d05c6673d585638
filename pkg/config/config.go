package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Static StaticConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type StaticConfig struct {
	Dir string
}

// Address 回傳 HTTP 服務器的監聽位址
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load 載入應用程式配置
// 先讀取可選的 config.yaml，再用環境變量覆蓋（SERVER_PORT、DB_HOST 等）
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")
	viper.AddConfigPath(".")

	// 預設值
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.user", "chat")
	viper.SetDefault("db.password", "chat")
	viper.SetDefault("db.name", "chat_db")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("static.dir", "./public")

	// 允許用環境變量覆蓋配置，例如 SERVER_PORT=8080
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 配置文件是可選的，找不到時使用預設值和環境變量
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
