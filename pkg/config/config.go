package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Groq   GroqConfig
}

type ServerConfig struct {
	Address   string
	StaticDir string `mapstructure:"static_dir"`
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type JWTConfig struct {
	Secret string
}

type GroqConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	// Groq API 金鑰從環境變量讀取，不放進配置文件
	if err := viper.BindEnv("groq.api_key", "GROQ_API_KEY"); err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
