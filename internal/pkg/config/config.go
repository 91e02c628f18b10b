package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	ServerPort  string   `yaml:"server_port"`
	BaseUrl     string   `yaml:"base_url"`
	JWTKey      string   `yaml:"jwt_key"`
	CORSOrigins []string `yaml:"cors_origins"`

	// Last tier of the rate hierarchy. Both must be set and positive; an
	// unresolvable rate must fail loudly, never fall back to zero.
	DefaultPayRate  float64 `yaml:"default_pay_rate"`
	DefaultBillRate float64 `yaml:"default_bill_rate"`
}

func NewConfig(path string) (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}
	if c.JWTKey == "" {
		return nil, errors.New("missing jwt_key")
	}
	if c.DefaultPayRate <= 0 || c.DefaultBillRate <= 0 {
		return nil, errors.New("default_pay_rate and default_bill_rate must be configured and positive")
	}

	return &c, nil
}
