package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Port            string        `yaml:"port"`
	PredictorURL    string        `yaml:"predictor_url"`    // base URL of the prediction backend
	CredentialsPath string        `yaml:"credentials_path"` // YAML credential document
	SessionLimit    int           `yaml:"session_limit"`    // max simultaneously active sessions, 0 = unlimited
	BcryptCost      int           `yaml:"bcrypt_cost"`      // 0 = bcrypt.DefaultCost
	GatewayTimeout  time.Duration `yaml:"gateway_timeout"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	CORSOrigin      string        `yaml:"cors_origin"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
}

type Private struct {
	// Signing key used when bootstrapping a fresh credential file; an
	// existing file's cookie.key always wins.
	BootstrapCookieKey string `yaml:"bootstrap_cookie_key"`
}

func (c *Config) BootstrapCookieKey() string {
	return c.private.BootstrapCookieKey
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.Port == "" {
		c.Public.Port = "8080"
	}
	if c.Public.CredentialsPath == "" {
		c.Public.CredentialsPath = "credentials.yaml"
	}
	if c.Public.GatewayTimeout == 0 {
		c.Public.GatewayTimeout = 10 * time.Second
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}
