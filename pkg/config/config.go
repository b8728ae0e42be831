package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrMissingSecret = errors.New("auth.secret (env SECRET) must be set")

type Config struct {
	App          App          `yaml:"app"`
	Database     Database     `yaml:"database"`
	Allows       Allows       `yaml:"allows"`
	Auth         Auth         `yaml:"auth"`
	Reservation  Reservation  `yaml:"reservation"`
	Notification Notification `yaml:"notification"`
	Log          Log          `yaml:"log"`
}

type App struct {
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	Mode     string `yaml:"mode"`
	Timezone string `yaml:"timezone"`
}

type Database struct {
	Driver string `yaml:"driver"`
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	Name   string `yaml:"name"`
	// Path is the sqlite file used when Driver is "sqlite".
	Path string `yaml:"path"`
}

type Allows struct {
	Methods []string `yaml:"methods"`
	Origins []string `yaml:"origins"`
	Headers []string `yaml:"headers"`
}

type Auth struct {
	Secret    string        `yaml:"secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	AdminCode string        `yaml:"admin_code"`
}

type Reservation struct {
	EnforceCapacity bool `yaml:"enforce_capacity"`
}

type Notification struct {
	Template  string   `yaml:"template"`
	Workers   int      `yaml:"workers"`
	QueueSize int      `yaml:"queue_size"`
	Channels  []string `yaml:"channels"`
	SMTP      SMTP     `yaml:"smtp"`
	WhatsApp  WhatsApp `yaml:"whatsapp"`
}

type SMTP struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	From string `yaml:"from"`
}

type WhatsApp struct {
	SessionPath string `yaml:"session_path"`
}

type Log struct {
	Level string `yaml:"level"`
}

// InitConfig reads the yaml file at path (missing file is allowed) and applies
// environment overrides on top of it.
func InitConfig(path string) (*Config, error) {
	var configs Config

	file_name, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	yaml_file, err := os.ReadFile(file_name)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", file_name, err)
	}
	if err := yaml.Unmarshal(yaml_file, &configs); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", file_name, err)
	}

	configs.applyEnv()
	configs.applyDefaults()

	if _, err := configs.App.Location(); err != nil {
		return nil, err
	}
	if configs.Auth.Secret == "" {
		return nil, ErrMissingSecret
	}

	return &configs, nil
}

func (c *Config) applyEnv() {
	// Override with environment variables if they exist (for Docker)
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		c.Database.Driver = dbDriver
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		c.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		c.Database.Port = dbPort
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		c.Database.User = dbUser
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		c.Database.Pass = dbPassword
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		c.Database.Name = dbName
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.Database.Path = dbPath
	}

	// Override app configuration with environment variables
	if appHost := os.Getenv("APP_HOST"); appHost != "" {
		c.App.Host = appHost
	}
	if appPort := os.Getenv("APP_PORT"); appPort != "" {
		c.App.Port = appPort
	}
	if appName := os.Getenv("APP_NAME"); appName != "" {
		c.App.Name = appName
	}
	if appMode := os.Getenv("GIN_MODE"); appMode != "" {
		c.App.Mode = appMode
	}
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		c.App.Timezone = tz
	}

	if secret := os.Getenv("SECRET"); secret != "" {
		c.Auth.Secret = secret
	}
	if adminCode := os.Getenv("ADMIN_CODE"); adminCode != "" {
		c.Auth.AdminCode = adminCode
	}
	if enforce := os.Getenv("ENFORCE_CAPACITY"); enforce != "" {
		if v, err := strconv.ParseBool(enforce); err == nil {
			c.Reservation.EnforceCapacity = v
		}
	}

	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		c.Notification.SMTP.Host = smtpHost
	}
	if smtpPort := os.Getenv("SMTP_PORT"); smtpPort != "" {
		c.Notification.SMTP.Port = smtpPort
	}
	if smtpUser := os.Getenv("SMTP_USER"); smtpUser != "" {
		c.Notification.SMTP.User = smtpUser
	}
	if smtpPass := os.Getenv("SMTP_PASSWORD"); smtpPass != "" {
		c.Notification.SMTP.Pass = smtpPass
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "restobook"
	}
	if c.App.Port == "" {
		c.App.Port = "3000"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "UTC"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.Path == "" {
		c.Database.Path = "restaurant.db"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Notification.Template == "" {
		c.Notification.Template = "reservation_confirmation"
	}
	if c.Notification.Workers <= 0 {
		c.Notification.Workers = 2
	}
	if c.Notification.QueueSize <= 0 {
		c.Notification.QueueSize = 100
	}
	if len(c.Notification.Channels) == 0 {
		c.Notification.Channels = []string{"log"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Location resolves the restaurant's wall-clock time zone.
func (a App) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid app timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}
