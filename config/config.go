// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configPath        = pflag.String("config", ".", "Directory to look for config.toml in")
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors", "host_cors")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.path", "storage_path")
	v.BindEnv("storage.dsn", "storage_dsn")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("guest.session_ttl", "guest_session_ttl")
	v.BindEnv("guest.cleanup_interval", "guest_cleanup_interval")

	v.BindEnv("memo.page_limit", "memo_page_limit")
	v.BindEnv("memo.max_page_limit", "memo_max_page_limit")

	v.BindEnv("admin.email", "admin_email")
	v.BindEnv("admin.password", "admin_password")
	v.BindEnv("admin.reset_password", "admin_reset_password")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", []string{"http://localhost:3000"})

	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.path", "memos.db")

	v.SetDefault("security.rate_limit", 10)

	v.SetDefault("guest.session_ttl", "24h")
	v.SetDefault("guest.cleanup_interval", "1h")

	v.SetDefault("memo.page_limit", 9)
	v.SetDefault("memo.max_page_limit", 100)

	v.SetDefault("admin.reset_password", "admin123")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
		// Running purely off env variables is fine
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	if v.GetString("storage.type") == "postgres" && v.GetString("storage.dsn") == "" {
		return errors.New("storage.dsn is required for postgres storage")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("rate limit must be bigger than 0")
	}

	if v.GetDuration("guest.session_ttl") <= 0 {
		return errors.New("guest session ttl must be bigger than 0")
	}

	if v.GetInt("memo.page_limit") <= 0 || v.GetInt("memo.page_limit") > v.GetInt("memo.max_page_limit") {
		return errors.New("invalid memo page limit provided")
	}

	if v.GetString("admin.email") != "" && v.GetString("admin.password") == "" {
		return errors.New("admin.password is required when admin.email is set")
	}

	return nil
}
