package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/supaquery/pkg/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Database DatabaseConfig `mapstructure:"database"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
}

type SupabaseConfig struct {
	URL     string `mapstructure:"url"`
	AnonKey string `mapstructure:"anon_key"`
	Schema  string `mapstructure:"schema"`
	Backend string `mapstructure:"backend"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type HTTPConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// keys resolved from the environment; "." becomes "_" (supabase.anon_key -> SUPABASE_ANON_KEY)
var envKeys = []string{
	"supabase.url",
	"supabase.anon_key",
	"supabase.schema",
	"supabase.backend",
	"database.url",
	"http.timeout",
	"http.insecure_skip_verify",
	"log.level",
	"log.file",
}

var globalConfig Config

// Load reads config.yaml (optional) and the environment. supabase.url and
// supabase.anon_key have no defaults: when unset they stay empty.
func Load(configPath string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	setDefaultValues(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file config.yaml: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Supabase.Backend = strings.ToLower(strings.TrimSpace(cfg.Supabase.Backend))
	globalConfig = cfg
	return nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("supabase.schema", common.DefaultSchema)
	v.SetDefault("supabase.backend", common.BackendREST)
	v.SetDefault("http.timeout", common.DefaultHTTPTimeout.String())
	v.SetDefault("log.level", "info")
}

func GetConfig() *Config {
	return &globalConfig
}
