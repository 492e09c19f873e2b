package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Swochhanda14/frontbooth/cache"
	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/forms"
	"github.com/Swochhanda14/frontbooth/helpers"
	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. FRONTBOOTH_LOG_LEVEL.
	EnvPrefix = "FRONTBOOTH"

	// FileName is the config file looked up in the working directory when no path is given.
	FileName = "frontbooth"

	DefaultLogLevel = "info"
)

// ByteSize is a byte count that also decodes from strings such as "2 MiB".
type ByteSize int64

// Config is the runtime configuration of the frontbooth CLI.
type Config struct {
	Mode   form.Mode    `mapstructure:"mode"`
	Log    LogConfig    `mapstructure:"log"`
	Upload UploadConfig `mapstructure:"upload"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

// LogConfig controls the zap logger installed by the CLI.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// UploadConfig bounds the files accepted by upload forms.
type UploadConfig struct {
	MaxBytes ByteSize `mapstructure:"max_bytes"`
	Types    []string `mapstructure:"types"`
}

// CacheConfig sizes the compiled pattern cache.
type CacheConfig struct {
	MaxCost int64         `mapstructure:"max_cost"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// Limits converts the upload section for forms.Avatar.
func (u UploadConfig) Limits() forms.UploadLimits {
	return forms.UploadLimits{MaxBytes: int64(u.MaxBytes), Types: u.Types}
}

// PatternCache converts the cache section for cache.NewPatternCache.
func (c CacheConfig) PatternCache() *cache.PatternCacheConfig {
	return &cache.PatternCacheConfig{
		RistrettoMaxCost: c.MaxCost,
		TTL:              c.TTL,
	}
}

// Load reads the configuration. An explicit path must exist; without one,
// frontbooth.yaml in the working directory is read when present. Environment
// variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", form.OnSubmit.String())
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.development", false)
	v.SetDefault("upload.max_bytes", forms.DefaultMaxUploadBytes)
	v.SetDefault("upload.types", forms.DefaultUploadTypes)
	v.SetDefault("cache.max_cost", cache.DefaultRistrettoMaxCost)
	v.SetDefault("cache.ttl", cache.DefaultPatternTTL)
}

// applyDefaults backfills values that were set, but set empty.
func (c *Config) applyDefaults() {
	c.Log.Level = helpers.DefaultString(c.Log.Level, DefaultLogLevel)
	c.Upload.MaxBytes = ByteSize(helpers.DefaultInt64(int64(c.Upload.MaxBytes), forms.DefaultMaxUploadBytes))
	c.Upload.Types = helpers.DefaultStrings(c.Upload.Types, forms.DefaultUploadTypes)
	c.Cache.MaxCost = helpers.DefaultInt64(c.Cache.MaxCost, cache.DefaultRistrettoMaxCost)
	c.Cache.TTL = helpers.DefaultTimeDuration(c.Cache.TTL, cache.DefaultPatternTTL)
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		byteSizeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func byteSizeHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(ByteSize(0))
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}
		size, err := humanize.ParseBytes(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", data, err)
		}
		return ByteSize(size), nil
	}
}
