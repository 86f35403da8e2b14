package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"provide-client/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the gateway listens.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Provide holds the commerce API client configuration.
	Provide ProvideConfig `mapstructure:",squash"`

	// Cache holds the optional availability cache configuration.
	Cache CacheConfig `mapstructure:",squash"`
}

// ProvideConfig configures the Provide commerce API client.
type ProvideConfig struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"PROVIDE_BASE_URL" default:"https://apiservice.providecommerce.com/"`
	// ApplicationToken identifies the brand to the provider.
	ApplicationToken string `mapstructure:"PROVIDE_APPLICATION_TOKEN" required:"true"`
	// VerifySSL enables TLS certificate verification.
	VerifySSL bool `mapstructure:"PROVIDE_VERIFY_SSL" default:"true"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"PROVIDE_TIMEOUT_SECONDS" default:"10"`
	// FaultLogLevel is the level provider faults are logged at.
	FaultLogLevel string `mapstructure:"PROVIDE_FAULT_LOG_LEVEL" default:"debug"`
	// MockMode serves canned responses instead of calling the provider.
	MockMode bool `mapstructure:"PROVIDE_MOCK_MODE" default:"false"`

	// GiftMessageLineLength is the printable width of a gift card line.
	GiftMessageLineLength int `mapstructure:"GIFT_MESSAGE_LINE_LENGTH" default:"44"`
	// GiftMessageVirtualNewlines pads lines with spaces instead of sending
	// newlines, for brands whose printers ignore them.
	GiftMessageVirtualNewlines bool `mapstructure:"GIFT_MESSAGE_VIRTUAL_NEWLINES" default:"true"`

	// Proxy is the optional outbound proxy.
	Proxy proxy.Settings `mapstructure:",squash"`
}

// CacheConfig configures the availability cache. An empty RedisURL
// disables it.
type CacheConfig struct {
	// RedisURL is the Redis connection URL.
	RedisURL string `mapstructure:"REDIS_URL"`
	// AvailabilityTTLSeconds is how long availability answers are kept.
	AvailabilityTTLSeconds int `mapstructure:"AVAILABILITY_CACHE_TTL_SECONDS" default:"300"`
}

// Timeout is the per request timeout.
func (c ProvideConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Enabled reports whether a cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// TTL is the availability entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.AvailabilityTTLSeconds) * time.Second
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
