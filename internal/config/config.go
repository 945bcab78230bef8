package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Output      string `mapstructure:"output"`
	HeaderText  string `mapstructure:"header_text"`
	FooterText  string `mapstructure:"footer_text"`
	Interactive bool   `mapstructure:"interactive"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("output", "calendar.adoc")
	viper.SetDefault("header_text", "= Calendar\n\n")
	viper.SetDefault("footer_text", "")
	viper.SetDefault("interactive", false)

	viper.SetConfigName("caldoc")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "caldoc"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CALDOC")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetOutput returns the output path with tilde expansion
func GetOutput() string {
	return expandTilde(viper.GetString("output"))
}

// GetHeaderText returns the default header text
func GetHeaderText() string {
	return viper.GetString("header_text")
}

// GetFooterText returns the default footer text
func GetFooterText() string {
	return viper.GetString("footer_text")
}

// GetInteractive returns whether the interactive picker is enabled
func GetInteractive() bool {
	return viper.GetBool("interactive")
}

// SetOutput sets the output path at runtime
func SetOutput(path string) {
	viper.Set("output", path)
	C.Output = path
}

// SetInteractive enables or disables the interactive picker at runtime
func SetInteractive(on bool) {
	viper.Set("interactive", on)
	C.Interactive = on
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
