package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("segment.paragraph_gap_seconds", 3.0)
	v.SetDefault("segment.line_gap_seconds", 1.0)
	v.SetDefault("output.path", "")
	v.SetDefault("output.pretty", true)
	v.SetDefault("tracks.subtitle_languages", []string{"en-US", "en-CA", "en"})
	v.SetDefault("tracks.auto_caption_languages", []string{"en-orig", "en-US", "en-CA", "en"})
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	// Set up environment variable mapping
	v.SetEnvPrefix("YTT")
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("segment.paragraph_gap_seconds", "PARAGRAPH_GAP_SECONDS")
	v.BindEnv("segment.line_gap_seconds", "LINE_GAP_SECONDS")
	v.BindEnv("output.path", "OUTPUT_PATH")
	v.BindEnv("output.pretty", "OUTPUT_PRETTY")

	return &Configuration{viper: v}, nil
}

// GetParagraphGapSeconds returns the pause length that starts a new paragraph
func (c *Configuration) GetParagraphGapSeconds() float64 {
	return c.viper.GetFloat64("segment.paragraph_gap_seconds")
}

// GetLineGapSeconds returns the pause length that starts a new line
func (c *Configuration) GetLineGapSeconds() float64 {
	return c.viper.GetFloat64("segment.line_gap_seconds")
}

// GetOutputPath returns the transcript output path; empty means stdout
func (c *Configuration) GetOutputPath() string {
	return c.viper.GetString("output.path")
}

// SetOutputPath overrides the transcript output path
func (c *Configuration) SetOutputPath(path string) {
	c.viper.Set("output.path", path)
}

// GetPrettyOutput returns whether transcript JSON is indented
func (c *Configuration) GetPrettyOutput() bool {
	return c.viper.GetBool("output.pretty")
}

// GetSubtitleLanguages returns the manual subtitle language priority list
func (c *Configuration) GetSubtitleLanguages() []string {
	return c.viper.GetStringSlice("tracks.subtitle_languages")
}

// GetAutoCaptionLanguages returns the automatic caption language priority list
func (c *Configuration) GetAutoCaptionLanguages() []string {
	return c.viper.GetStringSlice("tracks.auto_caption_languages")
}
