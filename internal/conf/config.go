// Package conf handles the configuration of the verde services, viper is
// used for reading the config file and providing environment overrides.
package conf

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Settings contains all runtime configuration
type Settings struct {
	Debug bool `mapstructure:"debug"`

	Log      LogSettings      `mapstructure:"log"`
	RedList  RedListSettings  `mapstructure:"redlist"`
	Wiki     WikiSettings     `mapstructure:"wiki"`
	Pipeline PipelineSettings `mapstructure:"pipeline"`
}

// LogSettings controls file log rotation
type LogSettings struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"maxsizemb"`
	MaxBackups int    `mapstructure:"maxbackups"`
	MaxAgeDays int    `mapstructure:"maxagedays"`
}

// RedListSettings configures the risk-assessment API client
type RedListSettings struct {
	BaseURL     string        `mapstructure:"baseurl"`
	APIToken    string        `mapstructure:"apitoken"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cachettl"`
	RateLimitMS int           `mapstructure:"ratelimitms"`
	PageCap     int           `mapstructure:"pagecap"`
	PageSize    int           `mapstructure:"pagesize"`
}

// WikiSettings configures the descriptive-content provider
type WikiSettings struct {
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cachettl"`
}

// PipelineSettings configures the enrichment pipeline
type PipelineSettings struct {
	Concurrency      int           `mapstructure:"concurrency"`
	Deadline         time.Duration `mapstructure:"deadline"`
	SampleBudget     int           `mapstructure:"samplebudget"`
	SamplePartitions int           `mapstructure:"samplepartitions"`
	SampleThreshold  int           `mapstructure:"samplethreshold"`
	BrowseTTL        time.Duration `mapstructure:"browsettl"`
}

var (
	settings   *Settings
	settingsMu sync.RWMutex
)

// Load reads the configuration file and environment, returning the
// populated settings. A missing config file is not an error; defaults
// and environment variables apply.
func Load() (*Settings, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/verde")
	viper.SetEnvPrefix("verde")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	s := &Settings{}
	if err := viper.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	settingsMu.Lock()
	settings = s
	settingsMu.Unlock()

	return s, nil
}

// GetSettings returns the loaded settings, or nil before Load has run.
func GetSettings() *Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func setDefaults() {
	viper.SetDefault("debug", false)

	viper.SetDefault("log.path", "logs")
	viper.SetDefault("log.maxsizemb", 100)
	viper.SetDefault("log.maxbackups", 3)
	viper.SetDefault("log.maxagedays", 28)

	viper.SetDefault("redlist.baseurl", "https://api.iucnredlist.org/api/v4")
	viper.SetDefault("redlist.timeout", 30*time.Second)
	viper.SetDefault("redlist.cachettl", time.Hour)
	viper.SetDefault("redlist.ratelimitms", 100)
	viper.SetDefault("redlist.pagecap", 10)
	viper.SetDefault("redlist.pagesize", 100)

	viper.SetDefault("wiki.language", "en")
	viper.SetDefault("wiki.timeout", 3*time.Second)
	viper.SetDefault("wiki.cachettl", time.Hour)

	viper.SetDefault("pipeline.concurrency", 20)
	viper.SetDefault("pipeline.deadline", 45*time.Second)
	viper.SetDefault("pipeline.samplebudget", 350)
	viper.SetDefault("pipeline.samplepartitions", 8)
	viper.SetDefault("pipeline.samplethreshold", 200)
	viper.SetDefault("pipeline.browsettl", time.Hour)
}
