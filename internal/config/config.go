// Package config loads and validates runtime settings for the node and
// monitor binaries from configs/config.yml via viper.
package config

import (
	"time"

	"github.com/Chiggixo/EzyMedi/internal/models"

	"github.com/spf13/viper"
)

// Defaults. Every tunable that used to be an embedded literal in the
// original dashboard lives here so tests can run with accelerated clocks.
const (
	// DefaultPollInterval is the monitor's fixed polling cadence.
	DefaultPollInterval = 800 * time.Millisecond
	// DefaultRequestTimeout bounds one upstream round trip. A request
	// slower than this counts as a failed tick.
	DefaultRequestTimeout = 5 * time.Second
	// DefaultSimulatorTick is the ward simulator's packet cadence.
	DefaultSimulatorTick = 300 * time.Millisecond

	DefaultNodePort    = "5001"
	DefaultMonitorPort = "8080"
	DefaultDBPath      = "ezymedi.db"

	// DefaultProgressGoal is the reading count at which abp_progress
	// reaches 100.
	DefaultProgressGoal = 1000

	// Local emphasis thresholds (strict comparisons).
	DefaultMaxHeartRate = 110.0 // flag when ecg_bpm > this
	DefaultMinSpO2      = 94.0  // flag when spo2_percent < this
	DefaultMaxMotion    = 4.5   // flag when motion_magnitude > this
)

// Config aggregates settings for both binaries. A single config file serves
// the whole deployment; each binary reads its own section plus Subjects.
type Config struct {
	LogLevel string           `mapstructure:"log_level"`
	Node     NodeConfig       `mapstructure:"node"`
	Monitor  MonitorConfig    `mapstructure:"monitor"`
	Subjects []models.Subject `mapstructure:"subjects"`
}

// NodeConfig configures the clinical node.
type NodeConfig struct {
	Port         string          `mapstructure:"port"`
	DBPath       string          `mapstructure:"db_path"`
	ProgressGoal int             `mapstructure:"progress_goal"`
	Simulator    SimulatorConfig `mapstructure:"simulator"`
}

// SimulatorConfig configures the built-in ward simulator.
type SimulatorConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Tick    time.Duration `mapstructure:"tick"`
}

// MonitorConfig configures the client-side monitoring feed.
type MonitorConfig struct {
	Port           string          `mapstructure:"port"`
	NodeURL        string          `mapstructure:"node_url"`
	PollInterval   time.Duration   `mapstructure:"poll_interval"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
	Thresholds     ThresholdConfig `mapstructure:"thresholds"`
}

// ThresholdConfig holds the local emphasis thresholds. Comparisons are
// strict: HR above, SpO2 below, motion above.
type ThresholdConfig struct {
	MaxHeartRate float64 `mapstructure:"max_heart_rate"`
	MinSpO2      float64 `mapstructure:"min_spo2"`
	MaxMotion    float64 `mapstructure:"max_motion"`
}

// Load reads config.yml from the given directory, applies defaults and
// validates the result. An empty dir defaults to "configs".
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "configs"
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults describe a complete local setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Subjects) == 0 {
		cfg.Subjects = DefaultSubjects()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("node.port", DefaultNodePort)
	v.SetDefault("node.db_path", DefaultDBPath)
	v.SetDefault("node.progress_goal", DefaultProgressGoal)
	v.SetDefault("node.simulator.enabled", true)
	v.SetDefault("node.simulator.tick", DefaultSimulatorTick)
	v.SetDefault("monitor.port", DefaultMonitorPort)
	v.SetDefault("monitor.node_url", "http://127.0.0.1:"+DefaultNodePort)
	v.SetDefault("monitor.poll_interval", DefaultPollInterval)
	v.SetDefault("monitor.request_timeout", DefaultRequestTimeout)
	v.SetDefault("monitor.thresholds.max_heart_rate", DefaultMaxHeartRate)
	v.SetDefault("monitor.thresholds.min_spo2", DefaultMinSpO2)
	v.SetDefault("monitor.thresholds.max_motion", DefaultMaxMotion)
}

// DefaultSubjects is the ward roster the original deployment shipped with.
func DefaultSubjects() []models.Subject {
	return []models.Subject{
		{ID: "patient_001", Label: "Patient 001 (General Ward)", Condition: models.ConditionStable},
		{ID: "patient_002", Label: "Patient 002 (Acute Care)", Condition: models.ConditionAcute},
		{ID: "patient_003", Label: "Patient 003 (Cardiology)", Condition: models.ConditionChronic},
		{ID: "patient_004", Label: "Patient 004 (Ambulatory)", Condition: models.ConditionNoisy},
	}
}
