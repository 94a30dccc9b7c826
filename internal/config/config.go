// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"firestige.xyz/plipbox/internal/core"
)

// Capture source types.
const (
	CaptureTypeFile     = "file"
	CaptureTypeAFPacket = "afpacket"
)

// DefaultMACAddr is the plipbox factory hardware address.
const DefaultMACAddr = "1a:11:af:a0:47:11"

// GlobalConfig represents the top-level configuration.
// Maps to the `plipbox:` root key in YAML.
type GlobalConfig struct {
	Node     NodeConfig     `mapstructure:"node" yaml:"node"`
	Filter   FilterConfig   `mapstructure:"filter" yaml:"filter"`
	Dump     DumpConfig     `mapstructure:"dump" yaml:"dump"`
	Capture  CaptureConfig  `mapstructure:"capture" yaml:"capture"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

// ─── Node Identity ───

// NodeConfig identifies the host frames are classified for.
type NodeConfig struct {
	MACAddr core.HardwareAddress `mapstructure:"mac_addr" yaml:"mac_addr"`
}

// ─── Classification ───

// FilterConfig controls which classified frames reach the handler.
type FilterConfig struct {
	Eth bool `mapstructure:"eth" yaml:"eth"` // drop frames that are not for this node
}

// DumpConfig controls per-frame diagnostic logging.
type DumpConfig struct {
	Eth bool `mapstructure:"eth" yaml:"eth"`
}

// ─── Capture ───

// CaptureConfig selects and tunes the frame source.
type CaptureConfig struct {
	Type         string        `mapstructure:"type" yaml:"type"`           // file | afpacket
	Path         string        `mapstructure:"path" yaml:"path"`           // capture file (type=file)
	Interface    string        `mapstructure:"interface" yaml:"interface"` // type=afpacket
	SnapLen      int           `mapstructure:"snap_len" yaml:"snap_len"`
	BufferSizeMB int           `mapstructure:"buffer_size_mb" yaml:"buffer_size_mb"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	KernelFilter bool          `mapstructure:"kernel_filter" yaml:"kernel_filter"`
}

// PipelineConfig tunes the capture → classify hand-off.
type PipelineConfig struct {
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// ─── Metrics ───

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level" yaml:"level"`   // debug / info / warn / error
	Format  string           `mapstructure:"format" yaml:"format"` // json / text
	Outputs LogOutputsConfig `mapstructure:"outputs" yaml:"outputs"`
}

// LogOutputsConfig contains structured log output destinations.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file" yaml:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled" yaml:"enabled"`
	Path     string         `mapstructure:"path" yaml:"path"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `plipbox: ...`.
type configRoot struct {
	Plipbox GlobalConfig `mapstructure:"plipbox"`
}

// Load loads configuration from file. An empty path loads defaults and
// environment overrides only.
// Env vars map through the key replacer, e.g. "plipbox.log.level" → PLIPBOX_LOG_LEVEL.
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&root, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Plipbox

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use the "plipbox." prefix to match the YAML root wrapper; a default
// also makes the key visible to AutomaticEnv during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("plipbox.node.mac_addr", DefaultMACAddr)

	v.SetDefault("plipbox.filter.eth", true)
	v.SetDefault("plipbox.dump.eth", false)

	v.SetDefault("plipbox.capture.type", CaptureTypeFile)
	v.SetDefault("plipbox.capture.path", "")
	v.SetDefault("plipbox.capture.interface", "")
	v.SetDefault("plipbox.capture.snap_len", 1514)
	v.SetDefault("plipbox.capture.buffer_size_mb", 8)
	v.SetDefault("plipbox.capture.timeout", "100ms")
	v.SetDefault("plipbox.capture.kernel_filter", false)

	v.SetDefault("plipbox.pipeline.buffer_size", 1024)

	v.SetDefault("plipbox.log.level", "info")
	v.SetDefault("plipbox.log.format", "text")
	v.SetDefault("plipbox.log.outputs.file.enabled", false)
	v.SetDefault("plipbox.log.outputs.file.path", "/var/log/plipbox/plipbox.log")
	v.SetDefault("plipbox.log.outputs.file.rotation.max_size_mb", 100)
	v.SetDefault("plipbox.log.outputs.file.rotation.max_age_days", 30)
	v.SetDefault("plipbox.log.outputs.file.rotation.max_backups", 5)
	v.SetDefault("plipbox.log.outputs.file.rotation.compress", true)

	v.SetDefault("plipbox.metrics.enabled", false)
	v.SetDefault("plipbox.metrics.listen", ":9091")
	v.SetDefault("plipbox.metrics.path", "/metrics")
}

// ValidateAndApplyDefaults validates configuration and applies runtime defaults.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	// ── Log validation ──
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("%w: invalid log level: %s (must be debug/info/warn/error)", core.ErrConfigInvalid, cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("%w: invalid log format: %s (must be json/text)", core.ErrConfigInvalid, cfg.Log.Format)
	}
	if cfg.Log.Outputs.File.Enabled && cfg.Log.Outputs.File.Path == "" {
		return fmt.Errorf("%w: log.outputs.file.path is required when file output is enabled", core.ErrConfigInvalid)
	}

	// ── Node ──
	if cfg.Node.MACAddr.IsBroadcast() {
		return fmt.Errorf("%w: node.mac_addr must not be the broadcast address", core.ErrConfigInvalid)
	}

	// ── Capture ──
	switch cfg.Capture.Type {
	case CaptureTypeFile, CaptureTypeAFPacket:
	default:
		return fmt.Errorf("%w: unsupported capture.type: %s (must be file/afpacket)", core.ErrConfigInvalid, cfg.Capture.Type)
	}
	if cfg.Capture.SnapLen < core.EthernetHeaderLen {
		return fmt.Errorf("%w: capture.snap_len %d is below the Ethernet header length", core.ErrConfigInvalid, cfg.Capture.SnapLen)
	}
	if cfg.Capture.BufferSizeMB <= 0 {
		cfg.Capture.BufferSizeMB = 8
	}
	if cfg.Capture.Timeout <= 0 {
		cfg.Capture.Timeout = 100 * time.Millisecond
	}

	if cfg.Pipeline.BufferSize <= 0 {
		cfg.Pipeline.BufferSize = 1024
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		return fmt.Errorf("%w: metrics.listen is required when metrics are enabled", core.ErrConfigInvalid)
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	return nil
}

// ValidateSource checks that the selected capture type has its source set.
// It is separate from ValidateAndApplyDefaults because the CLI may supply the
// source through flags after loading.
func (c CaptureConfig) ValidateSource() error {
	switch c.Type {
	case CaptureTypeFile:
		if c.Path == "" {
			return fmt.Errorf("%w: capture.path is required for capture.type=file", core.ErrConfigInvalid)
		}
	case CaptureTypeAFPacket:
		if c.Interface == "" {
			return fmt.Errorf("%w: capture.interface is required for capture.type=afpacket", core.ErrConfigInvalid)
		}
	}
	return nil
}
