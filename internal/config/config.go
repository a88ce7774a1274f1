package config

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dshills/eventgate/internal/capability"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/rs/zerolog"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the complete configuration.
type Config struct {
	Capability CapabilityConfig `toml:"capability"`
	Hotkeys    HotkeysConfig    `toml:"hotkeys"`
	Ready      ReadyConfig      `toml:"ready"`
	Log        LogConfig        `toml:"log"`
	Plugins    PluginsConfig    `toml:"plugins"`
	Metrics    MetricsConfig    `toml:"metrics"`
}

// CapabilityConfig holds the environment facts.
type CapabilityConfig struct {
	EngineFamily    string  `toml:"engine_family"`
	EngineVersion   float64 `toml:"engine_version"`
	BrowserVersion  float64 `toml:"browser_version"`
	NativeListeners bool    `toml:"native_listeners"`
}

// HotkeysConfig holds hotkey matching settings and named bindings.
type HotkeysConfig struct {
	Strict   bool              `toml:"strict"`
	Bindings map[string]string `toml:"bindings"`
}

// ReadyConfig holds dom-ready detection settings.
type ReadyConfig struct {
	PollInterval Duration `toml:"poll_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// PluginsConfig lists Lua scripts to load.
type PluginsConfig struct {
	Scripts []string `toml:"scripts"`
}

// MetricsConfig holds Prometheus settings. An empty Addr disables the
// HTTP endpoint.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
	Addr      string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Capability: CapabilityConfig{
			NativeListeners: true,
		},
		Hotkeys: HotkeysConfig{
			Bindings: map[string]string{},
		},
		Ready: ReadyConfig{
			PollInterval: Duration{10 * time.Millisecond},
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
		Metrics: MetricsConfig{
			Namespace: "eventgate",
		},
	}
}

// Probe returns the capability facts.
func (c CapabilityConfig) Probe() (capability.Static, error) {
	family, err := capability.ParseFamily(c.EngineFamily)
	if err != nil {
		return capability.Static{}, ErrInvalid("capability.engine_family", err.Error())
	}
	return capability.Static{
		Family:          family,
		Engine:          c.EngineVersion,
		Browser:         c.BrowserVersion,
		NativeListeners: c.NativeListeners,
	}, nil
}

// Matcher returns the hotkey matcher for these settings.
func (c Config) Matcher() key.Matcher {
	probe, _ := c.Capability.Probe()
	return key.NewMatcher(
		key.WithGeckoPad(capability.IsGecko(probe)),
		key.WithStrictModifiers(c.Hotkeys.Strict),
	)
}

// BindingNames returns the binding names in sorted order.
func (c HotkeysConfig) BindingNames() []string {
	return slices.Sorted(maps.Keys(c.Bindings))
}

// LogLevel returns the parsed log level.
func (c LogConfig) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.NoLevel, ErrInvalid("log.level", err.Error())
	}
	return level, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	probe, err := c.Capability.Probe()
	if err != nil {
		return err
	}
	if c.Capability.EngineVersion < 0 {
		return ErrInvalid("capability.engine_version", "must not be negative")
	}
	if c.Capability.BrowserVersion < 0 {
		return ErrInvalid("capability.browser_version", "must not be negative")
	}

	gecko := capability.IsGecko(probe)
	for _, name := range c.Hotkeys.BindingNames() {
		desc := c.Hotkeys.Bindings[name]
		if name == "" {
			return ErrInvalid("hotkeys.bindings", "empty binding name")
		}
		if !key.ParseDescriptor(desc).Valid(gecko) {
			return ErrInvalid("hotkeys.bindings."+name, fmt.Sprintf("unresolvable descriptor %q", desc))
		}
	}

	if c.Ready.PollInterval.Duration <= 0 {
		return ErrInvalid("ready.poll_interval", "must be positive")
	}

	if _, err := c.Log.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return ErrInvalid("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}

	for i, s := range c.Plugins.Scripts {
		if s == "" {
			return ErrInvalid(fmt.Sprintf("plugins.scripts[%d]", i), "empty path")
		}
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return ErrInvalid("metrics.namespace", "required when metrics are enabled")
	}
	return nil
}
