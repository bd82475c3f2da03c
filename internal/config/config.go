// Package config loads the jslib command's configuration, from defaults, an
// optional TOML file, JSLIB_ environment variables, and command line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvConfig overrides the config file path.
const EnvConfig = "JSLIB_CONFIG"

// Config holds application configuration.
type Config struct {
	Loader LoaderConfig
	Log    LogConfig
	REPL   REPLConfig
}

// LoaderConfig holds module loader settings.
type LoaderConfig struct {
	// Include are directories prepended to the search path, such that the
	// first has the highest priority.
	Include []string
	// Require are modules loaded (once) before any scripts.
	Require []string
	// Extension is appended to module names that lack it.
	Extension string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// REPLConfig holds interactive prompt settings.
type REPLConfig struct {
	// Enabled forces the prompt, after any scripts. It is implied if there
	// are no scripts.
	Enabled bool
	Prefix  string
}

// Flags returns the command line flags understood by [Load].
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("jslib", pflag.ContinueOnError)
	fs.StringArrayP("include", "I", nil, "prepend a directory to the module search path (repeatable)")
	fs.StringArray("require", nil, "require a module before running scripts (repeatable)")
	fs.String("ext", "", "module file extension")
	fs.String("log-level", "", "log level (trace, debug, info, notice, warning, err, crit, alert, emerg, disabled)")
	fs.String("config", "", "config file path (default $HOME/.config/jslib/config.toml)")
	fs.Bool("repl", false, "start an interactive prompt after running scripts")
	return fs
}

// Load reads configuration from file, env, and flags, which must have been
// created by [Flags], and parsed. Env var overrides use prefix JSLIB_, e.g.
// JSLIB_LOG_LEVEL.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("loader.include", []string{})
	v.SetDefault("loader.require", []string{})
	v.SetDefault("loader.extension", ".js")
	v.SetDefault("log.level", "warning")
	v.SetDefault("repl.enabled", false)
	v.SetDefault("repl.prefix", ">>> ")

	v.SetConfigType("toml")

	cfgPath, _ := flags.GetString("config")
	if cfgPath == "" {
		cfgPath = os.Getenv(EnvConfig)
	}
	explicit := cfgPath != ""
	if explicit {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jslib"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JSLIB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, name := range map[string]string{
		"loader.include":   "include",
		"loader.require":   "require",
		"loader.extension": "ext",
		"log.level":        "log-level",
		"repl.enabled":     "repl",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	// the config file is optional, unless explicitly specified
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseLevel parses a level keyword, as returned by [logiface.Level.String].
func ParseLevel(s string) (logiface.Level, error) {
	for level := logiface.LevelDisabled; level <= logiface.LevelTrace; level++ {
		if level.String() == s {
			return level, nil
		}
	}
	switch s {
	case "warn":
		return logiface.LevelWarning, nil
	case "error":
		return logiface.LevelError, nil
	}
	return logiface.LevelDisabled, fmt.Errorf("invalid log level: %q", s)
}
