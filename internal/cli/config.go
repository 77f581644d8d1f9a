package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pluqqy/docpick/pkg/models"
)

const (
	// EnvPrefix prefixes every environment override, e.g. DOCPICK_DOCUMENTS_DIR
	EnvPrefix = "DOCPICK"
	// ConfigDirEnv overrides the configuration directory
	ConfigDirEnv = "DOCPICK_CONFIG_DIR"

	configName = "config"
	stateFile  = "state.yaml"
	logFile    = "docpick.log"
)

// flagKeys maps command line flags onto settings keys
var flagKeys = map[string]string{
	"dir":        "documents.dir",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-sink":   "log.sink",
}

// ConfigDir returns the directory holding config.yaml and state.yaml
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "docpick"), nil
}

// StatePath returns where the last-open pointer is stored
func StatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stateFile), nil
}

// DefaultLogFile returns the log file used by the file sink
func DefaultLogFile() string {
	dir, err := ConfigDir()
	if err != nil {
		return logFile
	}
	return filepath.Join(dir, logFile)
}

// LoadSettings resolves settings from defaults, the config file, DOCPICK_*
// environment variables and finally flags. An explicit configFile must
// exist; the default one is optional.
func LoadSettings(configFile string, flags *pflag.FlagSet) (*models.Settings, error) {
	v := viper.New()
	setDefaults(v, models.DefaultSettings())

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return settings, nil
}

func setDefaults(v *viper.Viper, d *models.Settings) {
	v.SetDefault("documents.dir", d.Documents.Dir)
	v.SetDefault("ui.show_preview", d.UI.ShowPreview)
	v.SetDefault("ui.confirm_delete", d.UI.ConfirmDelete)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.sink", d.Log.Sink)
	v.SetDefault("log.file", d.Log.File)
}
