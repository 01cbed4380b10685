package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	xdgAppName = "task-tracker"
	configFile = "config.json"
	envPrefix  = "TASK_TRACKER"

	keyTasksFile = "tasks_file"

	// DefaultTasksFile is relative to the working directory.
	DefaultTasksFile = "tasks.json"
)

type Config struct {
	TasksFile string
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// newViper layers, lowest first: the default, config.json, then
// TASK_TRACKER_FILE (or TASK_TRACKER_TASKS_FILE).
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault(keyTasksFile, DefaultTasksFile)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyTasksFile, envPrefix+"_FILE", envPrefix+"_TASKS_FILE")
	return v
}

// Load resolves the configuration from the config file and environment. A
// missing config file is not an error. A config file that cannot be read is
// reported, and the returned Config then falls back to env and defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return &Config{TasksFile: DefaultTasksFile}, err
	}

	v := newViper(path)
	var readErr error
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		readErr = fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{TasksFile: v.GetString(keyTasksFile)}
	if cfg.TasksFile == "" {
		cfg.TasksFile = DefaultTasksFile
	}
	return cfg, readErr
}

// Save persists cfg as the user's config.json.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyTasksFile, cfg.TasksFile)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file if one exists. Variables
// already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Resolve picks the backing file path: the flag when given, otherwise
// whatever Load resolved. A broken config file is reported but does not stop
// resolution.
func Resolve(flagFile string) (string, error) {
	cfg, err := Load()
	if flagFile != "" {
		return flagFile, err
	}
	return cfg.TasksFile, err
}
