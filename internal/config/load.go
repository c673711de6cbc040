package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/wslkit/wslkit/internal/errors"
)

// Overrides carries CLI flag values that take precedence over every other
// configuration source. Only fields whose Set flag is true are applied, so
// an unset flag never masks a config-file value.
type Overrides struct {
	KernelRepo   string
	KernelBranch string
	KernelDest   string
	KernelDir    string
	NoClone      bool

	KernelRepoSet   bool
	KernelBranchSet bool
	KernelDestSet   bool
	KernelDirSet    bool
	NoCloneSet      bool
}

// newViperInstance creates a new Viper instance with standard wslkit
// configuration: defaults, WSLKIT_ env prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("WSLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// viperDecoderOption returns the decode hooks used when unmarshaling config,
// notably string-to-duration for build.timeout.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
//
// The function returns an error only for actual configuration problems,
// not for missing config files (which are expected in many scenarios).
func Load(ctx context.Context) (*Config, error) {
	return LoadWithOverrides(ctx, nil)
}

// LoadWithOverrides is Load plus a final CLI-flag override layer.
func LoadWithOverrides(ctx context.Context, overrides *Overrides) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence), then project config merged
	// over it
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	applyOverrides(&cfg, overrides)

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("kernel.repo", cfg.Kernel.Repo).
		Str("kernel.branch", cfg.Kernel.Branch).
		Str("kernel.dest", cfg.Kernel.Dest).
		Bool("kernel.auto_clone", cfg.Kernel.AutoClone).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// applyOverrides copies explicitly-set flag values onto the config.
func applyOverrides(cfg *Config, overrides *Overrides) {
	if overrides == nil {
		return
	}
	if overrides.KernelRepoSet {
		cfg.Kernel.Repo = overrides.KernelRepo
	}
	if overrides.KernelBranchSet {
		cfg.Kernel.Branch = overrides.KernelBranch
	}
	if overrides.KernelDestSet {
		cfg.Kernel.Dest = overrides.KernelDest
	}
	if overrides.KernelDirSet {
		cfg.Kernel.Dir = overrides.KernelDir
	}
	if overrides.NoCloneSet {
		cfg.Kernel.AutoClone = !overrides.NoClone
	}
}

// loadGlobalConfig attempts to load the global config file (~/.wslkit/config.yaml).
// Returns nil if the file doesn't exist or home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig attempts to merge the project config file
// (.wslkit/config.yaml in the working directory) over the global config.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}
