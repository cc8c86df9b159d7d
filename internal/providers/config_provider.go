package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Na1awut/NDLP/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "NDLP_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "NDLP_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "NDLP_CACHE_ENABLED")
	viper.BindEnv("cache.size", "NDLP_CACHE_SIZE")
	viper.BindEnv("evc.energyPolicy", "NDLP_ENERGY_POLICY")
	viper.BindEnv("external.extractorUrl", "NDLP_EXTRACTOR_URL")
	viper.BindEnv("external.composerUrl", "NDLP_COMPOSER_URL")
	viper.BindEnv("external.notifierUrl", "NDLP_NOTIFIER_URL")
	viper.BindEnv("admin.key", "NDLP_ADMIN_KEY")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "EVCDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
