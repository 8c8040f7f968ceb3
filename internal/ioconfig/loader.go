// Package ioconfig reads configuration from config.yaml and environment
// variables with viper.
package ioconfig

import (
	"strings"

	"github.com/gnames/ifcdb/internal/iofs"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by IFCdb.
const EnvPrefix = "IFCDB"

// Load reads the config file of homeDir. Environment variables override
// values from the file. The result only contains values that were set
// somewhere, so it should be applied on top of config.New() through
// ToOptions().
func Load(homeDir string) (*config.Config, error) {
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the allowed environment variables. They match the
// fields of config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("database.host", "IFCDB_DATABASE_HOST")
	_ = v.BindEnv("database.port", "IFCDB_DATABASE_PORT")
	_ = v.BindEnv("database.user", "IFCDB_DATABASE_USER")
	_ = v.BindEnv("database.password", "IFCDB_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "IFCDB_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "IFCDB_DATABASE_SSL_MODE")

	_ = v.BindEnv("import.batch_size", "IFCDB_IMPORT_BATCH_SIZE")

	_ = v.BindEnv("log.level", "IFCDB_LOG_LEVEL")
	_ = v.BindEnv("log.format", "IFCDB_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "IFCDB_LOG_DESTINATION")

	_ = v.BindEnv("jobs_number", "IFCDB_JOBS_NUMBER")

	v.AutomaticEnv()
}
