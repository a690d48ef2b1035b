// Package ioconfig reads persistent configuration from config.yaml and
// ADEGENET_* environment variables.
package ioconfig

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/vmikk/adegenet/internal/iofs"
	"github.com/vmikk/adegenet/pkg/config"
)

// EnvPrefix is the prefix of environment variables read by adegenet.
const EnvPrefix = "ADEGENET"

// Load reads configuration from a YAML file and environment variables.
// A missing file is not an error, defaults and environment are used then.
// Values are returned as options, so invalid ones get rejected with a
// warning when applied to a Config.
func Load(cfgPath string) ([]config.Option, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	initEnvVars(v)

	if cfgPath != "" {
		_, err := os.Stat(cfgPath)
		switch {
		case err == nil:
			v.SetConfigFile(cfgPath)
			if err = v.ReadInConfig(); err != nil {
				return nil, iofs.ReadFileError(cfgPath, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}
	return res.ToOptions(), nil
}

// setDefaults registers every persistent key with its default value, so
// keys absent from config.yaml keep defaults and can be set from the
// environment.
func setDefaults(v *viper.Viper) {
	d := config.New()
	v.SetDefault("inbreeding.result_type", d.Inbreeding.ResultType)
	v.SetDefault("inbreeding.sample_size", d.Inbreeding.SampleSize)
	v.SetDefault("inbreeding.grid_size", d.Inbreeding.GridSize)
	v.SetDefault("inbreeding.true_names", d.Inbreeding.TrueNames)
	v.SetDefault("inbreeding.refine", d.Inbreeding.Refine)

	v.SetDefault("export.format", d.Export.Format)

	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.database", d.Database.Database)
	v.SetDefault("database.ssl_mode", d.Database.SSLMode)
	v.SetDefault("database.batch_size", d.Database.BatchSize)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.destination", d.Log.Destination)

	v.SetDefault("jobs_number", d.JobsNumber)
}

func initEnvVars(v *viper.Viper) {
	// Variables are listed explicitly to see clearly which ones are
	// allowed. They match fields of config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		"inbreeding.result_type",
		"inbreeding.sample_size",
		"inbreeding.grid_size",
		"inbreeding.true_names",
		"inbreeding.refine",
		"export.format",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.database",
		"database.ssl_mode",
		"database.batch_size",
		"log.level",
		"log.format",
		"log.destination",
		"jobs_number",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
