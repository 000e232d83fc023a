package commands

import (
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultDir holds config.yaml and the persisted session.
const DefaultDir = "~/.lifetrack"

type Config struct {
	Dir          string
	APIURL       string
	Timeout      time.Duration
	Env          string
	RollbarToken string
}

// LoadConfig reads dir/config.yaml, if any, then LIFETRACK_* environment variables.
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return Config{}, errors.Wrapf(err, "expanding %s", dir)
	}

	v := viper.New()
	v.SetDefault("api_url", "http://localhost:8000")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("env", "CLI")
	v.SetDefault("rollbar_token", "")
	v.SetConfigName("config") // .yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(expanded)
	v.SetEnvPrefix("LIFETRACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, errors.Wrap(err, "reading config file")
		}
	}

	return Config{
		Dir:          expanded,
		APIURL:       v.GetString("api_url"),
		Timeout:      v.GetDuration("timeout"),
		Env:          v.GetString("env"),
		RollbarToken: v.GetString("rollbar_token"),
	}, nil
}
