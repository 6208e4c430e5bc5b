package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/log"
)

var (
	// flags
	env        string
	configFile string

	// logger
	logger log.Logger

	// configuration
	cfg Configuration
)

type Configuration struct {
	Server struct {
		Addr  string `toml:"addr"`
		Debug bool   `toml:"debug"`
	} `toml:"server"`
	Auth struct {
		Key       string        `toml:"key"`
		CacheSize int           `toml:"cache_size"`
		CacheTTL  time.Duration `toml:"cache_ttl"`
	} `toml:"auth"`
	Storage struct {
		Driver string `toml:"driver"`
	} `toml:"storage"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Postgres struct {
		DSN      string `toml:"dsn"`
		MaxConns int32  `toml:"max_conns"`
	} `toml:"postgres"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
}

func defaultConfiguration() Configuration {
	var c Configuration
	c.Server.Addr = ":1705"
	c.Auth.CacheSize = 1024
	c.Auth.CacheTTL = 5 * time.Minute
	c.Storage.Driver = "bolt"
	c.Bolt.Store = "data/blogsynergy.db"
	c.Bleve.Store = "data/blogsynergy.index"
	return c
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
}

var RootCmd = cobra.Command{
	Use:          "blogsynergy",
	Short:        "Publish posts, follow authors, discuss",
	Long:         "Publish posts, follow authors, discuss",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.New(env)

		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}

		cfg = defaultConfiguration()
		if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
			return errors.New(fmt.Sprintf("could not read configuration %s", configFile), errors.WithCause(err))
		}
		return nil
	},
}

// readKey extracts the signing key from a file holding {"k": "..."}.
func readKey(filename string) ([]byte, error) {
	keyData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New("could not open key file", errors.WithCause(err))
	}

	var key struct {
		Key string `json:"k"`
	}
	if err := json.Unmarshal(keyData, &key); err != nil {
		return nil, errors.New("could not read key file", errors.WithCause(err))
	}
	if key.Key == "" {
		return nil, errors.New(fmt.Sprintf("no key in %s", filename))
	}

	return []byte(key.Key), nil
}
