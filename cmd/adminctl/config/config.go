package config

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"
)

// Config holds the complete client configuration.
type Config struct {
	API     apiConf     `yaml:"api"`
	Logging loggingConf `yaml:"logging"`
	Storage storageConf `yaml:"storage"`
}

var conf *Config

// Get returns the loaded Config
func Get() *Config {
	return conf
}

func (c *Config) validate() error {
	if err := c.API.validate(); err != nil {
		return err
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return c.Storage.validate()
}

// possibleConfigLocations are the directories searched for a config.yaml
// when no explicit file is passed, in order.
func possibleConfigLocations() []string {
	locations := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "adminctl"))
	}
	return append(locations, "/etc/adminctl")
}

// Load loads the config from the passed file, or from the first config.yaml
// found in the default locations when file is empty.
func Load(file string) {
	if file == "" {
		for _, dir := range possibleConfigLocations() {
			candidate := filepath.Join(dir, "config.yaml")
			if fileutils.FileExists(candidate) {
				file = candidate
				break
			}
		}
	}

	c := Config{
		API:     defaultAPIConf,
		Logging: defaultLoggingConf,
		Storage: defaultStorageConf,
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			log.WithError(err).Fatal("could not read config file")
		}
		if err = yaml.Unmarshal(data, &c); err != nil {
			log.WithError(err).Fatal("could not parse config file")
		}
	}
	if err := c.validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	conf = &c
}
