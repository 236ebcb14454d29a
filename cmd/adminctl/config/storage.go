package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/motormarket/adminctl/storage"
	"github.com/motormarket/adminctl/storage/model"
)

type storageConf struct {
	Driver  storage.DriverType `yaml:"driver"`
	DataDir string             `yaml:"data_dir"`
	DSN     string             `yaml:"dsn"`
	storage.DSNConf
	Debug bool `yaml:"debug"`
}

func (c *storageConf) validate() error {
	if c.Driver == storage.DriverSQLite {
		if c.DataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return errors.Wrap(err, "error in storage conf: data_dir not set and home directory unknown")
			}
			c.DataDir = filepath.Join(home, ".local", "share", "adminctl")
		}
		return errors.Wrap(os.MkdirAll(c.DataDir, 0o700), "error in storage conf")
	}
	var err error
	if c.DSN == "" {
		c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
	}
	return err
}

var defaultStorageConf = storageConf{
	Driver: storage.DriverSQLite,
	DSNConf: storage.DSNConf{
		User: "adminctl",
		Host: "localhost",
		DB:   "adminctl",
	},
}

// LoadStorageBackends loads and returns the storage backends for the passed Config
func LoadStorageBackends(c storageConf) (model.Backends, error) {
	cfg := storage.Config{
		Driver:  c.Driver,
		DSN:     c.DSN,
		DataDir: c.DataDir,
		Debug:   c.Debug,
	}
	s, err := storage.NewStorage(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	log.Debug("Loaded storage backend")
	return model.Backends{
		Session: s.SessionStorage(),
		KV:      s.KeyValue(),
	}, nil
}
