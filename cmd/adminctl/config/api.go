package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"
)

// apiConf holds the connection settings for the remote marketplace admin
// API.
type apiConf struct {
	// BaseURL is the API root, e.g. https://api.example.com/api/v1/admin/
	BaseURL string `yaml:"base_url"`
	// Timeout bounds every request.
	Timeout duration.DurationOption `yaml:"timeout"`
	// BulkDeleteConcurrency bounds the per-id fan-out used for bulk
	// deletion of articles. 1 makes it sequential.
	BulkDeleteConcurrency int `yaml:"bulk_delete_concurrency"`
}

func (c *apiConf) validate() error {
	if c.BaseURL == "" {
		return errors.New("error in api conf: base_url must be specified")
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.BulkDeleteConcurrency < 1 {
		c.BulkDeleteConcurrency = 1
	}
	return nil
}

var defaultAPIConf = apiConf{
	Timeout:               duration.DurationOption(30 * time.Second),
	BulkDeleteConcurrency: 4,
}
