package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const logFilename = "adminctl.log"

// Init configures the global logrus logger. When dir is set, log output
// goes to adminctl.log in that directory; stderr output is added on top
// when requested (and used alone when no dir is set).
func Init(level, dir string, stderr bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "unknown log level '%s'", level)
	}
	log.SetLevel(lvl)
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)

	var outputs []io.Writer
	if dir != "" {
		f, err := os.OpenFile(
			filepath.Join(dir, logFilename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644,
		)
		if err != nil {
			return errors.Wrap(err, "opening log file")
		}
		outputs = append(outputs, f)
	}
	if stderr || len(outputs) == 0 {
		outputs = append(outputs, os.Stderr)
	}
	if len(outputs) == 1 {
		log.SetOutput(outputs[0])
	} else {
		log.SetOutput(io.MultiWriter(outputs...))
	}
	return nil
}
