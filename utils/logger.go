package utils

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
)

// InitLogger builds the zerolog-backed logr used across the app.
// Higher verbosity means more logs, same scale as the -v flag.
func InitLogger(verbosity int) logr.Logger {
	zerologr.SetMaxV(verbosity)
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return zerologr.New(&zl)
}
