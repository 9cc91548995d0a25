package composite

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Str("component", "composite").Logger()
	logger.Store(&l)
}

// SetLogger replaces the logger used to report structural errors.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the logger used to report structural errors.
func Logger() zerolog.Logger {
	return *logger.Load()
}

// reportError starts an error event for operation op.
func reportError(op string) *zerolog.Event {
	return logger.Load().Error().Str("op", op)
}
