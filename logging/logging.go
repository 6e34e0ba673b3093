package logging

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	once   sync.Once
)

func Get() zerolog.Logger {
	once.Do(func() {
		logLevel := zerolog.InfoLevel
		if os.Getenv("YATES_DEBUG") != "" {
			logLevel = zerolog.DebugLevel
		}

		console := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}

		logger = zerolog.New(console).Level(logLevel).With().Timestamp().Logger()
	})

	return logger
}
