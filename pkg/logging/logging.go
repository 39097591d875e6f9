package logging

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type loggerContextKey string

const loggerContextKeyVal = loggerContextKey("logrus.FieldLogger")

// Logger returns the logger carried by ctx, or the standard logger.
func Logger(ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logrus.StandardLogger()
	}
	val := ctx.Value(loggerContextKeyVal)
	if val != nil {
		if logger, ok := val.(logrus.FieldLogger); ok {
			return logger
		}
	}
	return logrus.StandardLogger()
}

// WithLogger adds a value to the context for the logger
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerContextKeyVal, logger)
}

// New builds a text logger writing to out. An empty level means info;
// verbose forces debug unless the level is already finer.
func New(out io.Writer, level string, verbose bool) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl := logrus.InfoLevel
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		parsed, err := logrus.ParseLevel(trimmed)
		if err != nil {
			return nil, errors.Wrapf(err, "log level %q", level)
		}
		lvl = parsed
	}
	if verbose && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger, nil
}
