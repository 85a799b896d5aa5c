package helpers

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger: text output in development, JSON
// elsewhere. level (LOG_LEVEL) overrides the env default when it parses.
func NewLogger(appName, env, level string) *logrus.Logger {
	return newLogger(os.Stdout, appName, env, level)
}

func newLogger(out io.Writer, appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	fields := logrus.Fields{"app": appName, "env": env}
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			fields["invalid_level"] = level
		} else {
			logger.SetLevel(lvl)
		}
	}
	fields["level"] = logger.GetLevel().String()
	logger.WithFields(fields).Info("logger initialized")
	return logger
}

// LogError logs msg at error level with err attached under "error".
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	logger.WithFields(withError(fields, err)).Error(msg)
}

// LogWarn is LogError for degraded but recoverable conditions.
func LogWarn(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	logger.WithFields(withError(fields, err)).Warn(msg)
}

func LogInfo(logger *logrus.Logger, msg string, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	logger.WithFields(fields).Info(msg)
}

func withError(fields logrus.Fields, err error) logrus.Fields {
	out := make(logrus.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if err != nil {
		out["error"] = err.Error()
	}
	return out
}
