package logs

import (
	"log/slog"
	"os"
	"strings"

	"market/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New builds the process-wide slog.Logger. JSON output is the default;
// pretty switches to the text handler for local reading. Every line carries
// the service name and environment so aggregated logs stay attributable.
func New(params Params) (*slog.Logger, error) {
	logCfg := params.Config.Env.Log

	level, ok := logLevels[strings.ToLower(logCfg.Level)]
	if !ok {
		return nil, errors.Errorf("unknown log level: %s", logCfg.Level)
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Source locations only matter when debugging
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if logCfg.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", params.Config.Env.ServiceName),
		slog.String("env", params.Config.Env.Env),
	)

	return logger, nil
}
