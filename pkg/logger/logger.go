package logx

import (
	"io"
	"os"

	"github.com/Cheertaboi/storefront-service/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

type LoggerOpts struct {
	Environment core.Environment
	// Output overrides the destination; nil means stderr.
	Output io.Writer
}

func safe(opts ...LoggerOpts) *LoggerOpts {
	if len(opts) == 0 {
		return DefaultLoggerOpts
	}
	return &opts[0]
}

// levels per environment; anything missing logs at debug.
var levels = map[core.Environment]zerolog.Level{
	core.Production: zerolog.InfoLevel,
	core.Testing:    zerolog.WarnLevel,
}

func levelFor(env core.Environment) zerolog.Level {
	if l, ok := levels[env]; ok {
		return l
	}
	return zerolog.DebugLevel
}

// Init installs the global logger: JSON for deployed environments, a console
// writer otherwise.
func Init(opts ...LoggerOpts) {
	o := safe(opts...)
	level := levelFor(o.Environment)

	if o.Environment.Deployed() {
		out := o.Output
		if out == nil {
			out = os.Stderr
		}
		log.Logger = zerolog.New(out).With().
			Timestamp().
			Str("service", "storefront-service").
			Str("env", o.Environment.String()).
			Logger().Level(level)
		return
	}

	cw := zerolog.NewConsoleWriter()
	if o.Output != nil {
		cw.Out = o.Output
		cw.NoColor = true
	}
	log.Logger = zerolog.New(cw).With().Timestamp().Caller().Logger().Level(level)
}

func Logger() *zerolog.Logger {
	return &log.Logger
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
