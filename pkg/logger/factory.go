package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/newsletter/pkg/environment"
)

// Option configures logger creation.
type Option func(*config)

type config struct {
	env        environment.Environment
	service    string
	output     io.Writer
	extractors []ContextExtractor
}

// profile is the handler setup for one deployment environment.
type profile struct {
	level slog.Level
	json  bool
}

var profiles = map[environment.Environment]profile{
	environment.Development: {level: slog.LevelDebug},
	environment.Staging:     {level: slog.LevelInfo, json: true},
	environment.Production:  {level: slog.LevelInfo, json: true},
}

// WithEnvironment selects the profile for env (see environment.Parse) and
// tags every record with service and the resolved environment name.
// Development logs text at debug level; staging and production log JSON at
// info level.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		c.env = environment.Parse(env)
		c.service = service
	}
}

// WithOutput sets the output destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithContextExtractors registers functions that add attributes taken from
// the record's context, such as the request id.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New creates a slog.Logger from opts. Without WithEnvironment it logs JSON
// at info level to stdout. The handler is wrapped with LogHandlerDecorator so
// registered context extractors run on every record.
func New(opts ...Option) *slog.Logger {
	cfg := &config{output: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	p := profile{level: slog.LevelInfo, json: true}
	if cfg.env != "" {
		p = profiles[cfg.env]
	}

	handlerOpts := &slog.HandlerOptions{Level: p.level}
	var handler slog.Handler
	if p.json {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	if cfg.env != "" {
		var attrs []slog.Attr
		if cfg.service != "" {
			attrs = append(attrs, slog.String("service", cfg.service))
		}
		attrs = append(attrs, slog.String("env", cfg.env.String()))
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}
