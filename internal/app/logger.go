package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	LoggerDev  = "dev"
	LoggerJSON = "json"
	LoggerTSKV = "tskv"
)

// NewLogHandler returns the slog handler for the given logger type. Unknown
// types fall back to the dev handler.
func NewLogHandler(loggerType string, w io.Writer) slog.Handler {
	switch strings.ToLower(loggerType) {
	case LoggerJSON:
		return slog.NewJSONHandler(w, nil)
	case LoggerTSKV:
		return NewTSKVHandler(w, nil)
	default:
		return slog.NewTextHandler(w, nil)
	}
}

// TSKVHandler writes one tab-separated key=value line per record, starting
// with level, message and time.
type TSKVHandler struct {
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	groups []string

	mu *sync.Mutex
	w  io.Writer
}

func NewTSKVHandler(w io.Writer, opts *slog.HandlerOptions) *TSKVHandler {
	h := &TSKVHandler{
		mu: &sync.Mutex{},
		w:  w,
	}
	if opts != nil {
		h.opts = *opts
	}

	return h
}

func (h *TSKVHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *TSKVHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString("level=")
	sb.WriteString(strings.ToLower(r.Level.String()))
	sb.WriteString("\tmessage=")
	sb.WriteString(escapeTSKV(r.Message))

	if !r.Time.IsZero() {
		sb.WriteString("\ttime=")
		sb.WriteString(r.Time.UTC().Format(time.RFC3339Nano))
	}

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeTSKVAttr(&sb, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		writeTSKVAttr(&sb, prefix, a)
		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *TSKVHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h

	prefix := strings.Join(h.groups, ".")
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}

	return &h2
}

func (h *TSKVHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := *h
	h2.groups = append(append([]string(nil), h.groups...), name)

	return &h2
}

func writeTSKVAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeTSKVAttr(sb, key, ga)
		}
		return
	}

	sb.WriteByte('\t')
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(escapeTSKV(tskvValue(a.Value)))
}

func tskvValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return x.Error()
		case fmt.Stringer:
			return x.String()
		case nil:
			return ""
		default:
			b, err := json.Marshal(x)
			if err != nil {
				return fmt.Sprint(x)
			}
			return string(b)
		}
	default:
		return v.String()
	}
}

var tskvReplacer = strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")

func escapeTSKV(s string) string {
	return tskvReplacer.Replace(s)
}

type contextKey string

const loggerContextKey = contextKey("logger")

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

// contextGetLogger returns the request scoped logger, or the application
// logger when the request did not pass through the logging middleware.
func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}
	return logger
}
