package logger

import (
	"log/slog"
	"strconv"
)

// maxUserAgentAttr bounds the user-agent text copied into a record.
const maxUserAgentAttr = 256

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Classifier records the classifier type under the key "classifier".
func Classifier(typ string) slog.Attr {
	return slog.String("classifier", typ)
}

// Rule records the position and expression of a rule under the key "rule".
func Rule(index int, expr string) slog.Attr {
	return Group("rule", slog.Int("index", index), slog.String("regex", expr))
}

// UserAgent records a user-agent string under the key "user_agent",
// truncated to a bounded length.
func UserAgent(ua string) slog.Attr {
	if len(ua) > maxUserAgentAttr {
		ua = ua[:maxUserAgentAttr] + "..."
	}
	return slog.String("user_agent", ua)
}

// Path records a file system path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
