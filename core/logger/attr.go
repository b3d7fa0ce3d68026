package logger

import (
	"log/slog"
	"time"
)

// Helpers return an empty Attr for missing values, which slog drops.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error logs err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration logs a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed logs the time passed since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// RequestID logs the request ID.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr { return slog.String("path", path) }
func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }
func ClientIP(ip string) slog.Attr { return slog.String("client_ip", ip) }
func UserAgent(ua string) slog.Attr { return slog.String("user_agent", ua) }
func BytesOut(n int64) slog.Attr { return slog.Int64("bytes_out", n) }
func Component(name string) slog.Attr { return slog.String("component", name) }
func Event(name string) slog.Attr { return slog.String("event", name) }
func Action(action string) slog.Attr { return slog.String("action", action) }

// RetryCount logs the attempt number of a retried call.
func RetryCount(n int) slog.Attr {
	return slog.Int("retry_count", n)
}

// Slug logs a content slug.
func Slug(slug string) slog.Attr {
	if slug == "" {
		return slog.Attr{}
	}
	return slog.String("slug", slug)
}

// Format logs the representation chosen for the reader.
func Format(kind string) slog.Attr {
	return slog.String("format", kind)
}

// DeviceClass logs the device class a decision was made for.
func DeviceClass(class string) slog.Attr {
	return slog.String("device_class", class)
}

// UserID logs the authenticated user.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}
