package middleware

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/pkg/device"
)

// DeviceConfig configures the device profile middleware.
type DeviceConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Thresholds classify viewport widths (default: device.DefaultThresholds())
	Thresholds device.Thresholds
	// Logger receives the resolved profile at debug level
	Logger *slog.Logger
}

// Device resolves the request's device profile and stores it in the context.
// It also asks the browser for viewport client hints on later requests.
func Device[C handler.Context](cfg DeviceConfig) handler.Middleware[C] {
	if cfg.Thresholds == (device.Thresholds{}) {
		cfg.Thresholds = device.DefaultThresholds()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()
			p := device.FromRequest(r, cfg.Thresholds)
			ctx.SetValue(deviceContextKey{}, p)

			h := ctx.ResponseWriter().Header()
			h.Set("Accept-CH", device.AcceptCH)
			h.Add("Vary", device.Vary)

			if cfg.Logger != nil {
				cfg.Logger.LogAttrs(r.Context(), slog.LevelDebug, "device profile resolved",
					logger.Component("device"),
					logger.DeviceClass(string(p.Class)),
					slog.String("source", string(p.Source)),
					slog.Int("viewport_width", p.ViewportWidth),
				)
			}

			return next(ctx)
		}
	}
}

type deviceContextKey struct{}

// GetDevice returns the profile stored by Device. Requests the middleware did
// not see get the desktop representative.
func GetDevice(ctx context.Context) device.Profile {
	if p, ok := ctx.Value(deviceContextKey{}).(device.Profile); ok {
		return p
	}
	if p, ok := device.FromContext(ctx); ok {
		return p
	}
	p := device.FromProbe(device.Representative(device.ClassDesktop), device.DefaultThresholds())
	p.Source = device.SourceDefault
	return p
}
