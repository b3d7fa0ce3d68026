// Package middleware provides the HTTP middleware of the application.
//
// Every middleware is generic over the request context type and follows the
// same shape: a default constructor, a WithConfig constructor taking a config
// struct with an optional Skip func, and Get helpers reading what the
// middleware stored in the context.
//
//	r.Use(
//		middleware.RequestID[*web.Context](),
//		middleware.ClientIP[*web.Context](),
//		middleware.LoggingWithLogger[*web.Context](log),
//		middleware.Metrics[*web.Context](m),
//		middleware.SecurityHeadersWithConfig[*web.Context](middleware.PublishingSecurity(assets)),
//		middleware.Device[*web.Context](middleware.DeviceConfig{Thresholds: t}),
//		middleware.Theme[*web.Context](middleware.CookieThemeStore{Cookies: cookies}),
//		middleware.Load[*web.Context](sessions),
//	)
//
//	admin := r.With(middleware.RequireAuth(middleware.GuardConfig[*web.Context]{
//		Roles: []string{"admin", "editor"},
//	}))
//
// Sessions keep the content API access token in an encrypted cookie together
// with the principal, which is revalidated through the configured resolver
// once RevalidateAfter has passed.
package middleware
