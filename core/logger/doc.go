// Package logger builds slog loggers and provides attribute helpers.
//
// Loggers are assembled from options:
//
//	log := logger.New(
//		logger.WithProduction("panelhouse"),
//		logger.WithFileOutput("/var/log/panelhouse.log", 50, 5),
//		logger.WithContextExtractors(middleware.RequestIDLogExtractor),
//	)
//
//	log.Info("format selected",
//		logger.Slug(slug),
//		logger.Format("pdf"),
//		logger.DeviceClass("desktop"),
//	)
//
// Attribute helpers return an empty slog.Attr for missing values, so
// logger.Error(nil) is safe and produces no field.
package logger
