// Package logger builds *slog.Logger instances and provides attribute helpers
// so log records use consistent keys across the application.
//
//	log := logger.New(
//		logger.WithDevelopment("albummanager"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//	log.InfoContext(ctx, "album added",
//		logger.Component("catalog"),
//		logger.AlbumID(album.ID.String()),
//	)
//
// The helpers are nil safe: logger.Error(nil) and logger.RequestID("") produce an
// empty attribute that slog omits from the output.
package logger
