// Package logger builds the *slog.Logger used across the detector and
// provides attribute helpers that keep key names consistent.
//
// New takes functional options for format (json or text), level, output,
// static attributes and context extractors. Extractors run on every record
// and let request-scoped values, such as the request id set by the HTTP
// API, show up without passing them by hand:
//
//	log := logger.New(
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithFormat(logger.Format(cfg.LogFormat)),
//		logger.WithService("uadetect"),
//		logger.WithContextExtractors(api.RequestIDExtractor),
//	)
//	log.Error("matched name is not in the catalog",
//		logger.Classifier("browser"),
//		logger.UserAgent(ua),
//		logger.Error(err),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally. Invalid formats and level names panic in New's
// options: a misconfigured logger should stop startup.
package logger
