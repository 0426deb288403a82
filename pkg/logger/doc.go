// Package logger builds *slog.Logger values with functional options and
// keeps attribute keys consistent across the module.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// result in a ContextHandler that pulls request-scoped values, such as the
// request id, out of the context on every call:
//
//	log := logger.New(
//	    logger.FromSettings(config.Current(), "restkit"),
//	    logger.WithContextExtractors(handler.RequestIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "list served",
//	    logger.Schema("ArticleSerializer"),
//	    logger.Page(2),
//	    logger.Duration(time.Since(start)),
//	)
//
// WithEnvironment selects debug-level text output in development and
// info-level JSON in staging and production.
//
// Attribute helpers that take optional values (Error, Errors, RequestID)
// return an empty slog.Attr, which handlers drop, when there is nothing to
// record.
package logger
