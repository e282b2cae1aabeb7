// Package api serves user agent classification over HTTP.
//
// Router builds a chi router around a ParserSource, so a parser that is
// rebuilt on rule changes can be served without restarting. Server runs the
// router with graceful shutdown.
//
//	p, _ := useragent.New()
//	srv := api.NewServer(api.ServerConfig{Addr: ":8080"}, log)
//	err := srv.Run(ctx, api.Router(api.RouterOptions{Parsers: api.Static(p)}))
//
// Responses use the envelope {"data": ...} or {"error": {"code", "message"}}.
// Every response carries an X-Request-ID header; RequestIDExtractor adds the
// same ID to log records.
package api
