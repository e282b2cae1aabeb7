package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/devicedetector/pkg/api"
	"github.com/dmitrymomot/devicedetector/pkg/config"
	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/metrics"
	"github.com/dmitrymomot/devicedetector/pkg/resultcache"
	"github.com/dmitrymomot/devicedetector/pkg/rulewatch"
	"github.com/dmitrymomot/devicedetector/pkg/useragent"
)

// app holds the parser and everything it is wired to.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Collector
	redis   *redis.Client
	parsers *rulewatch.Holder[useragent.Parser]
}

func newApp(ctx context.Context, cfg config.Config, logOut io.Writer) (*app, error) {
	opts := append(cfg.LoggerOptions(),
		logger.WithOutput(logOut),
		logger.WithService("uadetect"),
		logger.WithContextExtractors(api.RequestIDExtractor),
	)
	a := &app{
		cfg:     cfg,
		log:     logger.New(opts...),
		metrics: metrics.NewCollector(cfg.MetricsNamespace, nil),
	}

	if cfg.Redis.ConnectionURL != "" {
		client, err := resultcache.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = client
	}

	parsers, err := rulewatch.NewHolder(a.buildParser)
	if err != nil {
		a.close()
		return nil, err
	}
	a.parsers = parsers
	return a, nil
}

// buildParser loads the rules and builds a parser over a fresh cache, so
// results of replaced rules are not served from memory.
func (a *app) buildParser() (*useragent.Parser, error) {
	opts := []useragent.Option{
		useragent.WithLogger(a.log),
		useragent.WithMaxLength(a.cfg.MaxUALength),
		useragent.WithVersionTruncation(a.cfg.VersionTruncation),
		useragent.WithObserver(a.metrics),
	}
	if fsys := a.rules(); fsys != nil {
		opts = append(opts, useragent.WithFS(fsys))
	}
	if store := a.store(); store != nil {
		opts = append(opts, useragent.WithCache(store), useragent.WithCacheObserver(a.metrics))
	}

	p, err := useragent.New(opts...)
	if err != nil {
		return nil, err
	}
	a.metrics.SetRules(useragent.TypeBrowser, p.Browser().RuleCount())
	a.metrics.SetRules(useragent.TypePortableMediaPlayer, p.PortableMediaPlayer().RuleCount())
	return p, nil
}

func (a *app) rules() fs.FS {
	if a.cfg.RulesDir == "" {
		return nil
	}
	return os.DirFS(a.cfg.RulesDir)
}

func (a *app) store() resultcache.Store {
	switch {
	case a.redis != nil:
		return resultcache.NewRedisStore(a.redis,
			resultcache.WithKeyPrefix(a.cfg.Redis.KeyPrefix),
			resultcache.WithExpiration(a.cfg.CacheTTL),
		)
	case a.cfg.CacheSize > 0:
		return resultcache.NewMemoryStore(a.cfg.CacheSize, resultcache.WithTTL(a.cfg.CacheTTL))
	default:
		return nil
	}
}

// parser returns the current parser.
func (a *app) parser() *useragent.Parser { return a.parsers.Load() }

// watch reloads the parser whenever the rules directory changes, until ctx
// is done.
func (a *app) watch(ctx context.Context) error {
	if a.cfg.RulesDir == "" {
		return errors.New("watching rules requires a rules directory")
	}
	w, err := rulewatch.New(a.cfg.RulesDir,
		rulewatch.WithLogger(a.log),
		rulewatch.WithReloadObserver(a.metrics.ObserveReload),
	)
	if err != nil {
		return err
	}
	return w.Watch(ctx, a.parsers.Reload)
}

// checks returns the readiness checks of the shared cache.
func (a *app) checks() []func(context.Context) error {
	if a.redis == nil {
		return nil
	}
	return []func(context.Context) error{resultcache.Healthcheck(a.redis)}
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis client", logger.Error(err))
		}
	}
}
