// Package metrics exposes detector activity as Prometheus metrics.
//
// A Collector is passed to the parser as both its classification observer
// and its cache observer:
//
//	m := metrics.NewCollector(cfg.MetricsNamespace, nil)
//	p, err := useragent.New(
//	    useragent.WithObserver(m),
//	    useragent.WithCacheObserver(m),
//	)
//	router.Handle("/metrics", m.Handler())
//
// Metrics live on the collector's registry, never on the global default
// registry, so several collectors can coexist in tests.
package metrics
