// Package useragent classifies HTTP User-Agent strings with ordered rule-sets.
//
// Two classifiers are built from YAML fixtures embedded in the package:
//
//   - the browser classifier, which reports the browser name, short code,
//     version, rendering engine and engine version;
//   - the portable media player classifier, which reports brand and model
//     and only evaluates its rules when the combined expression of all of
//     them matches.
//
// Both are instances of classifier.Classifier, so the same first-match-wins
// cascade, catalog checks and engine resolution apply to each.
//
// # Usage
//
//	p, err := useragent.New(useragent.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	ua, err := p.Parse(r.UserAgent())
//	if err != nil {
//	    // ErrEmptyUserAgent, ErrUserAgentTooLong or ErrParsingFailed
//	}
//	log.Info("request", "client", ua.GetShortIdentifier())
//
// Parse at package level uses a lazily built parser over the embedded
// fixtures.
//
// # Rule files
//
// WithFS loads the fixtures from another file system, e.g. os.DirFS of a
// rules directory. The directory must contain every file in FixtureFiles;
// ValidateFixtures checks a directory without building a parser.
//
// # Caching
//
// WithCache memoizes classifications in a resultcache.Store. Results are
// keyed by classifier type and a hash of the user agent.
//
// # HTTP
//
// Middleware stores the parsed user agent in the request context, where
// FromContext retrieves it.
package useragent
