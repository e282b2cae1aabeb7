// Package config loads the detector configuration from the environment.
//
// Values come from DETECTOR_ prefixed variables, optionally seeded from
// .env files read with github.com/joho/godotenv, and are parsed with
// github.com/caarlos0/env/v11. Variables already present in the process
// environment win over the files.
//
//	DETECTOR_RULES_DIR            rules directory, embedded fixtures when empty
//	DETECTOR_MAX_UA_LENGTH        longest accepted user agent (2048)
//	DETECTOR_VERSION_TRUNCATION   version parts kept, 0 keeps all (0)
//	DETECTOR_CACHE_SIZE           memory store capacity, 0 disables it (10000)
//	DETECTOR_CACHE_TTL            memory and Redis entry lifetime (24h)
//	DETECTOR_REDIS_URL            Redis store, disabled when empty
//	DETECTOR_LOG_LEVEL            debug, info, warn or error (info)
//	DETECTOR_LOG_FORMAT           json or text (json)
//	DETECTOR_WATCH_RULES          reload RULES_DIR on change (false)
//	DETECTOR_HTTP_ADDR            serve listen address (:8080)
//	DETECTOR_METRICS_NAMESPACE    Prometheus namespace (uadetect)
//
// # Usage
//
//	cfg := config.MustLoad()
//	log := logger.New(cfg.LoggerOptions()...)
//
// Load validates the result; Validate can be called again after a Config is
// modified in code.
package config
