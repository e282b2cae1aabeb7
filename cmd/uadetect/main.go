// Command uadetect classifies user-agent strings.
//
// Usage:
//
//	# Classify arguments, or one user agent per stdin line
//	uadetect classify "Mozilla/5.0 ... Chrome/91.0.4472.124 Safari/537.36"
//	cat access.log.ua | uadetect classify
//
//	# Check a rules directory before deploying it
//	uadetect validate --rules ./rules
//
//	# Serve the HTTP API, reloading rules on change
//	uadetect serve --addr :8080 --rules ./rules --watch
//
// Settings are read from DETECTOR_* environment variables and optional
// .env files; flags override them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
