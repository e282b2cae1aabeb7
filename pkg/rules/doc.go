// Package rules holds the ordered rule-sets evaluated by the cascade and
// decodes them from YAML.
//
// A rule-set is a list; the position of an entry is its precedence and is
// fixed at load time:
//
//	# browsers.yml
//	- regex: 'Edg(?:e|A|iOS)?/(\d+[\.\d]+)'
//	  name: 'Microsoft Edge'
//	  version: '$1'
//	  engine:
//	    default: 'Edge'
//	    versions:
//	      79: 'Blink'
//
// The engine block is decoded once into an EngineSpec. Version overrides keep
// the order in which they are written in the file.
//
// Loading fails fast: a rule-set with a missing expression, a missing name, an
// uncompilable expression or a malformed engine block is rejected as a whole,
// with the index of the offending entry in the error.
package rules
