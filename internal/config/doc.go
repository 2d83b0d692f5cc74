// Package config loads and validates nightking's configuration.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. built-in defaults (GetDefaultConfig)
//  2. a YAML file, either given with --config or ~/.config/nightking/config.yaml
//  3. NIGHTKING_* environment variables (NIGHTKING_PROJECT, NIGHTKING_LOG_LEVEL, ...)
//  4. command line flags
//
// Example config.yaml:
//
//	project: my-project
//	subscription: night-king-preempt
//	pollInterval: 30s
//	maxWait: 0s
//	credentialsFile: /etc/nightking/sa.json
//	shutdownGrace: 60s
//	receive:
//	  maxOutstanding: 10
//	  goroutines: 1
//	metrics:
//	  address: ":9090"
//	log:
//	  level: info
//	  format: json
//
// Only the project is required. An empty metrics address disables the
// metrics endpoint, and a zero maxWait waits on stopping instances forever.
package config
