// Package config loads, defaults, and validates the folio daemon
// configuration.
//
// Configuration is a YAML file with environment variable overrides:
//
//	store:
//	  backend: file          # file | sqlite
//	  path: data/catalog.txt
//	autosave:
//	  interval: 10s
//	  schedule: ""           # optional cron expression, overrides interval
//	  save_on_stop: false
//	audit:
//	  enabled: false
//	  path: data/audit.log
//	logging:
//	  level: info            # debug | info | warn | error
//	  format: json           # json | text
//	metrics:
//	  enabled: false
//	  listen_address: 127.0.0.1:9090
//	  path: /metrics
//
// The loading sequence is: parse YAML, apply defaults, apply FOLIO_* env
// overrides, validate. Validation collects every problem into one
// ValidationError rather than stopping at the first.
//
// Watcher provides a debounced fsnotify watch on the config file so the
// daemon can react to edits (currently: live log-level changes) without a
// restart.
package config
