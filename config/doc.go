// Package config loads the datatable configuration with Viper: YAML, JSON
// or TOML files, environment overrides and hot reloading.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("./datatable.yaml")
//
// An empty path searches datatable.{yaml,json,toml} in ., ~/.datatable and
// /etc/datatable; when no file exists the defaults apply.
//
// # Configuration Format
//
//	app_name: datatable
//	run_mode: debug
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	  router: gin          # or mux
//	  path: /api/users
//	  per_page: 10
//	table:
//	  route: users.index
//	  debounce_wait: 300ms
//	  default_sort_field: name
//	  default_sort_direction: asc
//	navigator:
//	  base_url: http://127.0.0.1:8080
//	  timeout: 10s
//	  retry_max: 0
//	  breaker: true
//	logger:
//	  level: 4
//	  format: json
//	  output: stdout
//	observes:
//	  tracer:
//	    endpoint: localhost:4317
//
// # Environment Variables
//
// Every key can be overridden with the DATATABLE_ prefix and underscores:
//
//	export DATATABLE_SERVER_PORT=9000
//	export DATATABLE_TABLE_DEBOUNCE_WAIT=500ms
//
// # Hot Reloading
//
//	cfg.Watch(func(next *config.Config) {
//	    logger.Infof(ctx, "configuration reloaded")
//	})
//
// Unset keys fall back to the defaults listed above.
package config
