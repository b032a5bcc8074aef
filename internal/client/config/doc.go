// Package config loads runtime configuration for the darkworlds terminal.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with DARKWORLDS_ (see parseEnv), e.g.
//     DARKWORLDS_DATABASE_DSN. Store credentials are expected here.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   postgres DSN of the shared store
//	-l string   path of the local SQLite file
//	-n string   notification driver: postgres, redis or memory
//	-r string   redis address
//	-t int      request timeout (seconds)
//	-v string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "database_dsn": "postgres://...",
//	  "local_db_path": "local.db",
//	  "notify_driver": "redis",
//	  "redis_addr": "localhost:6379",
//	  "redis_password": "",
//	  "redis_db": 0,
//	  "request_timeout": "5s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
