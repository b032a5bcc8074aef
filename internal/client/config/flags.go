package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/darkworlds/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   postgres DSN
//	-l string   local SQLite file
//	-n string   notification driver
//	-r string   redis address
//	-t int      request timeout in seconds
//	-v string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"d", "l", "n", "r", "t", "v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN of the shared store")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "path of the local SQLite file")
	fs.StringVar(&cfg.NotifyDriver, "n", cfg.NotifyDriver, "notification driver (postgres, redis, memory)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -t overrides; the default would truncate sub-second values.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
