package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. DARKWORLDS_LOG_LEVEL.
const EnvPrefix = "DARKWORLDS"

const (
	keyDatabaseDSN    = "database_dsn"
	keyLocalDBPath    = "local_db_path"
	keyNotifyDriver   = "notify_driver"
	keyRedisAddr      = "redis_addr"
	keyRedisPassword  = "redis_password"
	keyRedisDB        = "redis_db"
	keyRequestTimeout = "request_timeout"
	keyLogLevel       = "log_level"
	keyLogFormat      = "log_format"
)

// parseEnv overlays Config with DARKWORLDS_* environment variables. Unset or
// empty variables leave the current value alone. request_timeout accepts a
// duration string ("5s").
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	strs := map[string]*string{
		keyDatabaseDSN:   &cfg.DatabaseDSN,
		keyLocalDBPath:   &cfg.LocalDBPath,
		keyNotifyDriver:  &cfg.NotifyDriver,
		keyRedisAddr:     &cfg.RedisAddr,
		keyRedisPassword: &cfg.RedisPassword,
		keyLogLevel:      &cfg.LogLevel,
		keyLogFormat:     &cfg.LogFormat,
	}
	for key, dst := range strs {
		_ = v.BindEnv(key)
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	_ = v.BindEnv(keyRedisDB)
	if v.IsSet(keyRedisDB) {
		cfg.RedisDB = v.GetInt(keyRedisDB)
	}
	_ = v.BindEnv(keyRequestTimeout)
	if v.IsSet(keyRequestTimeout) {
		if d := v.GetDuration(keyRequestTimeout); d > 0 {
			cfg.RequestTimeout = d
		}
	}
}
