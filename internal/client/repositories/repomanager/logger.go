package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/darkworlds/internal/logging"
	"github.com/pressly/goose/v3"
)

// migrationLogger routes goose output into the application log at debug
// level, keeping it off stdout where the terminal transcript is printed.
type migrationLogger struct {
	logger logging.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.logger.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l migrationLogger) Fatalf(format string, v ...any) {
	l.logger.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	panic(fmt.Sprintf(format, v...))
}

// SetMigrationLogger sends migration progress to logger.
func SetMigrationLogger(logger logging.Logger) {
	goose.SetLogger(migrationLogger{logger: logger})
}
