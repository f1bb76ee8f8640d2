package logger

import (
	"fmt"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// gormWriter forwards gorm's printf-style output to the application log.
type gormWriter struct {
	log Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug("Storage", fmt.Sprintf(format, args...), nil)
}

// NewGormLogger bridges gorm statement logging into log. SQL is traced only
// when debug is true; slow queries and errors are always reported.
func NewGormLogger(log Logger, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(gormWriter{log: log}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
