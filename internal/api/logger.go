package api

import (
	"fmt"
	"log/slog"
)

// slogAdapter bridges a *slog.Logger into calculation.Logger
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Debugf(format string, args ...any) { a.logger.Debug(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Infof(format string, args ...any)  { a.logger.Info(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Warnf(format string, args ...any)  { a.logger.Warn(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Errorf(format string, args ...any) { a.logger.Error(fmt.Sprintf(format, args...)) }
