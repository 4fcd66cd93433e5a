package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	log *zap.SugaredLogger
}

var (
	mu        sync.RWMutex
	zapLogger = &ZapLogger{log: zap.NewNop().Sugar()}
)

// Setup replaces the package logger. Until it runs every call is a no-op,
// which keeps tests quiet.
func Setup(production bool, level string) (*ZapLogger, error) {
	var config zap.Config
	if production {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	built, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}

	l := &ZapLogger{log: built.Sugar()}
	mu.Lock()
	zapLogger = l
	mu.Unlock()
	return l, nil
}

// Use installs an already built zap logger, mainly for tests with observers.
func Use(l *zap.Logger) {
	mu.Lock()
	zapLogger = &ZapLogger{log: l.WithOptions(zap.AddCallerSkip(2)).Sugar()}
	mu.Unlock()
}

func GetLogger() *ZapLogger {
	mu.RLock()
	defer mu.RUnlock()
	return zapLogger
}

func Sync() {
	_ = GetLogger().log.Sync()
}

func Info(msg string, values ...any) {
	GetLogger().Info(msg, values...)
}

func Warn(msg string, values ...any) {
	GetLogger().Warn(msg, values...)
}

func Error(msg string, values ...any) {
	GetLogger().Error(msg, values...)
}

func Debug(msg string, values ...any) {
	GetLogger().Debug(msg, values...)
}

func Fatal(err error, values ...any) {
	GetLogger().Fatal(err, values...)
}

func (l *ZapLogger) Info(message string, values ...any) {
	l.log.Infow(message, values...)
}

func (l *ZapLogger) Warn(message string, values ...any) {
	l.log.Warnw(message, values...)
}

func (l *ZapLogger) Error(message string, values ...any) {
	l.log.Errorw(message, values...)
}

func (l *ZapLogger) Debug(message string, values ...any) {
	l.log.Debugw(message, values...)
}

func (l *ZapLogger) Fatal(err error, values ...any) {
	l.log.Fatalw(err.Error(), values...)
}
