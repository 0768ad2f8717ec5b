package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewZapLogger builds an ILogger backed by zap, writing structured JSON
// through a size-based rotating file sink (lumberjack). It plugs into
// SetLogger the same way any other ILogger does, for callers that want
// production-grade logging instead of the default console writer.
func NewZapLogger(logPath string, level Level) ILogger {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		zapLevel(level),
	)
	return &zapLogger{base: zap.New(core), level: level}
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// zapLogger adapts *zap.Logger to ILogger.
type zapLogger struct {
	base  *zap.Logger
	level Level
}

func (l *zapLogger) Debug() IEvent { return &zapEvent{log: l.base.Debug} }
func (l *zapLogger) Info() IEvent  { return &zapEvent{log: l.base.Info} }
func (l *zapLogger) Warn() IEvent  { return &zapEvent{log: l.base.Warn} }
func (l *zapLogger) Error() IEvent { return &zapEvent{log: l.base.Error} }
func (l *zapLogger) Fatal() IEvent { return &zapEvent{log: l.base.Fatal} }

// SetLevel records level for GetLevel. The zap core keeps filtering at
// the level passed to NewZapLogger.
func (l *zapLogger) SetLevel(level Level) { l.level = level }
func (l *zapLogger) GetLevel() Level      { return l.level }

// zapEvent adapts a zap level-logging func to IEvent.
type zapEvent struct {
	log func(msg string, fields ...zap.Field)
	err error
}

func (e *zapEvent) Err(err error) IEvent {
	e.err = err
	return e
}

func (e *zapEvent) Msg(msg string) {
	if e.err != nil {
		e.log(msg, zap.Error(e.err))
		return
	}
	e.log(msg)
}

func (e *zapEvent) Msgf(format string, v ...interface{}) {
	e.Msg(fmt.Sprintf(format, v...))
}
