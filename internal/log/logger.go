package log // import "github.com/Xunop/aldiaa/internal/log"

import (
	"fmt"
	"os"
	"strings"

	"github.com/Xunop/aldiaa/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger discards everything until NewLogger replaces it.
var Logger = zap.NewNop()

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Fallback prints msg as is. zap escapes newlines, which makes SQL unreadable.
// https://github.com/uber-go/zap/issues/963
func Fallback(level string, msg string) {
	switch level {
	case "Error":
		fmt.Fprint(os.Stderr, msg)
	case "Info":
		fmt.Fprint(os.Stdout, msg)
	case "Debug":
		if config.Opts != nil && strings.ToLower(config.Opts.LogLevel) == "debug" {
			fmt.Fprint(os.Stdout, msg)
		}
	}
}

func NewLogger() *zap.Logger {
	if config.Opts == nil {
		config.GetDefaultOptions()
	}
	rotationLog := &lumberjack.Logger{
		Filename:   config.Opts.LogFile,
		MaxSize:    config.Opts.LogFileMaxSize, // megabytes
		MaxBackups: config.Opts.LogFileMaxBackups,
		MaxAge:     config.Opts.LogFileMaxAge, // days
		Compress:   config.Opts.LogCompress,
	}

	return newZap(rotationLog, parseLevel(config.Opts.LogLevel))
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newZap(rotationLog *lumberjack.Logger, level zapcore.Level) *zap.Logger {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(encodeConfig)
	consoleEncoder := zapcore.NewConsoleEncoder(encodeConfig)

	consoleWriter := zapcore.AddSync(os.Stderr)
	rotationWrite := zapcore.AddSync(rotationLog)

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	rotationCore := zapcore.NewCore(fileEncoder, rotationWrite, level)

	core := zapcore.NewTee(consoleCore, rotationCore)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}
