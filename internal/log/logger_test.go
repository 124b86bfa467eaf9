package log

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Test the log rotation, the log file should be rotated when it reaches the maximum size
func TestLogRotation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "foobar.log")

	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     1, // days
	}
	defer rotationLog.Close()
	logger := newZap(rotationLog, zapcore.InfoLevel)
	defer logger.Sync()
	oneMegabyte := 1024 * 1024
	// Write 1MiB of data
	// should create a new file
	rotationLog.Write(make([]byte, oneMegabyte))
	logger.Info("This log should be in a new file")
	fileInfo, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Size() > int64(oneMegabyte) {
		t.Fatalf("File size %d is greater than expected %d", fileInfo.Size(), oneMegabyte)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
