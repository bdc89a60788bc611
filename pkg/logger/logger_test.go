package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		logFile string
		wantErr bool
	}{
		{name: "debug level, no file", level: "debug", logFile: ""},
		{name: "info level, no file", level: "info", logFile: ""},
		{name: "warn level, no file", level: "warn", logFile: ""},
		{name: "error level, no file", level: "error", logFile: ""},
		{name: "unknown level falls back to info", level: "chatty", logFile: ""},
		{name: "with log file", level: "info", logFile: filepath.Join(os.TempDir(), "media-api-test.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Log = nil

			err := Init(tt.level, tt.logFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("Init() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && Log == nil {
				t.Error("Init() succeeded but Log is nil")
			}

			if Log != nil {
				_ = Log.Sync()
			}
			if tt.logFile != "" {
				_ = os.Remove(tt.logFile)
			}
		})
	}
}

func TestInitWritesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	if err := Init("info", logFile); err != nil {
		t.Fatalf("Init() with log file failed: %v", err)
	}

	Log.Info("test message")
	// Sync may return errors for stdout on some systems
	_ = Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestSync(t *testing.T) {
	Log, _ = zap.NewDevelopment()
	_ = Sync()

	Log = nil
	if err := Sync(); err != nil {
		t.Errorf("Sync() with nil logger returned %v, want nil", err)
	}
}
