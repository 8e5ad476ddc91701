package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zap.DebugLevel,
		"WARN":    zap.WarnLevel,
		"warning": zap.WarnLevel,
		" error ": zap.ErrorLevel,
		"":        zap.InfoLevel,
		"verbose": zap.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in).Level(); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_LevelEnabled(t *testing.T) {
	log := New("warn", FormatConsole, zap.String("app", "barnum-api"))
	if log.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	if !log.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("error must be enabled at warn level")
	}
}
