package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewSetsLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, test := range tests {
		t.Run(test.level, func(t *testing.T) {
			log := New(test.level)
			if log.GetLevel() != test.want {
				t.Errorf("New(%q) level = %v, want %v", test.level, log.GetLevel(), test.want)
			}
		})
	}
}

func TestNewUsesJSONFormatter(t *testing.T) {
	log := New("info")
	if _, isJSON := log.Formatter.(*logrus.JSONFormatter); !isJSON {
		t.Errorf("Expected JSON formatter, got %T", log.Formatter)
	}
}
