package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"not-a-level", logrus.InfoLevel},
	}

	for _, test := range tests {
		log, err := New(Config{Level: test.level, Output: "stdout"})
		if err != nil {
			t.Fatalf("new(%v): %v", test.level, err)
		}
		if log.GetLevel() != test.want {
			t.Errorf("new(%v): level = %v, want %v", test.level,
				log.GetLevel(), test.want)
		}
	}
}

func TestNewFormat(t *testing.T) {
	log, err := New(Config{Level: "info", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("format json: got formatter %T", log.Formatter)
	}

	log, err = New(Config{Level: "info", Format: "text"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := log.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("format text: got formatter %T", log.Formatter)
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.log")

	log, err := New(Config{Level: "info", Format: "text", Output: path})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("episode finished")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected log file to contain the logged entry")
	}
}

func TestNewBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "train.log")
	if _, err := New(Config{Output: path}); err == nil {
		t.Error("expected an error when the log file cannot be opened")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Error("orDiscard(nil) should return a usable logger")
	}

	log := logrus.New()
	if OrDiscard(log) != log {
		t.Error("orDiscard should return a non-nil logger unchanged")
	}
}
