package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"", false, true},
		{"nonsense", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level)

			log.Debug().Msg("debug line")
			gotDebug := bytes.Contains(buf.Bytes(), []byte("debug line"))
			log.Info().Msg("info line")
			gotInfo := bytes.Contains(buf.Bytes(), []byte("info line"))

			if gotDebug != tt.debugSeen {
				t.Errorf("debug logged = %v, want %v", gotDebug, tt.debugSeen)
			}
			if gotInfo != tt.infoSeen {
				t.Errorf("info logged = %v, want %v", gotInfo, tt.infoSeen)
			}
		})
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	log.Info().Str("code", "ABC123").Msg("file stored")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["service"] != "relay" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["code"] != "ABC123" {
		t.Errorf("code = %v", entry["code"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}
