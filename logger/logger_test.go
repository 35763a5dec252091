package logger

import "testing"

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected console, got %s", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("timestamps should default on")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stderr"}, false},
		{"bad level", Config{Level: "verbose", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "syslog"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestFields_PairsAndOddInput(t *testing.T) {
	m := Fields("op", "login", "count", 3)
	if m["op"] != "login" || m["count"] != 3 {
		t.Errorf("unexpected fields: %v", m)
	}
	if m := Fields("dangling"); len(m) != 0 {
		t.Errorf("odd input should drop the dangling key, got %v", m)
	}
}

func TestWithComponent_DoesNotMutateParent(t *testing.T) {
	parent := NewDefault("test")
	child := parent.WithComponent("session")
	if parent == child {
		t.Error("WithComponent must return a new logger")
	}
}
