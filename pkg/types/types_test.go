// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"
)

func TestParseTaskType(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskType
		wantErr bool
	}{
		{"summarization", TaskSummarization, false},
		{"classification", TaskClassification, false},
		{"generation", TaskGeneration, false},
		{"translation", "", true},
		{"Summarization", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTaskType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaskType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTaskType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearchOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    SearchOptions
		wantErr bool
	}{
		{"valid defaults", SearchOptions{Query: "q", Limit: 10, RelevanceThreshold: 0.5}, false},
		{"threshold zero", SearchOptions{Query: "q", Limit: 1, RelevanceThreshold: 0}, false},
		{"threshold one", SearchOptions{Query: "q", Limit: 1, RelevanceThreshold: 1}, false},
		{"empty query", SearchOptions{Limit: 10, RelevanceThreshold: 0.5}, true},
		{"zero limit", SearchOptions{Query: "q", Limit: 0, RelevanceThreshold: 0.5}, true},
		{"negative limit", SearchOptions{Query: "q", Limit: -1, RelevanceThreshold: 0.5}, true},
		{"threshold below range", SearchOptions{Query: "q", Limit: 10, RelevanceThreshold: -0.01}, true},
		{"threshold above range", SearchOptions{Query: "q", Limit: 10, RelevanceThreshold: 1.01}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlatformConfigDefaults(t *testing.T) {
	var cfg PlatformConfig
	cfg.Defaults()

	if cfg.Host != "127.0.0.1" || cfg.Port != 47335 || cfg.User != "mindsdb" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.StatementTimeout != 60*time.Second {
		t.Errorf("StatementTimeout = %v", cfg.StatementTimeout)
	}

	// Explicit values survive.
	cfg = PlatformConfig{Host: "kb.example.com", Port: 3306}
	cfg.Defaults()
	if cfg.Host != "kb.example.com" || cfg.Port != 3306 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestPollConfigDefaults(t *testing.T) {
	var cfg PollConfig
	cfg.Defaults()
	if cfg.Interval != 2*time.Second || cfg.Timeout != 2*time.Minute {
		t.Errorf("defaults = %+v", cfg)
	}
}
