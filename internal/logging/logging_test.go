// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"path/filepath"
	"testing"

	"github.com/meshintel/kbctl/pkg/types"
)

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(types.LoggingConfig{Level: "loud"}); err == nil {
		t.Error("expected an error for an invalid level")
	}
}

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			l, err := New(types.LoggingConfig{Level: level})
			if err != nil {
				t.Fatalf("New(%s): %v", level, err)
			}
			l.Sync()
		})
	}
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbctl.log")
	l, err := New(types.LoggingConfig{Level: "info", FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("hello")
	l.Sync()
}
