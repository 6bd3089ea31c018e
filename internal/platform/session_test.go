// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"testing"

	"github.com/meshintel/kbctl/pkg/types"
)

func TestBuildDSN(t *testing.T) {
	cfg := types.PlatformConfig{
		Host:   "kb.example.com",
		Port:   47335,
		User:   "mindsdb",
		APIKey: "mk_abc123",
	}
	got := BuildDSN(cfg)
	want := "mindsdb:mk_abc123@tcp(kb.example.com:47335)/?parseTime=true&timeout=10s"
	if got != want {
		t.Errorf("BuildDSN() = %q, want %q", got, want)
	}
}
