package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PageSize != "A4" || cfg.Serve.Port != 8888 {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
page_size: Letter
workers: 4
png:
  width: 800
serve:
  port: 9000
  advertise: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PageSize != "Letter" || cfg.Workers != 4 || cfg.PNG.Width != 800 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Serve.Port != 9000 || cfg.Serve.Advertise {
		t.Errorf("serve = %+v", cfg.Serve)
	}
	// untouched keys keep their defaults
	if cfg.PageExt != ".rm" || cfg.Serve.Service != "_rmboard._tcp" || len(cfg.PNG.Background) != 3 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "workers: [", "parse config"},
		{"zero workers", "workers: 0", "workers"},
		{"bad port", "serve:\n  port: 70000", "serve.port"},
		{"bad background", "png:\n  background: [1, 2, 1]", "png.background"},
		{"short background", "png:\n  background: [1]", "3 components"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
