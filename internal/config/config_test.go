package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with no file failed: %v", err)
	}

	if cfg.Device.Input != "default" || cfg.Device.Output != "default" {
		t.Errorf("unexpected default devices: %+v", cfg.Device)
	}
	if cfg.Gain.Input != 1 || cfg.Gain.Output != 1 {
		t.Errorf("unexpected default gains: %+v", cfg.Gain)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio-data.yaml")
	data := "device:\n  input: USB Audio\ngain:\n  output: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Device.Input != "USB Audio" {
		t.Errorf("input device not loaded: %q", cfg.Device.Input)
	}
	if cfg.Device.Output != "default" {
		t.Errorf("unset fields should keep defaults: %q", cfg.Device.Output)
	}
	if cfg.Gain.Output != 0.5 {
		t.Errorf("output gain not loaded: %v", cfg.Gain.Output)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("missing explicit config accepted")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio-data.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("malformed config accepted")
	}
}
