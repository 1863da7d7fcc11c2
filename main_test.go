package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catidle/internal/pet"
)

// runCLI executes the root command with args and returns what it printed
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatusWithoutSave(t *testing.T) {
	save := filepath.Join(t.TempDir(), "save.json")

	out, err := runCLI(t, "--save", save, "status")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "No saved cat yet") {
		t.Errorf("Expected the no-save notice, got %q", out)
	}
}

func TestResetThenStatus(t *testing.T) {
	save := filepath.Join(t.TempDir(), "nested", "save.json")

	out, err := runCLI(t, "--save", save, "reset")
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !strings.Contains(out, "fresh cat") {
		t.Errorf("Expected reset confirmation, got %q", out)
	}

	data, err := os.ReadFile(save)
	if err != nil {
		t.Fatalf("Expected save file to exist: %v", err)
	}
	rec, err := pet.DecodeRecord(data)
	if err != nil {
		t.Fatalf("Failed to decode save: %v", err)
	}
	def := pet.DefaultConfig()
	if rec.State.Hunger != def.Defaults.Hunger || rec.State.Coins != def.Defaults.Coins {
		t.Errorf("Expected default stats, got hunger %d coins %d", rec.State.Hunger, rec.State.Coins)
	}
	if rec.State.GameOver {
		t.Error("Expected a fresh save to be alive")
	}

	out, err = runCLI(t, "--save", save, "status")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	for _, want := range []string{"Hunger", "Thirst", "Fun", "coins", "Alive"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected status to contain %q, got:\n%s", want, out)
		}
	}
}

func TestResetWipe(t *testing.T) {
	save := filepath.Join(t.TempDir(), "save.json")

	if _, err := runCLI(t, "--save", save, "reset"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	out, err := runCLI(t, "--save", save, "reset", "--wipe")
	if err != nil {
		t.Fatalf("Wipe failed: %v", err)
	}
	if !strings.Contains(out, "Save deleted") {
		t.Errorf("Expected wipe confirmation, got %q", out)
	}
	if _, err := os.Stat(save); !os.IsNotExist(err) {
		t.Errorf("Expected save file to be removed, stat returned %v", err)
	}
}

func TestStatusCorruptSave(t *testing.T) {
	save := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(save, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--save", save, "status"); err == nil {
		t.Error("Expected an error for a corrupt save")
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "catidle.yaml")
	if err := os.WriteFile(cfgPath, []byte("actions:\n  feedAmount: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{"yaml", "yaml", []string{"feedAmount: 30", "waterAmount: 25"}},
		{"toml", "toml", []string{"feedAmount = 30", "waterAmount = 25"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "--config", cfgPath, "config", "--format", tt.format)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestConfigCommandRejectsFormat(t *testing.T) {
	if _, err := runCLI(t, "config", "--format", "ini"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestLoadConfigFallsBack(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("actions: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	configPath = bad
	defer func() { configPath = "" }()

	cfg := loadConfig()
	if cfg.Actions.FeedAmount != pet.DefaultConfig().Actions.FeedAmount {
		t.Errorf("Expected default feed amount, got %d", cfg.Actions.FeedAmount)
	}
}
