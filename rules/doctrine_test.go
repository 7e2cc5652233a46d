package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.5, 0, 1, 0.0},
		{1.5, 0, 1, 1.0},
		{0.0, 0, 1, 0.0},
		{1.0, 0, 1, 1.0},
	}
	for _, tc := range tests {
		got := clamp(tc.v, tc.min, tc.max)
		if got != tc.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tc.v, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestDefaultDoctrine(t *testing.T) {
	d := DefaultDoctrine()
	if d.EarlyAttackMP != 8 || d.MidAttackMP != 13 || d.LateAttackMP != 18 {
		t.Errorf("attack thresholds = %v/%v/%v, want 8/13/18", d.EarlyAttackMP, d.MidAttackMP, d.LateAttackMP)
	}
	if d.UpgradedRisk != 20 || d.BasicRisk != 6 {
		t.Errorf("risk weights = %v/%v, want 20/6", d.UpgradedRisk, d.BasicRisk)
	}
	if d.RefreshEnemySnapshot {
		t.Error("DefaultDoctrine refreshes the enemy snapshot")
	}
	if d.Gates[StepUpgradeWalls] != "Turn > 5" {
		t.Errorf("upgrade gate = %q, want %q", d.Gates[StepUpgradeWalls], "Turn > 5")
	}
}

func TestValidate(t *testing.T) {
	d := Doctrine{
		InterceptorCount: 0,
		SplitX:           40,
		SupportWallCap:   20,
		EarlyTurns:       8,
		MidTurns:         3,
		PrepTurns:        1,
		FirstWave:        -2,
	}
	d.Validate()

	if d.InterceptorCount != 1 {
		t.Errorf("InterceptorCount = %d, want 1", d.InterceptorCount)
	}
	if d.SplitX != 27 {
		t.Errorf("SplitX = %v, want 27", d.SplitX)
	}
	if d.SupportWallCap != 8 {
		t.Errorf("SupportWallCap = %d, want 8", d.SupportWallCap)
	}
	if d.MidTurns != 8 {
		t.Errorf("MidTurns = %d, want it raised to EarlyTurns (8)", d.MidTurns)
	}
	if d.PrepTurns != 2 {
		t.Errorf("PrepTurns = %d, want 2", d.PrepTurns)
	}
	if d.FirstWave != 1 {
		t.Errorf("FirstWave = %d, want 1", d.FirstWave)
	}
	if len(d.Gates) != len(DefaultGates()) || d.ThreatTrigger == "" {
		t.Errorf("Validate did not fill gates: %v trigger=%q", d.Gates, d.ThreatTrigger)
	}
}

func TestLoadDoctrine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctrine.yaml")
	src := `name: aggressive
seed: 42
refresh_enemy_snapshot: true
risk_cutoff: 60
gates:
  wings: "Turn > 1"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write doctrine: %v", err)
	}
	d, err := LoadDoctrine(path)
	if err != nil {
		t.Fatalf("LoadDoctrine: %v", err)
	}
	if d.Name != "aggressive" || d.Seed != 42 || !d.RefreshEnemySnapshot || d.RiskCutoff != 60 {
		t.Errorf("loaded %+v", d)
	}
	if d.Gates[StepWings] != "Turn > 1" {
		t.Errorf("wings gate = %q, want override", d.Gates[StepWings])
	}
	if d.Gates[StepReinforceMid] != "Turn > 4" {
		t.Errorf("reinforce_mid gate = %q, want default kept", d.Gates[StepReinforceMid])
	}
	if d.LaunchWave != 12 {
		t.Errorf("LaunchWave = %d, want default 12", d.LaunchWave)
	}
}

func TestLoadDoctrineErrors(t *testing.T) {
	if _, err := LoadDoctrine(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadDoctrine of a missing file succeeded")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("gates: [1, 2"), 0o644)
	if _, err := LoadDoctrine(path); err == nil {
		t.Error("LoadDoctrine of invalid yaml succeeded")
	}
}
