package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	raw, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("marshal default config: %v", err)
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if got := cfg.Shorthand(Turret); got != "DF" {
		t.Errorf("Shorthand(Turret) = %q, want DF", got)
	}
	if sp, mp := cfg.Cost(Wall); sp != 1 || mp != 0 {
		t.Errorf("Cost(Wall) = (%v, %v), want (1, 0)", sp, mp)
	}
	if sp, mp := cfg.Cost(Scout); sp != 0 || mp != 1 {
		t.Errorf("Cost(Scout) = (%v, %v), want (0, 1)", sp, mp)
	}
	sp, _, ok := cfg.UpgradeCost(Turret)
	if !ok || sp != 4 {
		t.Errorf("UpgradeCost(Turret) = (%v, %v), want (4, true)", sp, ok)
	}
	if _, _, ok := cfg.UpgradeCost(Scout); ok {
		t.Error("UpgradeCost(Scout) reported upgradable")
	}
	if got := cfg.MaxAttackRange(); got != 4.5 {
		t.Errorf("MaxAttackRange() = %v, want 4.5", got)
	}
}

func TestUpgradedOverlay(t *testing.T) {
	turret := DefaultConfig().Stats(Turret)
	up := turret.Upgraded()
	if up.AttackRange != 3.5 || up.AttackDamageWalker != 15 {
		t.Errorf("upgraded turret range=%v damage=%v", up.AttackRange, up.AttackDamageWalker)
	}
	if up.StartHealth != turret.StartHealth {
		t.Errorf("upgrade changed health %v -> %v without an override", turret.StartHealth, up.StartHealth)
	}
}

func TestShorthandFallback(t *testing.T) {
	var cfg *Config
	if got := cfg.Shorthand(Remove); got != "RM" {
		t.Errorf("nil config Shorthand(Remove) = %q, want RM", got)
	}
}

func TestParseConfig_TooFewUnits(t *testing.T) {
	_, err := ParseConfig([]byte(`{"unitInformation": [{"shorthand": "FF"}]}`))
	if err == nil || !strings.Contains(err.Error(), "unit types") {
		t.Errorf("ParseConfig error = %v, want unit type count error", err)
	}
}

func TestValidateConfig(t *testing.T) {
	raw, _ := json.Marshal(DefaultConfig())
	if err := ValidateConfig(raw); err != nil {
		t.Errorf("ValidateConfig(default): %v", err)
	}
	if err := ValidateConfig([]byte(`{"unitInformation": []}`)); err == nil {
		t.Error("ValidateConfig accepted an empty unit table")
	}
}

func TestValidateFrame(t *testing.T) {
	if err := ValidateFrame([]byte(sampleFrame)); err != nil {
		t.Errorf("ValidateFrame(sample): %v", err)
	}

	bad := []string{
		`{"turnInfo": [0], "p1Stats": [1,2,3], "p2Stats": [1,2,3]}`,
		`{"turnInfo": [0, 1], "p1Stats": [1,2], "p2Stats": [1,2,3]}`,
		`{"turnInfo": [0, 1], "p1Stats": [1,2,3], "p2Stats": [1,2,3], "p1Units": [[[1,2]]]}`,
		`[1, 2, 3]`,
	}
	for _, raw := range bad {
		if err := ValidateFrame([]byte(raw)); !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("ValidateFrame(%s) = %v, want ErrMalformedFrame", raw, err)
		}
	}
}
