package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Doctrine holds every tunable of the strategy. The zero value is not
// useful; start from DefaultDoctrine and overlay a YAML file.
type Doctrine struct {
	Name string `yaml:"name" json:"name"`

	// Seed for the random source. 0 means seed from the clock.
	Seed int64 `yaml:"seed" json:"seed"`
	// RefreshEnemySnapshot replaces the enemy snapshot on every action
	// frame instead of only the first one of the game.
	RefreshEnemySnapshot bool `yaml:"refresh_enemy_snapshot" json:"refresh_enemy_snapshot"`

	// Gates maps a defense step name to the expr condition that enables it.
	Gates map[string]string `yaml:"gates" json:"gates"`

	ThreatTrigger    string `yaml:"threat_trigger" json:"threat_trigger"`
	InterceptorCount int    `yaml:"interceptor_count" json:"interceptor_count"`

	// Defense.
	FrontRightFirstSP float64 `yaml:"front_right_first_sp" json:"front_right_first_sp"`
	WingsBothSP       float64 `yaml:"wings_both_sp" json:"wings_both_sp"`
	MidTurretSP       float64 `yaml:"mid_turret_sp" json:"mid_turret_sp"`
	MidTurretHealth   float64 `yaml:"mid_turret_health" json:"mid_turret_health"`
	SplitX            float64 `yaml:"split_x" json:"split_x"`

	// Support.
	SupportWallCap int `yaml:"support_wall_cap" json:"support_wall_cap"`

	// Offense.
	EarlyTurns    int     `yaml:"early_turns" json:"early_turns"`
	MidTurns      int     `yaml:"mid_turns" json:"mid_turns"`
	EarlyAttackMP float64 `yaml:"early_attack_mp" json:"early_attack_mp"`
	MidAttackMP   float64 `yaml:"mid_attack_mp" json:"mid_attack_mp"`
	LateAttackMP  float64 `yaml:"late_attack_mp" json:"late_attack_mp"`
	RiskCutoff    float64 `yaml:"risk_cutoff" json:"risk_cutoff"`
	UpgradedRisk  float64 `yaml:"upgraded_risk" json:"upgraded_risk"`
	BasicRisk     float64 `yaml:"basic_risk" json:"basic_risk"`
	FirstWave     int     `yaml:"first_wave" json:"first_wave"`
	CommittedWave int     `yaml:"committed_wave" json:"committed_wave"`
	LaunchWave    int     `yaml:"launch_wave" json:"launch_wave"`
	PrepTurns     int     `yaml:"prep_turns" json:"prep_turns"`
}

// DefaultDoctrine returns the baseline tuning.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:              "Bastion",
		Gates:             DefaultGates(),
		ThreatTrigger:     "Cooldown > 2 || EnemyMP > 12",
		InterceptorCount:  1,
		FrontRightFirstSP: 4,
		WingsBothSP:       9,
		MidTurretSP:       10,
		MidTurretHealth:   25,
		SplitX:            13.5,
		SupportWallCap:    8,
		EarlyTurns:        5,
		MidTurns:          10,
		EarlyAttackMP:     8,
		MidAttackMP:       13,
		LateAttackMP:      18,
		RiskCutoff:        100,
		UpgradedRisk:      20,
		BasicRisk:         6,
		FirstWave:         8,
		CommittedWave:     12,
		LaunchWave:        12,
		PrepTurns:         4,
	}
}

// DefaultGates returns the turn gates of the defense steps.
func DefaultGates() map[string]string {
	return map[string]string{
		StepTurrets:        "true",
		StepPerimeter:      "true",
		StepReinforceFront: "Turn > 1",
		StepUpgradeWalls:   "Turn > 5",
		StepWings:          "Turn > 3",
		StepReinforceMid:   "Turn > 4",
	}
}

// Validate fills missing gates and clamps numeric fields to usable ranges.
func (d *Doctrine) Validate() {
	if d.Gates == nil {
		d.Gates = make(map[string]string)
	}
	for step, src := range DefaultGates() {
		if d.Gates[step] == "" {
			d.Gates[step] = src
		}
	}
	if d.ThreatTrigger == "" {
		d.ThreatTrigger = DefaultDoctrine().ThreatTrigger
	}
	d.InterceptorCount = clampInt(d.InterceptorCount, 1, 10)
	d.SplitX = clamp(d.SplitX, 0, 27)
	d.SupportWallCap = clampInt(d.SupportWallCap, 0, 8)
	d.EarlyTurns = clampInt(d.EarlyTurns, 0, 100)
	d.MidTurns = clampInt(d.MidTurns, d.EarlyTurns, 100)
	d.EarlyAttackMP = clamp(d.EarlyAttackMP, 1, 100)
	d.MidAttackMP = clamp(d.MidAttackMP, 1, 100)
	d.LateAttackMP = clamp(d.LateAttackMP, 1, 100)
	d.RiskCutoff = clamp(d.RiskCutoff, 0, 10000)
	d.UpgradedRisk = clamp(d.UpgradedRisk, 0, 1000)
	d.BasicRisk = clamp(d.BasicRisk, 0, 1000)
	d.FirstWave = clampInt(d.FirstWave, 1, 100)
	d.CommittedWave = clampInt(d.CommittedWave, 1, 100)
	d.LaunchWave = clampInt(d.LaunchWave, 1, 100)
	d.PrepTurns = clampInt(d.PrepTurns, 2, 20)
}

// LoadDoctrine overlays a YAML file on DefaultDoctrine. Fields missing from
// the file keep their default.
func LoadDoctrine(path string) (Doctrine, error) {
	d := DefaultDoctrine()
	raw, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("doctrine %s: %w", path, err)
	}
	d.Validate()
	return d, nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
