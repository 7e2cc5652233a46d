package model

import (
	"encoding/json"
	"fmt"
)

// UnitUpgrade is the partial stat overlay applied when a structure is
// upgraded. Nil fields keep the base value.
type UnitUpgrade struct {
	Cost1              *float64 `json:"cost1,omitempty"`
	Cost2              *float64 `json:"cost2,omitempty"`
	StartHealth        *float64 `json:"startHealth,omitempty"`
	AttackRange        *float64 `json:"attackRange,omitempty"`
	AttackDamageWalker *float64 `json:"attackDamageWalker,omitempty"`
}

// UnitStats is one entry of the config's unitInformation table.
type UnitStats struct {
	Display            string       `json:"display"`
	Shorthand          string       `json:"shorthand"`
	Cost1              float64      `json:"cost1"` // structure points
	Cost2              float64      `json:"cost2"` // mobile points
	StartHealth        float64      `json:"startHealth"`
	AttackRange        float64      `json:"attackRange"`
	AttackDamageWalker float64      `json:"attackDamageWalker"`
	Upgrade            *UnitUpgrade `json:"upgrade,omitempty"`
}

// Upgraded returns the stats after the upgrade overlay.
func (s UnitStats) Upgraded() UnitStats {
	out := s
	out.Upgrade = nil
	if s.Upgrade == nil {
		return out
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&out.Cost1, s.Upgrade.Cost1)
	set(&out.Cost2, s.Upgrade.Cost2)
	set(&out.StartHealth, s.Upgrade.StartHealth)
	set(&out.AttackRange, s.Upgrade.AttackRange)
	set(&out.AttackDamageWalker, s.Upgrade.AttackDamageWalker)
	return out
}

// Resources holds the per-game economy constants we care about.
type Resources struct {
	StartingHP    float64 `json:"startingHP"`
	StartingCores float64 `json:"startingCores"`
	StartingBits  float64 `json:"startingBits"`
}

// Config is the game configuration sent once before the first turn. It is
// treated as an opaque lookup table keyed by unit type index.
type Config struct {
	Units     []UnitStats `json:"unitInformation"`
	Resources Resources   `json:"resources"`
}

// ParseConfig decodes the config line and checks it covers every unit type.
func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.Units) < int(Interceptor)+1 {
		return nil, fmt.Errorf("config lists %d unit types, need at least %d", len(cfg.Units), int(Interceptor)+1)
	}
	return &cfg, nil
}

// Stats returns the base stats for t, or a zero entry for unknown types.
func (c *Config) Stats(t UnitType) UnitStats {
	if c == nil || t < 0 || int(t) >= len(c.Units) {
		return UnitStats{}
	}
	return c.Units[t]
}

// Shorthand returns the wire name the engine expects for t.
func (c *Config) Shorthand(t UnitType) string {
	if s := c.Stats(t).Shorthand; s != "" {
		return s
	}
	if t >= 0 && t < unitTypeCount {
		return defaultShorthands[t]
	}
	return ""
}

// Cost returns the (SP, MP) price of placing t.
func (c *Config) Cost(t UnitType) (sp, mp float64) {
	s := c.Stats(t)
	return s.Cost1, s.Cost2
}

// UpgradeCost returns the (SP, MP) price of upgrading t. ok is false when
// the type cannot be upgraded.
func (c *Config) UpgradeCost(t UnitType) (sp, mp float64, ok bool) {
	s := c.Stats(t)
	if s.Upgrade == nil {
		return 0, 0, false
	}
	u := s.Upgraded()
	return u.Cost1, u.Cost2, true
}

// MaxAttackRange is the largest range any type reaches, upgraded or not.
func (c *Config) MaxAttackRange() float64 {
	var r float64
	if c == nil {
		return r
	}
	for _, s := range c.Units {
		r = max(r, s.AttackRange, s.Upgraded().AttackRange)
	}
	return r
}

func ptr(v float64) *float64 { return &v }

// DefaultConfig mirrors the stock game configuration. It is used by tests and
// by replay when a recording lacks its config line.
func DefaultConfig() *Config {
	return &Config{
		Units: []UnitStats{
			{Display: "Wall", Shorthand: "FF", Cost1: 1, StartHealth: 60,
				Upgrade: &UnitUpgrade{Cost1: ptr(1), StartHealth: ptr(120)}},
			{Display: "Support", Shorthand: "EF", Cost1: 4, StartHealth: 30,
				Upgrade: &UnitUpgrade{Cost1: ptr(4)}},
			{Display: "Turret", Shorthand: "DF", Cost1: 2, StartHealth: 75, AttackRange: 2.5, AttackDamageWalker: 5,
				Upgrade: &UnitUpgrade{Cost1: ptr(4), AttackRange: ptr(3.5), AttackDamageWalker: ptr(15)}},
			{Display: "Scout", Shorthand: "PI", Cost2: 1, StartHealth: 15, AttackRange: 3.5, AttackDamageWalker: 2},
			{Display: "Demolisher", Shorthand: "EI", Cost2: 3, StartHealth: 5, AttackRange: 4.5, AttackDamageWalker: 8},
			{Display: "Interceptor", Shorthand: "SI", Cost2: 1, StartHealth: 40, AttackRange: 4.5},
			{Display: "Remove", Shorthand: "RM"},
			{Display: "Upgrade", Shorthand: "UP"},
		},
		Resources: Resources{StartingHP: 30, StartingCores: 40, StartingBits: 5},
	}
}
