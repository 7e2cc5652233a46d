package model

import (
	"errors"
	"testing"
)

const sampleFrame = `{
  "p2Units": [[[0,14,60,"7"]],[],[[3,16,75,"8"]],[],[[14,20,5,"9"]],[],[],[[3,16,75,"8"]]],
  "turnInfo": [0, 3, -1, 1200],
  "p1Stats": [28.0, 12.5, 9.0, 1500],
  "p1Units": [[[0,13,60,"1"],[1,13,20,"2"]],[],[[23,11,75,"3"]],[],[],[],[[1,13,20,"2"]],[[23,11,75,"3"]]],
  "p2Stats": [30.0, 20.0, 4.0, 1800],
  "events": {
    "breach": [[[13,0], 1, 3, "40", 2], [[14,27], 1, 3, 41, 1]],
    "damage": [], "move": [], "spawn": [], "death": [], "attack": [], "melee": [], "shield": [], "selfDestruct": []
  }
}`

func TestParseFrame(t *testing.T) {
	fr, err := ParseFrame([]byte(sampleFrame))
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if fr.Phase() != PhaseTurn || fr.Turn() != 3 || fr.ActionFrame() != -1 {
		t.Errorf("turnInfo decoded as phase=%s turn=%d frame=%d", fr.Phase(), fr.Turn(), fr.ActionFrame())
	}

	me := fr.Stats(Self)
	if me.Health != 28 || me.SP != 12.5 || me.MP != 9 {
		t.Errorf("Stats(Self) = %+v", me)
	}
	them := fr.Stats(Opponent)
	if them.SP != 20 || them.MP != 4 {
		t.Errorf("Stats(Opponent) = %+v", them)
	}

	walls := fr.Units(Self)[Wall]
	if len(walls) != 2 || walls[1].Cell() != C(1, 13) || walls[1].Health != 20 || walls[1].ID != "2" {
		t.Errorf("self walls = %+v", walls)
	}
	if demos := fr.Units(Opponent)[Demolisher]; len(demos) != 1 || demos[0].Cell() != C(14, 20) {
		t.Errorf("opponent demolishers = %+v", demos)
	}

	if len(fr.Events.Breach) != 2 {
		t.Fatalf("got %d breaches, want 2", len(fr.Events.Breach))
	}
	b := fr.Events.Breach[0]
	if b.Cell != C(13, 0) || b.UnitType != Scout || b.ID != "40" || !b.ScoredOnUs() {
		t.Errorf("breach[0] = %+v", b)
	}
	if b := fr.Events.Breach[1]; b.ScoredOnUs() || b.ID != "41" {
		t.Errorf("breach[1] = %+v, want our own breach with numeric id", b)
	}
}

func TestParseFrame_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":        `{"turnInfo": [0,`,
		"short turnInfo":  `{"turnInfo": [0], "p1Stats": [1,2,3], "p2Stats": [1,2,3]}`,
		"missing stats":   `{"turnInfo": [0, 1], "p1Stats": [1,2,3]}`,
		"bad unit entry":  `{"turnInfo": [0, 1], "p1Stats": [1,2,3], "p2Stats": [1,2,3], "p1Units": [[[0]]]}`,
		"bad breach":      `{"turnInfo": [1, 1], "p1Stats": [1,2,3], "p2Stats": [1,2,3], "events": {"breach": [[[1,2], 1]]}}`,
		"breach location": `{"turnInfo": [1, 1], "p1Stats": [1,2,3], "p2Stats": [1,2,3], "events": {"breach": [["x", 1, 3, "1", 2]]}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFrame([]byte(raw))
			if !errors.Is(err, ErrMalformedFrame) {
				t.Errorf("ParseFrame error = %v, want ErrMalformedFrame", err)
			}
		})
	}
}

func TestUnitDamaged(t *testing.T) {
	tests := []struct {
		name string
		unit Unit
		want bool
	}{
		{"healthy wall", Unit{Type: Wall, Health: 60, MaxHealth: 60}, false},
		{"exactly three quarters", Unit{Type: Wall, Health: 45, MaxHealth: 60}, false},
		{"damaged wall", Unit{Type: Wall, Health: 44, MaxHealth: 60}, true},
		{"already removing", Unit{Type: Turret, Health: 10, MaxHealth: 75, PendingRemoval: true}, false},
		{"mobile unit", Unit{Type: Scout, Health: 1, MaxHealth: 15}, false},
	}
	for _, tc := range tests {
		if got := tc.unit.Damaged(); got != tc.want {
			t.Errorf("%s: Damaged() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
