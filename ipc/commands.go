package ipc

import (
	"encoding/json"
	"fmt"
)

// Command is one placement intent. The engine expects it as a positional
// [shorthand, x, y] triple.
type Command struct {
	Type string
	X    int
	Y    int
}

func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Type, c.X, c.Y})
}

func (c *Command) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("command has %d fields, want 3", len(parts))
	}
	if err := json.Unmarshal(parts[0], &c.Type); err != nil {
		return fmt.Errorf("command type: %w", err)
	}
	if err := json.Unmarshal(parts[1], &c.X); err != nil {
		return fmt.Errorf("command x: %w", err)
	}
	if err := json.Unmarshal(parts[2], &c.Y); err != nil {
		return fmt.Errorf("command y: %w", err)
	}
	return nil
}

func (c Command) String() string { return fmt.Sprintf("%s@%d,%d", c.Type, c.X, c.Y) }

// TurnCommands is everything submitted for one turn: structures, upgrades
// and removals go on the build line, mobile units on the deploy line.
type TurnCommands struct {
	Build  []Command `json:"build"`
	Deploy []Command `json:"deploy"`
}

// Count returns how many commands on either line carry the given shorthand.
func (tc TurnCommands) Count(shorthand string) int {
	n := 0
	for _, c := range tc.Build {
		if c.Type == shorthand {
			n++
		}
	}
	for _, c := range tc.Deploy {
		if c.Type == shorthand {
			n++
		}
	}
	return n
}
