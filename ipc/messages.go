package ipc

import (
	"encoding/json"
	"fmt"
)

// Message kinds the engine sends, one JSON document per line.
const (
	KindConfig = "config"
	KindTurn   = "turn"
	KindAction = "action"
	KindEnd    = "end"
)

// Turn phase values carried in turnInfo[0].
const (
	phaseTurn   = 0
	phaseAction = 1
	phaseEnd    = 2
)

// Message is a single line from the engine. Raw is kept undecoded so handlers
// can validate and parse it into the concrete type they need.
type Message struct {
	Kind string
	Raw  json.RawMessage
}

// probe holds just enough of a line to classify it.
type probe struct {
	UnitInformation json.RawMessage `json:"unitInformation"`
	TurnInfo        []int           `json:"turnInfo"`
}

// Classify returns the kind of a protocol line.
func Classify(line []byte) (string, error) {
	var p probe
	if err := json.Unmarshal(line, &p); err != nil {
		return "", fmt.Errorf("decode line: %w", err)
	}
	if len(p.UnitInformation) > 0 {
		return KindConfig, nil
	}
	if len(p.TurnInfo) == 0 {
		return "", fmt.Errorf("line has neither unitInformation nor turnInfo")
	}
	switch p.TurnInfo[0] {
	case phaseTurn:
		return KindTurn, nil
	case phaseAction:
		return KindAction, nil
	case phaseEnd:
		return KindEnd, nil
	}
	return "", fmt.Errorf("unknown turn phase %d", p.TurnInfo[0])
}
