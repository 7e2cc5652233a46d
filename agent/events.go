package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/bastion/strategy"
)

// EventKind identifies something notable that happened between two turns.
type EventKind string

const (
	EventHealthLost      EventKind = "health_lost"
	EventScored          EventKind = "scored"
	EventPhaseChange     EventKind = "attack_phase_change"
	EventThreatFlagged   EventKind = "threat_flagged"
	EventSupportComplete EventKind = "support_complete"
)

// Event is found by diffing consecutive turns. Detail is for the log.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// turnSnapshot captures the diffable fields of one turn.
type turnSnapshot struct {
	health      float64
	enemyHealth float64
	phase       strategy.AttackPhase
	threat      bool
	supports    int
}

func takeSnapshot(sum Summary, st *strategy.State) turnSnapshot {
	return turnSnapshot{
		health:      sum.Health,
		enemyHealth: sum.EnemyHealth,
		phase:       st.Attack.Phase,
		threat:      st.DemolisherSeen,
		supports:    len(st.Supports),
	}
}

// detectEvents compares the current turn against the previous snapshot.
// Returns nil if prev is nil (first turn).
func detectEvents(cur turnSnapshot, turn int, prev *turnSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	if lost := prev.health - cur.health; lost > 0 {
		events = append(events, Event{
			Kind:   EventHealthLost,
			Turn:   turn,
			Detail: fmt.Sprintf("lost %.0f health (%.0f left)", lost, cur.health),
		})
	}
	if dealt := prev.enemyHealth - cur.enemyHealth; dealt > 0 {
		events = append(events, Event{
			Kind:   EventScored,
			Turn:   turn,
			Detail: fmt.Sprintf("scored %.0f (%.0f left)", dealt, cur.enemyHealth),
		})
	}
	if prev.phase != cur.phase {
		events = append(events, Event{
			Kind:   EventPhaseChange,
			Turn:   turn,
			Detail: fmt.Sprintf("%s -> %s", prev.phase, cur.phase),
		})
	}
	if !prev.threat && cur.threat {
		events = append(events, Event{
			Kind:   EventThreatFlagged,
			Turn:   turn,
			Detail: "demolisher line seen in enemy layout",
		})
	}
	full := strategy.SupportBlockSize()
	if prev.supports < full && cur.supports >= full {
		events = append(events, Event{
			Kind:   EventSupportComplete,
			Turn:   turn,
			Detail: fmt.Sprintf("%d supports placed", cur.supports),
		})
	}
	return events
}

// eventKinds renders events as a comma-separated kind list for the journal.
func eventKinds(events []Event) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, string(e.Kind))
	}
	return strings.Join(parts, ",")
}
