package agent

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nstehr/bastion/ipc"
	"github.com/nstehr/bastion/journal"
	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
	"github.com/nstehr/bastion/strategy"
	"github.com/nstehr/bastion/world"
)

// Journal is where the agent writes its per-game history.
type Journal interface {
	BeginGame(doctrine string, seed int64) (int64, error)
	RecordTurn(row journal.TurnRow) error
	EndGame(id int64, result string, turns int) error
}

// Summary is what one turn did.
type Summary struct {
	Turn        int
	Health      float64
	EnemyHealth float64
	SP          float64
	MP          float64
	Report      strategy.TurnReport
	Commands    ipc.TurnCommands
	Events      []Event
	Err         error
}

// Agent owns the decision-making for one match.
type Agent struct {
	Doctrine rules.Doctrine
	Engine   *strategy.Engine
	Journal  Journal

	// OnSummary, when set, sees every turn after it is submitted.
	OnSummary func(Summary)

	cfg      *model.Config
	gameID   int64
	lastTurn int
	prev     *turnSnapshot
}

func New(d rules.Doctrine, j Journal) *Agent {
	d.Validate()
	return &Agent{Doctrine: d, Journal: j}
}

// Handlers maps every message kind to its handler.
func (a *Agent) Handlers() map[string]ipc.Handler {
	return map[string]ipc.Handler{
		ipc.KindConfig: a.HandleConfig,
		ipc.KindTurn:   a.HandleTurn,
		ipc.KindAction: a.HandleActionFrame,
		ipc.KindEnd:    a.HandleEnd,
	}
}

// HandleConfig starts a new game: it decodes the unit table and builds a
// fresh engine.
func (a *Agent) HandleConfig(msg ipc.Message) (*ipc.TurnCommands, error) {
	if err := model.ValidateConfig(msg.Raw); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	cfg, err := model.ParseConfig(msg.Raw)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	eng, err := strategy.NewEngine(a.Doctrine, nil)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	a.cfg = cfg
	a.Engine = eng
	a.prev = nil
	a.lastTurn = 0

	if a.Journal != nil {
		id, err := a.Journal.BeginGame(a.Doctrine.Name, a.Doctrine.Seed)
		if err != nil {
			slog.Warn("journal unavailable for this game", "error", err)
		}
		a.gameID = id
	}

	slog.Info("game configured",
		"doctrine", a.Doctrine.Name,
		"seed", a.Doctrine.Seed,
		"game", a.gameID,
		"maxRange", cfg.MaxAttackRange(),
	)
	return nil, nil
}

// HandleTurn runs one decision pass and returns the commands to submit. A
// pass that fails still submits an empty turn so the match keeps going.
func (a *Agent) HandleTurn(msg ipc.Message) (*ipc.TurnCommands, error) {
	empty := &ipc.TurnCommands{}
	if a.Engine == nil {
		return empty, fmt.Errorf("turn frame before config")
	}
	if err := model.ValidateFrame(msg.Raw); err != nil {
		a.recordFailure(err)
		return empty, fmt.Errorf("validate frame: %w", err)
	}
	fr, err := model.ParseFrame(msg.Raw)
	if err != nil {
		a.recordFailure(err)
		return empty, fmt.Errorf("parse frame: %w", err)
	}
	view, err := world.New(a.cfg, fr)
	if err != nil {
		a.recordFailure(err)
		return empty, fmt.Errorf("build board: %w", err)
	}

	self := fr.Stats(model.Self)
	sum := Summary{
		Turn:        fr.Turn(),
		Health:      self.Health,
		EnemyHealth: fr.Stats(model.Opponent).Health,
		SP:          self.SP,
		MP:          self.MP,
	}
	a.lastTurn = sum.Turn

	rep, err := a.decide(view)
	if err != nil {
		sum.Err = err
		a.finish(sum)
		return empty, err
	}
	sum.Report = rep
	sum.Commands = view.Commands()

	cur := takeSnapshot(sum, a.Engine.State())
	sum.Events = detectEvents(cur, sum.Turn, a.prev)
	a.prev = &cur

	slog.Info("turn submitted",
		"turn", sum.Turn,
		"health", sum.Health,
		"enemyHealth", sum.EnemyHealth,
		"sp", sum.SP,
		"mp", sum.MP,
		"defense", strings.Join(rep.Defense, ","),
		"phase", rep.Phase,
		"next", rep.Next,
		"build", len(sum.Commands.Build),
		"deploy", len(sum.Commands.Deploy),
	)
	for _, e := range sum.Events {
		slog.Info("turn event", "turn", e.Turn, "kind", e.Kind, "detail", e.Detail)
	}

	a.finish(sum)
	return &sum.Commands, nil
}

// decide runs the engine and turns a panic into an error. The engine only
// commits its state when the pass returns normally.
func (a *Agent) decide(view *world.GameState) (rep strategy.TurnReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decision pass panicked: %v", r)
		}
	}()
	return a.Engine.OnTurn(view), nil
}

func (a *Agent) recordFailure(err error) {
	a.finish(Summary{Turn: a.lastTurn, Err: err})
}

func (a *Agent) finish(sum Summary) {
	if a.Journal != nil && a.gameID != 0 {
		row := journal.TurnRow{
			GameID:      a.gameID,
			Turn:        sum.Turn,
			Health:      sum.Health,
			EnemyHealth: sum.EnemyHealth,
			SP:          sum.SP,
			MP:          sum.MP,
			Phase:       sum.Report.Phase.String(),
			Build:       len(sum.Commands.Build),
			Deploy:      len(sum.Commands.Deploy),
			Defense:     strings.Join(sum.Report.Defense, ","),
			Events:      eventKinds(sum.Events),
		}
		if sum.Err != nil {
			row.Error = sum.Err.Error()
		}
		if err := a.Journal.RecordTurn(row); err != nil {
			slog.Warn("failed to journal turn", "turn", sum.Turn, "error", err)
		}
	}
	if a.OnSummary != nil {
		a.OnSummary(sum)
	}
}

// HandleActionFrame feeds breach events and the enemy layout to the engine.
func (a *Agent) HandleActionFrame(msg ipc.Message) (*ipc.TurnCommands, error) {
	if a.Engine == nil {
		return nil, fmt.Errorf("action frame before config")
	}
	fr, err := model.ParseFrame(msg.Raw)
	if err != nil {
		return nil, fmt.Errorf("parse action frame: %w", err)
	}
	a.Engine.OnActionFrame(fr)
	return nil, nil
}

// HandleEnd logs the final score and closes the journaled game.
func (a *Agent) HandleEnd(msg ipc.Message) (*ipc.TurnCommands, error) {
	fr, err := model.ParseFrame(msg.Raw)
	if err != nil {
		return nil, fmt.Errorf("parse end frame: %w", err)
	}
	self, opp := fr.Stats(model.Self), fr.Stats(model.Opponent)
	res := result(self.Health, opp.Health)
	slog.Info("game over", "result", res, "turn", fr.Turn(), "health", self.Health, "enemyHealth", opp.Health)

	if a.Journal != nil && a.gameID != 0 {
		if err := a.Journal.EndGame(a.gameID, res, fr.Turn()); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func result(health, enemyHealth float64) string {
	switch {
	case health > enemyHealth:
		return "won"
	case health < enemyHealth:
		return "lost"
	}
	return "draw"
}
