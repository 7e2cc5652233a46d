package rules

// Env is what gate expressions see: the turn number, both sides' balances
// and a few aggregates kept by the strategy.
type Env struct {
	Turn        int
	SP          float64
	MP          float64
	Health      float64
	EnemySP     float64
	EnemyMP     float64
	EnemyHealth float64

	// Turns since the last interceptor deployment.
	Cooldown int
	// Opponent breaches recorded this game and their mean x.
	Breaches   int
	BreachAvgX float64
	// Mean x of our damaged structures this turn.
	DamagedAvgX float64

	AttackPhase string
	Threat      bool
}

// Losing reports whether we have less health left than the opponent.
func (e Env) Losing() bool { return e.Health < e.EnemyHealth }

func (e Env) CanAfford(sp float64) bool { return e.SP >= sp }

// BreachedRight reports whether breaches so far lean to the right half.
func (e Env) BreachedRight() bool { return e.Breaches > 0 && e.BreachAvgX > 13.5 }
