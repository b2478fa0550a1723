package game

import "github.com/pefman/duel-arena/internal/models"

// Combatant is the per-battle working copy of a stat block.
// CurrentHP stays within [0, HP].
type Combatant struct {
	models.CombatantStats
	CurrentHP int `json:"current_hp"`
}

// NewCombatant copies stats into a fresh working value. Negative hit points
// are clamped to zero.
func NewCombatant(stats models.CombatantStats) Combatant {
	hp := stats.HP
	if hp < 0 {
		hp = 0
	}
	return Combatant{CombatantStats: stats, CurrentHP: hp}
}

// Alive reports whether the combatant can still act.
func (c Combatant) Alive() bool { return c.CurrentHP > 0 }

// Turn records one exchange. Attacker and Defender are taken before damage
// is applied.
type Turn struct {
	Attacker    Combatant `json:"attacker"`
	Defender    Combatant `json:"defender"`
	Damage      int       `json:"damage"`
	RemainingHP int       `json:"remaining_hp"`
}

// BattleOutcome is the result of one simulation: the winner's original stats
// and the ordered turn log.
type BattleOutcome struct {
	Winner models.CombatantStats `json:"winner"`
	Turns  []Turn                `json:"turns"`
}

// Loser returns the stats of whichever of a or b did not win.
func (o BattleOutcome) Loser(a, b models.CombatantStats) models.CombatantStats {
	if o.Winner == a {
		return b
	}
	return a
}

// MaxHit returns the turn with the largest damage. Earlier turns win ties.
func (o BattleOutcome) MaxHit() (Turn, bool) {
	if len(o.Turns) == 0 {
		return Turn{}, false
	}
	best := o.Turns[0]
	for _, t := range o.Turns[1:] {
		if t.Damage > best.Damage {
			best = t
		}
	}
	return best, true
}
