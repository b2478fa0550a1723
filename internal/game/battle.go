package game

import (
	"github.com/pefman/duel-arena/internal/engine"
	"github.com/pefman/duel-arena/internal/models"
)

// Simulate resolves a battle between a and b. The result depends only on the
// inputs: no randomness, no I/O, and a and b are left untouched.
func Simulate(a, b models.CombatantStats) BattleOutcome {
	ca, cb := NewCombatant(a), NewCombatant(b)

	// Turn order is fixed once; roles then alternate.
	att, def := &ca, &cb
	if !engine.FirstStrike(a.Speed, a.Attack, b.Speed, b.Attack) {
		att, def = &cb, &ca
	}
	first := att

	// Each turn removes at least one hit point from someone.
	turns := make([]Turn, 0, turnCapacity(ca.CurrentHP, cb.CurrentHP))
	for att.Alive() && def.Alive() {
		dmg := engine.Damage(att.Attack, def.Defense)
		turn := Turn{Attacker: *att, Defender: *def, Damage: dmg}
		def.CurrentHP = engine.ApplyDamage(def.CurrentHP, dmg)
		turn.RemainingHP = def.CurrentHP
		turns = append(turns, turn)
		if !def.Alive() {
			break
		}
		att, def = def, att
	}

	var winner models.CombatantStats
	switch {
	case ca.Alive() && !cb.Alive():
		winner = a
	case cb.Alive() && !ca.Alive():
		winner = b
	case first == &ca:
		// Both entered at zero hp; nobody moved.
		winner = a
	default:
		winner = b
	}
	return BattleOutcome{Winner: winner, Turns: turns}
}

// turnCapacity estimates the turn log length for preallocation.
func turnCapacity(hpA, hpB int) int {
	n := hpA + hpB
	if n > 64 {
		return 64
	}
	if n < 1 {
		return 0
	}
	return n
}
