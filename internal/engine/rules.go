package engine

// MinDamage is the floor applied to every hit so a battle always progresses.
const MinDamage = 1

// Damage returns the damage an attack stat deals against a defense stat.
func Damage(attack, defense int) int {
	d := attack - defense
	if d < MinDamage {
		return MinDamage
	}
	return d
}

// ApplyDamage subtracts dmg from hp without going below zero.
func ApplyDamage(hp, dmg int) int {
	hp -= dmg
	if hp < 0 {
		return 0
	}
	return hp
}

// FirstStrike reports whether the first-supplied side (speed/attack A) strikes
// before side B. Speed decides, then attack, then A keeps the initiative.
func FirstStrike(speedA, attackA, speedB, attackB int) bool {
	switch {
	case speedA != speedB:
		return speedA > speedB
	case attackA != attackB:
		return attackA > attackB
	default:
		return true
	}
}
