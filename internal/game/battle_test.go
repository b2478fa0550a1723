package game

import (
	"reflect"
	"testing"

	"github.com/pefman/duel-arena/internal/models"
)

func stats(id int64, attack, defense, hp, speed int) models.CombatantStats {
	return models.CombatantStats{ID: id, Name: "c", Attack: attack, Defense: defense, HP: hp, Speed: speed}
}

func TestSimulateOneShotKill(t *testing.T) {
	t.Parallel()

	a := stats(1, 100, 10, 100, 90)
	b := stats(2, 20, 10, 30, 50)

	out := Simulate(a, b)

	if out.Winner != a {
		t.Fatalf("winner = %+v, want %+v", out.Winner, a)
	}
	if len(out.Turns) != 1 {
		t.Fatalf("turns = %d, want 1", len(out.Turns))
	}
	turn := out.Turns[0]
	if turn.Attacker.ID != 1 || turn.Defender.ID != 2 {
		t.Fatalf("attacker/defender = %d/%d, want 1/2", turn.Attacker.ID, turn.Defender.ID)
	}
	if turn.Damage != 90 {
		t.Fatalf("damage = %d, want 90", turn.Damage)
	}
	if turn.RemainingHP != 0 {
		t.Fatalf("remaining hp = %d, want 0", turn.RemainingHP)
	}
	if turn.Defender.CurrentHP != 30 {
		t.Fatalf("defender snapshot hp = %d, want pre-damage 30", turn.Defender.CurrentHP)
	}
}

func TestSimulateMinimumDamageExchange(t *testing.T) {
	t.Parallel()

	a := stats(1, 10, 50, 5, 50)
	b := stats(2, 10, 50, 5, 50)

	out := Simulate(a, b)

	if out.Winner != a {
		t.Fatalf("winner = %d, want 1", out.Winner.ID)
	}
	if len(out.Turns) != 9 {
		t.Fatalf("turns = %d, want 9", len(out.Turns))
	}
	wantRemaining := []int{4, 4, 3, 3, 2, 2, 1, 1, 0}
	for i, turn := range out.Turns {
		wantAttacker := int64(1)
		if i%2 == 1 {
			wantAttacker = 2
		}
		if turn.Attacker.ID != wantAttacker {
			t.Fatalf("turn %d attacker = %d, want %d", i+1, turn.Attacker.ID, wantAttacker)
		}
		if turn.Damage != 1 {
			t.Fatalf("turn %d damage = %d, want 1", i+1, turn.Damage)
		}
		if turn.RemainingHP != wantRemaining[i] {
			t.Fatalf("turn %d remaining = %d, want %d", i+1, turn.RemainingHP, wantRemaining[i])
		}
	}
}

func TestSimulateTurnOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		a, b      models.CombatantStats
		wantFirst int64
	}{
		{name: "higher speed", a: stats(1, 10, 0, 50, 10), b: stats(2, 10, 0, 50, 20), wantFirst: 2},
		{name: "speed tie, higher attack", a: stats(1, 15, 0, 50, 20), b: stats(2, 10, 0, 50, 20), wantFirst: 1},
		{name: "speed tie, attack tie", a: stats(1, 10, 0, 50, 20), b: stats(2, 10, 0, 50, 20), wantFirst: 1},
		{name: "full tie keeps argument order", a: stats(9, 10, 0, 50, 20), b: stats(3, 10, 0, 50, 20), wantFirst: 9},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := Simulate(tt.a, tt.b)
			if len(out.Turns) == 0 {
				t.Fatal("expected at least one turn")
			}
			if got := out.Turns[0].Attacker.ID; got != tt.wantFirst {
				t.Fatalf("first attacker = %d, want %d", got, tt.wantFirst)
			}
		})
	}
}

func TestSimulateInvariants(t *testing.T) {
	t.Parallel()

	pairs := [][2]models.CombatantStats{
		{stats(1, 100, 10, 100, 90), stats(2, 20, 10, 30, 50)},
		{stats(1, 10, 50, 5, 50), stats(2, 10, 50, 5, 50)},
		{stats(1, 55, 40, 45, 90), stats(2, 49, 49, 45, 45)},
		{stats(1, 1, 200, 17, 1), stats(2, 1, 200, 23, 1)},
		{stats(1, 84, 78, 78, 100), stats(2, 130, 95, 70, 30)},
		{stats(1, 5, 5, 1, 5), stats(2, 5, 5, 1, 6)},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		origA, origB := a, b
		out := Simulate(a, b)

		if a != origA || b != origB {
			t.Fatal("inputs were mutated")
		}
		if bound := a.HP + b.HP; len(out.Turns) > bound {
			t.Fatalf("turns = %d, exceeds bound %d", len(out.Turns), bound)
		}
		hp := map[int64]int{a.ID: a.HP, b.ID: b.HP}
		var prev int64
		for i, turn := range out.Turns {
			if turn.Damage < 1 {
				t.Fatalf("turn %d damage = %d, want >= 1", i+1, turn.Damage)
			}
			if turn.RemainingHP < 0 {
				t.Fatalf("turn %d remaining = %d, want >= 0", i+1, turn.RemainingHP)
			}
			if i > 0 && turn.Attacker.ID == prev {
				t.Fatalf("turn %d attacker repeated", i+1)
			}
			if turn.Defender.CurrentHP != hp[turn.Defender.ID] {
				t.Fatalf("turn %d defender snapshot hp = %d, want %d", i+1, turn.Defender.CurrentHP, hp[turn.Defender.ID])
			}
			hp[turn.Defender.ID] = turn.RemainingHP
			prev = turn.Attacker.ID
		}

		alive := 0
		for _, v := range hp {
			if v > 0 {
				alive++
			}
		}
		if alive != 1 {
			t.Fatalf("alive at exit = %d, want 1", alive)
		}
		if hp[out.Winner.ID] <= 0 {
			t.Fatalf("winner %d has no hp left", out.Winner.ID)
		}
		if out.Winner != origA && out.Winner != origB {
			t.Fatalf("winner %+v is not an original record", out.Winner)
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	t.Parallel()

	a := stats(1, 55, 40, 45, 90)
	b := stats(2, 49, 49, 45, 45)

	first := Simulate(a, b)
	for i := 0; i < 10; i++ {
		if got := Simulate(a, b); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestSimulateZeroHPInputs(t *testing.T) {
	t.Parallel()

	out := Simulate(stats(1, 10, 0, 0, 10), stats(2, 10, 0, 10, 1))
	if out.Winner.ID != 2 || len(out.Turns) != 0 {
		t.Fatalf("winner = %d turns = %d, want 2 and 0", out.Winner.ID, len(out.Turns))
	}

	out = Simulate(stats(1, 10, 0, 0, 1), stats(2, 10, 0, -3, 10))
	if out.Winner.ID != 2 || len(out.Turns) != 0 {
		t.Fatalf("winner = %d turns = %d, want first striker 2 and 0", out.Winner.ID, len(out.Turns))
	}
}

func TestOutcomeHelpers(t *testing.T) {
	t.Parallel()

	a := stats(1, 10, 50, 5, 50)
	b := stats(2, 12, 50, 5, 50)
	out := Simulate(a, b)

	if got := out.Loser(a, b); got.ID == out.Winner.ID {
		t.Fatalf("loser = winner = %d", got.ID)
	}
	hit, ok := out.MaxHit()
	if !ok || hit.Damage != 1 {
		t.Fatalf("max hit = %+v ok=%v, want damage 1", hit, ok)
	}
	if _, ok := (BattleOutcome{}).MaxHit(); ok {
		t.Fatal("expected no max hit on empty outcome")
	}
}
