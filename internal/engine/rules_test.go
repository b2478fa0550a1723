package engine

import "testing"

func TestDamage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attack  int
		defense int
		want    int
	}{
		{name: "attack above defense", attack: 100, defense: 10, want: 90},
		{name: "attack equals defense", attack: 10, defense: 10, want: 1},
		{name: "defense above attack", attack: 10, defense: 50, want: 1},
		{name: "negative attack", attack: -5, defense: 0, want: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Damage(tt.attack, tt.defense); got != tt.want {
				t.Fatalf("Damage(%d, %d) = %d, want %d", tt.attack, tt.defense, got, tt.want)
			}
		})
	}
}

func TestApplyDamage(t *testing.T) {
	t.Parallel()

	if got := ApplyDamage(30, 90); got != 0 {
		t.Fatalf("overkill hp = %d, want 0", got)
	}
	if got := ApplyDamage(5, 1); got != 4 {
		t.Fatalf("hp = %d, want 4", got)
	}
	if got := ApplyDamage(3, 3); got != 0 {
		t.Fatalf("exact kill hp = %d, want 0", got)
	}
}

func TestFirstStrike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		speedA, attackA int
		speedB, attackB int
		want            bool
	}{
		{name: "faster A", speedA: 90, attackA: 1, speedB: 50, attackB: 100, want: true},
		{name: "faster B", speedA: 10, attackA: 100, speedB: 50, attackB: 1, want: false},
		{name: "speed tie, stronger A", speedA: 50, attackA: 20, speedB: 50, attackB: 10, want: true},
		{name: "speed tie, stronger B", speedA: 50, attackA: 10, speedB: 50, attackB: 20, want: false},
		{name: "full tie keeps A", speedA: 50, attackA: 10, speedB: 50, attackB: 10, want: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FirstStrike(tt.speedA, tt.attackA, tt.speedB, tt.attackB); got != tt.want {
				t.Fatalf("FirstStrike = %v, want %v", got, tt.want)
			}
		})
	}
}
