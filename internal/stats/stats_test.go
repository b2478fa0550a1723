package stats

import (
	"testing"
	"time"

	"github.com/pefman/duel-arena/internal/game"
	"github.com/pefman/duel-arena/internal/models"
)

var (
	day = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	strong = models.CombatantStats{ID: 1, Name: "Mewtwo", Attack: 110, Defense: 90, HP: 106, Speed: 130}
	weak   = models.CombatantStats{ID: 2, Name: "Magikarp", Attack: 10, Defense: 55, HP: 20, Speed: 80}
	medium = models.CombatantStats{ID: 3, Name: "Gyarados", Attack: 125, Defense: 79, HP: 95, Speed: 81}
)

func newTestTracker() *Tracker {
	tr := NewTracker()
	tr.now = func() time.Time { return day }
	return tr
}

func fight(tr *Tracker, id string, a, b models.CombatantStats) game.BattleOutcome {
	out := game.Simulate(a, b)
	tr.Record(models.BattleRecord{ID: id, CombatantA: a.ID, CombatantB: b.ID, Winner: out.Winner.ID, CreatedAt: day}, a, b, out)
	return out
}

func TestLeaderboardOrdering(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	fight(tr, "b1", strong, weak)
	fight(tr, "b2", strong, medium)
	fight(tr, "b3", medium, weak)

	board := tr.Leaderboard()
	if len(board) != 3 {
		t.Fatalf("rows = %d, want 3", len(board))
	}
	want := []int64{1, 3, 2}
	for i, row := range board {
		if row.CombatantID != want[i] {
			t.Fatalf("row %d = %d, want %d (board %+v)", i, row.CombatantID, want[i], board)
		}
	}
	if board[0].Wins != 2 || board[0].Losses != 0 || board[0].Name != "Mewtwo" {
		t.Fatalf("leader = %+v", board[0])
	}
	if board[2].Wins != 0 || board[2].Losses != 2 {
		t.Fatalf("last = %+v", board[2])
	}
}

func TestMaxHitToday(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	if _, ok := tr.MaxHitToday(); ok {
		t.Fatal("expected no max hit on fresh tracker")
	}

	fight(tr, "b1", strong, weak) // 110-55 = 55
	fight(tr, "b2", medium, weak) // 125-55 = 70

	hit, ok := tr.MaxHitToday()
	if !ok {
		t.Fatal("expected max hit")
	}
	if hit.Damage != 70 || hit.BattleID != "b2" || hit.AttackerID != 3 {
		t.Fatalf("max hit = %+v", hit)
	}

	fight(tr, "b3", medium, weak)
	if hit, _ := tr.MaxHitToday(); hit.BattleID != "b2" {
		t.Fatalf("tie replaced earlier record: %+v", hit)
	}

	tr.ResetDaily()
	if _, ok := tr.MaxHitToday(); ok {
		t.Fatal("expected reset to clear max hit")
	}
	if len(tr.Leaderboard()) == 0 {
		t.Fatal("reset dropped standings")
	}
}

func TestMaxHitIsPerDay(t *testing.T) {
	t.Parallel()

	tr := newTestTracker()
	out := game.Simulate(medium, weak)
	yesterday := day.Add(-24 * time.Hour)
	tr.Record(models.BattleRecord{ID: "old", CreatedAt: yesterday}, medium, weak, out)

	if _, ok := tr.MaxHitToday(); ok {
		t.Fatal("yesterday's hit leaked into today")
	}
}
