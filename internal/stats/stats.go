package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/pefman/duel-arena/internal/game"
	"github.com/pefman/duel-arena/internal/models"
)

// Standing is one leaderboard row.
type Standing struct {
	CombatantID int64  `json:"combatant_id"`
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

// MaxHit is the biggest single-turn damage recorded on a given UTC day.
type MaxHit struct {
	BattleID   string    `json:"battle_id"`
	AttackerID int64     `json:"attacker_id"`
	Attacker   string    `json:"attacker"`
	DefenderID int64     `json:"defender_id"`
	Defender   string    `json:"defender"`
	Damage     int       `json:"damage"`
	At         time.Time `json:"at"`
}

// Tracker keeps win/loss tallies and per-day max hits in memory.
type Tracker struct {
	mu        sync.Mutex
	standings map[int64]*Standing
	// date key (YYYY-MM-DD UTC) -> max hit of that day
	dailyMax map[string]MaxHit
	now      func() time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		standings: make(map[int64]*Standing),
		dailyMax:  make(map[string]MaxHit),
		now:       time.Now,
	}
}

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// Record tallies a finished battle between a and b.
func (t *Tracker) Record(rec models.BattleRecord, a, b models.CombatantStats, outcome game.BattleOutcome) {
	loser := outcome.Loser(a, b)
	at := rec.CreatedAt
	if at.IsZero() {
		at = t.now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.standing(outcome.Winner).Wins++
	t.standing(loser).Losses++

	hit, ok := outcome.MaxHit()
	if !ok {
		return
	}
	key := dateKey(at)
	// ties keep the earlier record
	if cur, seen := t.dailyMax[key]; seen && hit.Damage <= cur.Damage {
		return
	}
	t.dailyMax[key] = MaxHit{
		BattleID:   rec.ID,
		AttackerID: hit.Attacker.ID,
		Attacker:   hit.Attacker.Name,
		DefenderID: hit.Defender.ID,
		Defender:   hit.Defender.Name,
		Damage:     hit.Damage,
		At:         at.UTC(),
	}
}

// standing returns the row for c, creating it. Caller holds t.mu.
func (t *Tracker) standing(c models.CombatantStats) *Standing {
	s, ok := t.standings[c.ID]
	if !ok {
		s = &Standing{CombatantID: c.ID}
		t.standings[c.ID] = s
	}
	s.Name = c.Name
	return s
}

// Leaderboard returns standings sorted by wins desc, losses asc, id asc.
func (t *Tracker) Leaderboard() []Standing {
	t.mu.Lock()
	out := make([]Standing, 0, len(t.standings))
	for _, s := range t.standings {
		out = append(out, *s)
	}
	t.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].Losses != out[j].Losses {
			return out[i].Losses < out[j].Losses
		}
		return out[i].CombatantID < out[j].CombatantID
	})
	return out
}

// MaxHitToday returns today's (UTC) biggest hit, if any.
func (t *Tracker) MaxHitToday() (MaxHit, bool) {
	key := dateKey(t.now())
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.dailyMax[key]
	return m, ok
}
