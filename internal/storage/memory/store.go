// Package memory is an in-process combatant and battle store. Data is lost on
// restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pefman/duel-arena/internal/models"
	"github.com/pefman/duel-arena/internal/storage"
)

// Store keeps combatants and battles in maps guarded by one mutex.
type Store struct {
	mu         sync.Mutex
	nextID     int64
	combatants map[int64]models.CombatantStats
	names      map[string]int64 // folded name -> id
	battles    map[string]models.BattleRecord
	order      []string // battle ids in insert order

	now   func() time.Time
	newID func() string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		combatants: make(map[int64]models.CombatantStats),
		names:      make(map[string]int64),
		battles:    make(map[string]models.BattleRecord),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

func (s *Store) GetCombatant(ctx context.Context, id int64) (models.CombatantStats, error) {
	if err := ctx.Err(); err != nil {
		return models.CombatantStats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.combatants[id]
	if !ok {
		return models.CombatantStats{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCombatants(ctx context.Context, limit int, afterID int64) (storage.CombatantPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.CombatantPage{}, err
	}
	limit = storage.ClampLimit(limit)
	s.mu.Lock()
	ids := make([]int64, 0, len(s.combatants))
	for id := range s.combatants {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	page := storage.CombatantPage{Combatants: make([]models.CombatantStats, 0, limit)}
	for i, id := range ids {
		if i == limit {
			page.NextAfter = ids[limit-1]
			break
		}
		page.Combatants = append(page.Combatants, s.combatants[id])
	}
	s.mu.Unlock()
	return page, nil
}

func (s *Store) CreateCombatant(ctx context.Context, c models.CombatantStats) (models.CombatantStats, error) {
	if err := ctx.Err(); err != nil {
		return models.CombatantStats{}, err
	}
	c, err := storage.NormalizeCombatant(c)
	if err != nil {
		return models.CombatantStats{}, err
	}
	key := foldName(c.Name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.names[key]; dup {
		return models.CombatantStats{}, storage.ErrAlreadyExists
	}
	s.nextID++
	c.ID = s.nextID
	s.combatants[c.ID] = c
	s.names[key] = c.ID
	return c, nil
}

func (s *Store) CreateBattle(ctx context.Context, rec models.BattleRecord) (models.BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.BattleRecord{}, err
	}
	rec.ID = s.newID()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec, nil
}

func (s *Store) GetBattle(ctx context.Context, id string) (models.BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.BattleRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.battles[strings.TrimSpace(id)]
	if !ok {
		return models.BattleRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) ListBattles(ctx context.Context, limit int) ([]models.BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = storage.ClampLimit(limit)
	s.mu.Lock()
	out := make([]models.BattleRecord, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.battles[s.order[i]])
	}
	s.mu.Unlock()
	// newest first; insert order breaks ties
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// foldName lowercases ASCII letters only, the way SQLite's NOCASE collation
// compares names.
func foldName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

var (
	_ storage.CombatantStore = (*Store)(nil)
	_ storage.BattleStore    = (*Store)(nil)
)
