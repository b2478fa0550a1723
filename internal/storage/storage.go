// Package storage defines persistence contracts for combatants and battles.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pefman/duel-arena/internal/models"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalid indicates a record failed input checks before storage.
	ErrInvalid = errors.New("invalid record")
)

// DefaultPageSize is used when callers pass a non-positive limit.
const DefaultPageSize = 50

// MaxPageSize caps list requests.
const MaxPageSize = 200

// Stat bounds for stored combatants. They keep a simulated battle at most
// 2*MaxHP turns long and attack-defense well inside int range.
const (
	MaxHP   = 10_000
	MaxStat = 10_000
)

// CombatantPage stores one page of combatants ordered by id.
type CombatantPage struct {
	Combatants []models.CombatantStats `json:"combatants"`
	NextAfter  int64                   `json:"next_after,omitempty"`
}

// CombatantStore looks up and creates combatant records.
type CombatantStore interface {
	GetCombatant(ctx context.Context, id int64) (models.CombatantStats, error)
	ListCombatants(ctx context.Context, limit int, afterID int64) (CombatantPage, error)
	CreateCombatant(ctx context.Context, c models.CombatantStats) (models.CombatantStats, error)
}

// BattleStore persists finished battles.
type BattleStore interface {
	// CreateBattle assigns the record ID and CreatedAt.
	CreateBattle(ctx context.Context, rec models.BattleRecord) (models.BattleRecord, error)
	GetBattle(ctx context.Context, id string) (models.BattleRecord, error)
	// ListBattles returns the newest battles first.
	ListBattles(ctx context.Context, limit int) ([]models.BattleRecord, error)
}

// NormalizeCombatant trims and checks a combatant before insert.
func NormalizeCombatant(c models.CombatantStats) (models.CombatantStats, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	if c.Name == "" {
		return c, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if c.HP < 1 || c.HP > MaxHP {
		return c, fmt.Errorf("%w: hp must be between 1 and %d", ErrInvalid, MaxHP)
	}
	for _, f := range []struct {
		name string
		v    int
	}{{"attack", c.Attack}, {"defense", c.Defense}, {"speed", c.Speed}} {
		if f.v < 0 || f.v > MaxStat {
			return c, fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalid, f.name, MaxStat)
		}
	}
	return c, nil
}

// ClampLimit maps a requested page size into [1, MaxPageSize].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
