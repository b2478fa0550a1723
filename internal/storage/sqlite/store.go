// Package sqlite provides a SQLite-backed combatant and battle store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pefman/duel-arena/internal/models"
	"github.com/pefman/duel-arena/internal/storage"
	"github.com/pefman/duel-arena/internal/storage/sqlite/migrations"
	"github.com/pefman/duel-arena/internal/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists combatants and battles in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
	newID func() string
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		sqlDB: sqlDB,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// GetCombatant returns one combatant by id.
func (s *Store) GetCombatant(ctx context.Context, id int64) (models.CombatantStats, error) {
	if err := s.ready(ctx); err != nil {
		return models.CombatantStats{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, attack, defense, hp, speed, image_url
		   FROM combatants
		  WHERE id = ?`,
		id,
	)
	c, err := scanCombatant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CombatantStats{}, storage.ErrNotFound
		}
		return models.CombatantStats{}, fmt.Errorf("get combatant %d: %w", id, err)
	}
	return c, nil
}

// ListCombatants returns one page of combatants with id greater than afterID.
func (s *Store) ListCombatants(ctx context.Context, limit int, afterID int64) (storage.CombatantPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CombatantPage{}, err
	}
	limit = storage.ClampLimit(limit)

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, attack, defense, hp, speed, image_url
		   FROM combatants
		  WHERE id > ?
		  ORDER BY id ASC
		  LIMIT ?`,
		afterID, limit+1,
	)
	if err != nil {
		return storage.CombatantPage{}, fmt.Errorf("list combatants: %w", err)
	}
	defer rows.Close()

	page := storage.CombatantPage{Combatants: make([]models.CombatantStats, 0, limit)}
	for rows.Next() {
		c, err := scanCombatant(rows)
		if err != nil {
			return storage.CombatantPage{}, fmt.Errorf("list combatants: %w", err)
		}
		page.Combatants = append(page.Combatants, c)
	}
	if err := rows.Err(); err != nil {
		return storage.CombatantPage{}, fmt.Errorf("list combatants: %w", err)
	}
	if len(page.Combatants) > limit {
		page.Combatants = page.Combatants[:limit]
		page.NextAfter = page.Combatants[limit-1].ID
	}
	return page, nil
}

// CreateCombatant inserts a combatant and returns it with its assigned id.
func (s *Store) CreateCombatant(ctx context.Context, c models.CombatantStats) (models.CombatantStats, error) {
	if err := s.ready(ctx); err != nil {
		return models.CombatantStats{}, err
	}
	c, err := storage.NormalizeCombatant(c)
	if err != nil {
		return models.CombatantStats{}, err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO combatants (name, attack, defense, hp, speed, image_url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Attack, c.Defense, c.HP, c.Speed, c.ImageURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.CombatantStats{}, storage.ErrAlreadyExists
		}
		return models.CombatantStats{}, fmt.Errorf("create combatant: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.CombatantStats{}, fmt.Errorf("create combatant: %w", err)
	}
	c.ID = id
	return c, nil
}

// CreateBattle stores a finished battle under a new uuid.
func (s *Store) CreateBattle(ctx context.Context, rec models.BattleRecord) (models.BattleRecord, error) {
	if err := s.ready(ctx); err != nil {
		return models.BattleRecord{}, err
	}
	rec.ID = s.newID()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO battles (id, combatant_a, combatant_b, winner, turn_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CombatantA, rec.CombatantB, rec.Winner, rec.TurnCount, toMillis(rec.CreatedAt),
	)
	if err != nil {
		return models.BattleRecord{}, fmt.Errorf("create battle: %w", err)
	}
	return rec, nil
}

// GetBattle returns one battle record by id.
func (s *Store) GetBattle(ctx context.Context, id string) (models.BattleRecord, error) {
	if err := s.ready(ctx); err != nil {
		return models.BattleRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return models.BattleRecord{}, storage.ErrNotFound
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, combatant_a, combatant_b, winner, turn_count, created_at
		   FROM battles
		  WHERE id = ?`,
		id,
	)
	rec, err := scanBattle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BattleRecord{}, storage.ErrNotFound
		}
		return models.BattleRecord{}, fmt.Errorf("get battle %s: %w", id, err)
	}
	return rec, nil
}

// ListBattles returns up to limit battles, newest first.
func (s *Store) ListBattles(ctx context.Context, limit int) ([]models.BattleRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, combatant_a, combatant_b, winner, turn_count, created_at
		   FROM battles
		  ORDER BY created_at DESC, rowid DESC
		  LIMIT ?`,
		storage.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var out []models.BattleRecord
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("list battles: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCombatant(row scanner) (models.CombatantStats, error) {
	var c models.CombatantStats
	err := row.Scan(&c.ID, &c.Name, &c.Attack, &c.Defense, &c.HP, &c.Speed, &c.ImageURL)
	return c, err
}

func scanBattle(row scanner) (models.BattleRecord, error) {
	var rec models.BattleRecord
	var createdAt int64
	if err := row.Scan(&rec.ID, &rec.CombatantA, &rec.CombatantB, &rec.Winner, &rec.TurnCount, &createdAt); err != nil {
		return models.BattleRecord{}, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	return rec, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var (
	_ storage.CombatantStore = (*Store)(nil)
	_ storage.BattleStore    = (*Store)(nil)
)
