// Package battle orchestrates a battle request: validation, combatant lookup,
// simulation and persistence.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/pefman/duel-arena/internal/game"
	"github.com/pefman/duel-arena/internal/models"
	"github.com/pefman/duel-arena/internal/storage"
)

// Recorder receives every persisted battle, e.g. for leaderboards.
type Recorder interface {
	Record(rec models.BattleRecord, a, b models.CombatantStats, outcome game.BattleOutcome)
}

// Result is a persisted battle together with its full outcome.
type Result struct {
	Battle  models.BattleRecord
	A, B    models.CombatantStats
	Outcome game.BattleOutcome
}

// Service runs battles against injected stores.
type Service struct {
	combatants storage.CombatantStore
	battles    storage.BattleStore
	recorder   Recorder
}

// NewService wires a Service. recorder may be nil.
func NewService(combatants storage.CombatantStore, battles storage.BattleStore, recorder Recorder) *Service {
	return &Service{combatants: combatants, battles: battles, recorder: recorder}
}

// Fight validates the ids, loads both combatants concurrently, simulates the
// battle and stores the record.
func (s *Service) Fight(ctx context.Context, a, b *int64) (Result, error) {
	if err := game.ValidateBattleRequest(a, b); err != nil {
		code := CodeInternal
		if game.IsValidationError(err) {
			code = CodeInvalidArgument
		}
		return Result{}, Wrap(code, err.Error(), err)
	}

	// Each side keeps its own error so A is reported first when both fail.
	var (
		ca, cb     models.CombatantStats
		errA, errB error
	)
	var g errgroup.Group
	g.Go(func() error {
		ca, errA = s.lookup(ctx, *a)
		return nil
	})
	g.Go(func() error {
		cb, errB = s.lookup(ctx, *b)
		return nil
	})
	_ = g.Wait()
	if errA != nil {
		return Result{}, errA
	}
	if errB != nil {
		return Result{}, errB
	}

	outcome := game.Simulate(ca, cb)
	rec, err := s.battles.CreateBattle(ctx, models.BattleRecord{
		CombatantA: ca.ID,
		CombatantB: cb.ID,
		Winner:     outcome.Winner.ID,
		TurnCount:  len(outcome.Turns),
	})
	if err != nil {
		return Result{}, Wrap(CodeInternal, "could not save battle", err)
	}
	log.Printf("battle: created id=%s a=%d b=%d winner=%d turns=%d", rec.ID, ca.ID, cb.ID, rec.Winner, rec.TurnCount)

	if s.recorder != nil {
		s.recorder.Record(rec, ca, cb, outcome)
	}
	return Result{Battle: rec, A: ca, B: cb, Outcome: outcome}, nil
}

// FightStream runs Fight and hands each turn to onTurn in order. It stops at
// the first callback error.
func (s *Service) FightStream(ctx context.Context, a, b *int64, onTurn func(game.Turn) error) (Result, error) {
	res, err := s.Fight(ctx, a, b)
	if err != nil {
		return Result{}, err
	}
	for _, t := range res.Outcome.Turns {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := onTurn(t); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Service) lookup(ctx context.Context, id int64) (models.CombatantStats, error) {
	c, err := s.combatants.GetCombatant(ctx, id)
	if err != nil {
		return models.CombatantStats{}, storeError(fmt.Sprintf("combatant %d", id), err)
	}
	return c, nil
}

// Combatant returns one combatant.
func (s *Service) Combatant(ctx context.Context, id int64) (models.CombatantStats, error) {
	return s.lookup(ctx, id)
}

// Combatants returns one page of combatants.
func (s *Service) Combatants(ctx context.Context, limit int, afterID int64) (storage.CombatantPage, error) {
	page, err := s.combatants.ListCombatants(ctx, limit, afterID)
	if err != nil {
		return storage.CombatantPage{}, storeError("combatants", err)
	}
	return page, nil
}

// CreateCombatant stores a new combatant.
func (s *Service) CreateCombatant(ctx context.Context, c models.CombatantStats) (models.CombatantStats, error) {
	created, err := s.combatants.CreateCombatant(ctx, c)
	if err != nil {
		return models.CombatantStats{}, storeError(fmt.Sprintf("combatant %q", c.Name), err)
	}
	log.Printf("combatant: created id=%d name=%q", created.ID, created.Name)
	return created, nil
}

// Battle returns one stored battle record.
func (s *Service) Battle(ctx context.Context, id string) (models.BattleRecord, error) {
	rec, err := s.battles.GetBattle(ctx, id)
	if err != nil {
		return models.BattleRecord{}, storeError(fmt.Sprintf("battle %s", id), err)
	}
	return rec, nil
}

// Battles returns recent battle records, newest first.
func (s *Service) Battles(ctx context.Context, limit int) ([]models.BattleRecord, error) {
	recs, err := s.battles.ListBattles(ctx, limit)
	if err != nil {
		return nil, storeError("battles", err)
	}
	return recs, nil
}

// storeError maps storage sentinels to domain codes.
func storeError(subject string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return Wrap(CodeNotFound, subject+" not found", err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return Wrap(CodeAlreadyExists, subject+" already exists", err)
	case errors.Is(err, storage.ErrInvalid):
		return Wrap(CodeInvalidArgument, err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return Wrap(CodeInternal, "could not load "+subject, err)
	}
}
