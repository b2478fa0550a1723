package game

import "errors"

var (
	// ErrIdentifiersRequired is returned when either combatant id is absent.
	ErrIdentifiersRequired = errors.New("both identifiers required")
	// ErrSelfBattle is returned when both ids name the same combatant.
	ErrSelfBattle = errors.New("a combatant cannot battle itself")
)

// ValidateBattleRequest checks the shape of a battle request. A nil id is
// missing; zero is a present value. Existence is not checked here.
func ValidateBattleRequest(a, b *int64) error {
	if a == nil || b == nil {
		return ErrIdentifiersRequired
	}
	if *a == *b {
		return ErrSelfBattle
	}
	return nil
}

// IsValidationError reports whether err came from ValidateBattleRequest.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrIdentifiersRequired) || errors.Is(err, ErrSelfBattle)
}
