package game

import (
	"errors"
	"testing"
)

func id(v int64) *int64 { return &v }

func TestValidateBattleRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *int64
		want error
	}{
		{name: "valid", a: id(1), b: id(2), want: nil},
		{name: "zero is present", a: id(0), b: id(3), want: nil},
		{name: "missing a", a: nil, b: id(3), want: ErrIdentifiersRequired},
		{name: "missing b", a: id(3), b: nil, want: ErrIdentifiersRequired},
		{name: "both missing", want: ErrIdentifiersRequired},
		{name: "self battle", a: id(7), b: id(7), want: ErrSelfBattle},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBattleRequest(tt.a, tt.b)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want != nil && !IsValidationError(err) {
				t.Fatalf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	t.Parallel()

	if got := ValidateBattleRequest(id(7), id(7)).Error(); got != "a combatant cannot battle itself" {
		t.Fatalf("message = %q", got)
	}
	if got := ValidateBattleRequest(nil, id(3)).Error(); got != "both identifiers required" {
		t.Fatalf("message = %q", got)
	}
}
