package models

import "time"

// ========================= Domain Models =========================
// Shapes shared by storage, the battle engine and the HTTP layer.

// CombatantStats is the stored stat block of one combatant. Battle code treats
// it as read-only input.
type CombatantStats struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
	HP       int    `json:"hp"`
	Speed    int    `json:"speed"`
	ImageURL string `json:"image_url,omitempty"`
}

// BattleRecord is what gets persisted for a finished battle. Turn logs are
// returned to the caller only.
type BattleRecord struct {
	ID         string    `json:"id"`
	CombatantA int64     `json:"combatant_a"`
	CombatantB int64     `json:"combatant_b"`
	Winner     int64     `json:"winner"`
	TurnCount  int       `json:"turn_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// BattleRequest is the client payload for starting a battle. Pointers keep
// "absent" apart from an explicit zero.
type BattleRequest struct {
	CombatantA *int64 `json:"combatant_a"`
	CombatantB *int64 `json:"combatant_b"`
}

// WebSocket message structure
type WsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
