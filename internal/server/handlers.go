package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pefman/duel-arena/internal/battle"
	"github.com/pefman/duel-arena/internal/game"
	"github.com/pefman/duel-arena/internal/models"
)

// battleResponse is the body returned for a new battle.
type battleResponse struct {
	ID         string                `json:"id"`
	CombatantA int64                 `json:"combatant_a"`
	CombatantB int64                 `json:"combatant_b"`
	Winner     models.CombatantStats `json:"winner"`
	Turns      []game.Turn           `json:"turns"`
	CreatedAt  time.Time             `json:"created_at"`
}

func newBattleResponse(res battle.Result) battleResponse {
	turns := res.Outcome.Turns
	if turns == nil {
		turns = []game.Turn{}
	}
	return battleResponse{
		ID:         res.Battle.ID,
		CombatantA: res.Battle.CombatantA,
		CombatantB: res.Battle.CombatantB,
		Winner:     res.Outcome.Winner,
		Turns:      turns,
		CreatedAt:  res.Battle.CreatedAt,
	}
}

// POST /api/battles
// Body: { "combatant_a": 1, "combatant_b": 2 }
func (s *Server) createBattle(w http.ResponseWriter, r *http.Request) {
	var req models.BattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	res, err := s.svc.Fight(r.Context(), req.CombatantA, req.CombatantB)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newBattleResponse(res))
}

// GET /api/battles?limit=...
func (s *Server) listBattles(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	recs, err := s.svc.Battles(r.Context(), int(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []models.BattleRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"battles": recs})
}

// GET /api/battles/{id}
func (s *Server) getBattle(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Battle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GET /api/combatants?limit=...&after=...
func (s *Server) listCombatants(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	after, ok := queryInt(w, r, "after")
	if !ok {
		return
	}
	page, err := s.svc.Combatants(r.Context(), int(limit), after)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GET /api/combatants/{id}
func (s *Server) getCombatant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid combatant id")
		return
	}
	c, err := s.svc.Combatant(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// POST /api/combatants
func (s *Server) createCombatant(w http.ResponseWriter, r *http.Request) {
	var req models.CombatantStats
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.ID = 0
	c, err := s.svc.CreateCombatant(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GET /api/stats/leaderboard
func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"standings": s.tracker.Leaderboard()})
}

// GET /api/stats/max-hit/today
func (s *Server) maxHitToday(w http.ResponseWriter, r *http.Request) {
	hit, ok := s.tracker.MaxHitToday()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, hit)
}

// queryInt reads an optional integer query parameter. It writes a 400 and
// returns false when the value is malformed.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return v, true
}
