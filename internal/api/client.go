package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pefman/duel-arena/internal/models"
)

// ErrNotFound is returned when the catalog has no entry for a name.
var ErrNotFound = errors.New("catalog entry not found")

const defaultCacheTTL = 5 * time.Minute

// Config holds API configuration
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client reads combatant stat blocks from a PokeAPI-compatible catalog.
type Client struct {
	config     Config
	httpClient *http.Client

	// Simple cache to reduce redundant API calls
	cacheMu sync.RWMutex
	cache   map[string]cacheEntry
}

type cacheEntry struct {
	stats models.CombatantStats
	at    time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      make(map[string]cacheEntry),
	}
}

func (c *Client) apiGet(ctx context.Context, path string, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// API response types
type apiPokemon struct {
	Name    string    `json:"name"`
	Stats   []apiStat `json:"stats"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

type apiStat struct {
	BaseStat int `json:"base_stat"`
	Stat     struct {
		Name string `json:"name"`
	} `json:"stat"`
}

func toSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "’", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "--", "-")
	return s
}

// FetchCombatant returns the stat block for name. The ID is left zero; the
// store assigns it on insert.
func (c *Client) FetchCombatant(ctx context.Context, name string) (models.CombatantStats, error) {
	slug := toSlug(name)
	if slug == "" {
		return models.CombatantStats{}, fmt.Errorf("name is required")
	}

	// Check cache first
	c.cacheMu.RLock()
	if e, ok := c.cache[slug]; ok && time.Since(e.at) < c.config.CacheTTL {
		c.cacheMu.RUnlock()
		return e.stats, nil
	}
	c.cacheMu.RUnlock()

	var res apiPokemon
	if err := c.apiGet(ctx, "/pokemon/"+slug, &res); err != nil {
		return models.CombatantStats{}, fmt.Errorf("fetch %s: %w", slug, err)
	}
	stats := res.toCombatant()

	c.cacheMu.Lock()
	c.cache[slug] = cacheEntry{stats: stats, at: time.Now()}
	c.cacheMu.Unlock()
	return stats, nil
}

func (p apiPokemon) toCombatant() models.CombatantStats {
	out := models.CombatantStats{Name: p.Name, ImageURL: p.Sprites.FrontDefault}
	for _, s := range p.Stats {
		switch s.Stat.Name {
		case "hp":
			out.HP = s.BaseStat
		case "attack":
			out.Attack = s.BaseStat
		case "defense":
			out.Defense = s.BaseStat
		case "speed":
			out.Speed = s.BaseStat
		}
	}
	return out
}
