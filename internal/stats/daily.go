package stats

// ResetDaily drops every recorded day's max hit. Standings are kept.
func (t *Tracker) ResetDaily() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.dailyMax)
}
