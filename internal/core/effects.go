package core

// EffectKind identifies a timed power-up effect. Each game defines its own
// kinds as constants.
type EffectKind int

// Effect is an active timed effect expiring at ExpiresAt (game seconds).
type Effect struct {
	Kind      EffectKind
	ExpiresAt float64
}

// Effects tracks timed effects against a game clock. Triggering an active
// kind resets its timer; effects never stack.
type Effects struct {
	list []Effect
}

// Trigger activates kind until now+duration.
func (e *Effects) Trigger(kind EffectKind, now, duration float64) {
	for i := range e.list {
		if e.list[i].Kind == kind {
			e.list[i].ExpiresAt = now + duration
			return
		}
	}
	e.list = append(e.list, Effect{Kind: kind, ExpiresAt: now + duration})
}

// Active reports whether kind is currently active.
func (e *Effects) Active(kind EffectKind) bool {
	for _, ef := range e.list {
		if ef.Kind == kind {
			return true
		}
	}
	return false
}

// Remaining returns seconds left on kind, or 0 if inactive.
func (e *Effects) Remaining(kind EffectKind, now float64) float64 {
	for _, ef := range e.list {
		if ef.Kind == kind {
			return max(ef.ExpiresAt-now, 0)
		}
	}
	return 0
}

// Expire removes effects whose time has passed and returns their kinds.
func (e *Effects) Expire(now float64) []EffectKind {
	var expired []EffectKind
	n := 0
	for _, ef := range e.list {
		if now >= ef.ExpiresAt {
			expired = append(expired, ef.Kind)
			continue
		}
		e.list[n] = ef
		n++
	}
	e.list = e.list[:n]
	return expired
}

// Cancel ends kind immediately. It reports whether kind was active.
func (e *Effects) Cancel(kind EffectKind) bool {
	for i, ef := range e.list {
		if ef.Kind == kind {
			e.list = append(e.list[:i], e.list[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the active effects.
func (e *Effects) List() []Effect {
	out := make([]Effect, len(e.list))
	copy(out, e.list)
	return out
}

// Len returns the number of active effects.
func (e *Effects) Len() int {
	return len(e.list)
}

// Clear removes all effects.
func (e *Effects) Clear() {
	e.list = e.list[:0]
}
