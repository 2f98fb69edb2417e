package command

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const cooldownPruneAt = 1024

// cooldownWindow opens on the first call and admits burst calls until per has passed.
// The limiter never refills, a new window gets a new limiter.
type cooldownWindow struct {
	start time.Time
	lim   *rate.Limiter
}

type cooldownTable struct {
	mu      sync.Mutex
	burst   int
	per     time.Duration
	perUser bool
	windows map[string]*cooldownWindow
}

// Cooldown allows n invocations per window, counted per user when perUser is set and
// across everyone otherwise. Each call to Cooldown creates an independent table, so
// one check value belongs to one command.
func Cooldown(n int, per time.Duration, perUser bool) Check {
	if n < 1 {
		n = 1
	}
	t := &cooldownTable{
		burst:   n,
		per:     per,
		perUser: perUser,
		windows: map[string]*cooldownWindow{},
	}
	return t.check
}

func (t *cooldownTable) check(c *Context) error {
	key := "*"
	if t.perUser {
		key = c.Message.Author.ID
	}
	now := c.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.windows) >= cooldownPruneAt {
		t.prune(now)
	}
	w, ok := t.windows[key]
	if !ok || t.expired(w, now) {
		w = &cooldownWindow{start: now, lim: rate.NewLimiter(0, t.burst)}
		t.windows[key] = w
	}

	if !w.lim.AllowN(now, 1) {
		return &Error{
			Kind:       KindCooldown,
			Message:    "You're on cooldown!",
			RetryAfter: w.start.Add(t.per).Sub(now),
		}
	}
	return nil
}

func (t *cooldownTable) expired(w *cooldownWindow, now time.Time) bool {
	return !now.Before(w.start.Add(t.per))
}

// prune drops windows that have closed.
func (t *cooldownTable) prune(now time.Time) {
	for key, w := range t.windows {
		if t.expired(w, now) {
			delete(t.windows, key)
		}
	}
}
