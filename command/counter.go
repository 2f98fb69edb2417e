package command

import (
	"sort"
	"sync"
)

// Counter tracks how often each top-level verb ran since start.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewCounter() *Counter {
	return &Counter{counts: map[string]int{}}
}

func (c *Counter) Inc(verb string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[verb]++
}

func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Top returns the most used verb. Ties go to the alphabetically first verb.
func (c *Counter) Top() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	verbs := make([]string, 0, len(c.counts))
	for v := range c.counts {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)

	var (
		top  string
		most int
	)
	for _, v := range verbs {
		if c.counts[v] > most {
			top, most = v, c.counts[v]
		}
	}
	return top, most
}

func (c *Counter) Count(verb string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[verb]
}
