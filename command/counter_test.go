package command

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Counter(t *testing.T) {
	c := NewCounter()
	top, n := c.Top()
	assert.Equal(t, "", top)
	assert.Zero(t, n)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); c.Inc("stats") }()
		go func() { defer wg.Done(); c.Inc("daily") }()
	}
	wg.Wait()
	c.Inc("stats")

	assert.Equal(t, 101, c.Total())
	top, n = c.Top()
	assert.Equal(t, "stats", top)
	assert.Equal(t, 51, n)
	assert.Equal(t, 50, c.Count("daily"))
}
