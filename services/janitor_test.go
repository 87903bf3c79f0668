package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJanitorRunOnce(t *testing.T) {
	j := NewJanitor()
	calls := map[string]int{}
	j.Add("sessions", func() int { calls["sessions"]++; return 2 })
	j.Add("tokens", func() int { calls["tokens"]++; return 0 })

	j.RunOnce()
	j.RunOnce()

	assert.Equal(t, 2, calls["sessions"])
	assert.Equal(t, 2, calls["tokens"])
}
