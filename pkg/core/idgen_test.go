package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := RandomIDs{}.NextID(func(string) bool { return false })
		assert.Len(t, id, idLength)
		for _, c := range id {
			assert.Contains(t, idAlphabet, string(c))
		}
		seen[id] = true
	}
	assert.Greater(t, len(seen), 95, "random ids should rarely collide")
}

func TestSequentialIDs(t *testing.T) {
	taken := map[string]bool{"1": true, "2": true, "4": true}
	id := SequentialIDs{}.NextID(func(id string) bool { return taken[id] })
	assert.Equal(t, "3", id)

	assert.Equal(t, "1", SequentialIDs{}.NextID(func(string) bool { return false }))
}
