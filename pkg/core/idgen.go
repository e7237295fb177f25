package core

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12
)

// IDGenerator produces candidate record ids. taken reports ids already in
// use; generators may consult it or leave collision handling to the store.
type IDGenerator interface {
	NextID(taken func(id string) bool) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(taken func(id string) bool) string

func (f IDGeneratorFunc) NextID(taken func(id string) bool) string { return f(taken) }

// RandomIDs draws 12 characters from a 62 character alphabet.
type RandomIDs struct{}

func (RandomIDs) NextID(func(string) bool) string {
	var b strings.Builder
	b.Grow(idLength)
	for range idLength {
		b.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return b.String()
}

// SequentialIDs returns the smallest unused positive integer, as used by
// editor slots.
type SequentialIDs struct{}

func (SequentialIDs) NextID(taken func(string) bool) string {
	for n := 1; ; n++ {
		id := strconv.Itoa(n)
		if !taken(id) {
			return id
		}
	}
}
