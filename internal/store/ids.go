package store

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

const (
	NumericIDs = "numeric"
	UUIDs      = "uuid"

	numericIDSpace = 10000
	maxIDAttempts  = 64
)

var ErrIDSpaceExhausted = errors.New("no free game id found")

// IDGenerator produces game ids. taken reports whether an id is already used.
type IDGenerator interface {
	NewID(taken func(id string) bool) (string, error)
}

// NewIDGenerator returns the generator for a strategy name.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", NumericIDs:
		return &NumericGenerator{Intn: rand.IntN}, nil
	case UUIDs:
		return &UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// NumericGenerator draws decimal ids in [0, 10000).
type NumericGenerator struct {
	Intn func(n int) int
}

func (g *NumericGenerator) NewID(taken func(id string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := strconv.Itoa(g.Intn(numericIDSpace))
		if !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(taken func(id string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := uuid.NewString()
		if !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}
