package catalog

import (
	"errors"
	"strings"
	"time"
)

const MaxNameBytes = 64

var ErrInvalidName = errors.New("invalid catalog name")

type Event struct {
	Name      string    `json:"name"`
	Authority string    `json:"authority"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Quest struct {
	Event     string    `json:"event"`
	Name      string    `json:"name"`
	XPReward  uint64    `json:"xp_reward"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeName trims a catalog key and enforces its length bound.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameBytes {
		return "", ErrInvalidName
	}
	return name, nil
}
