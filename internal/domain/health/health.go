// Package health defines the hit-point model shared by every living entity.
// This package is PURE and must NOT import any infrastructure packages (engine, platform).
package health

import (
	"fmt"
	"sync"

	"github.com/rotisserie/eris"
)

// ErrInvalidArgument is returned for a non-positive max or a negative amount.
var ErrInvalidArgument = eris.New("invalid argument")

// Points is a bounded HP counter. Current always stays within [0, Max].
//
// Points is shared by pointer: a recovery loop and the entity that owns the
// value see the same counter. Each call is atomic on its own; a sequence of
// calls is not.
type Points struct {
	mu      sync.Mutex
	current int
	max     int
}

// NewPoints creates a full HP counter with the given maximum.
func NewPoints(maxHP int) (*Points, error) {
	if maxHP <= 0 {
		return nil, eris.Wrapf(ErrInvalidArgument, "max HP must be greater than 0, got %d", maxHP)
	}
	return &Points{current: maxHP, max: maxHP}, nil
}

// MustNewPoints is like NewPoints but panics on an invalid max.
func MustNewPoints(maxHP int) *Points {
	p, err := NewPoints(maxHP)
	if err != nil {
		panic(err)
	}
	return p
}

// Current returns the remaining HP.
func (p *Points) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Max returns the HP ceiling fixed at construction.
func (p *Points) Max() int {
	return p.max
}

// TakeDamage lowers Current by amount, stopping at 0.
func (p *Points) TakeDamage(amount int) error {
	if amount < 0 {
		return eris.Wrapf(ErrInvalidArgument, "damage amount must be non-negative, got %d", amount)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = max(0, p.current-amount)
	return nil
}

// Heal raises Current by amount, stopping at Max.
func (p *Points) Heal(amount int) error {
	if amount < 0 {
		return eris.Wrapf(ErrInvalidArgument, "heal amount must be non-negative, got %d", amount)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Compare against the headroom so a huge amount cannot overflow.
	if amount >= p.max-p.current {
		p.current = p.max
	} else {
		p.current += amount
	}
	return nil
}

func (p *Points) IsDead() bool {
	return p.Current() == 0
}

func (p *Points) IsFull() bool {
	return p.Current() == p.max
}

// Fraction returns Current/Max in [0, 1].
func (p *Points) Fraction() float64 {
	return float64(p.Current()) / float64(p.max)
}

func (p *Points) String() string {
	return fmt.Sprintf("%d/%d", p.Current(), p.max)
}
