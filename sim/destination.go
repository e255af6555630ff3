package sim

import (
	"fmt"
	"math/rand"
	"sort"
)

// DestinationPolicy chooses where a stationmaster sends a train it evicts
// from a full station. Scenarios select one by name.
type DestinationPolicy interface {
	Destination(t *Train, from *Station) Coord
}

// Bounds is an inclusive coordinate range applied to both axes.
type Bounds struct {
	Min int
	Max int
}

// DefaultDestinationBounds is the uniform draw range when none is configured.
var DefaultDestinationBounds = Bounds{Min: 1, Max: 50}

// DestinationConfig selects and parameterises a DestinationPolicy.
type DestinationConfig struct {
	Policy string // "uniform" (default), "random-or-depot" or "fixed"
	Bounds Bounds // range for uniform draws
	Depot  Coord  // target for "fixed" and the depot half of "random-or-depot"
}

// ValidDestinationPolicies is the set of recognized destination policy names.
// Shared by Validate() and NewDestinationPolicy() to avoid duplication.
var ValidDestinationPolicies = map[string]bool{"": true, "uniform": true, "random-or-depot": true, "fixed": true}

// IsValidDestinationPolicy returns true if name is a recognized policy name.
func IsValidDestinationPolicy(name string) bool {
	return ValidDestinationPolicies[name]
}

// DestinationPolicyNames returns the non-empty policy names, sorted.
func DestinationPolicyNames() []string {
	names := make([]string, 0, len(ValidDestinationPolicies))
	for name := range ValidDestinationPolicies {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks the policy name and its parameters.
func (c DestinationConfig) Validate() error {
	if !IsValidDestinationPolicy(c.Policy) {
		return fmt.Errorf("unknown destination policy %q; valid: %v", c.Policy, DestinationPolicyNames())
	}
	policy := c.Policy
	if policy == "" {
		policy = "uniform"
	}
	if policy != "fixed" {
		if c.Bounds.Min > c.Bounds.Max {
			return fmt.Errorf("destination bounds min %d > max %d", c.Bounds.Min, c.Bounds.Max)
		}
		if c.Bounds.Min == 0 && c.Bounds.Max == 0 {
			return fmt.Errorf("destination bounds [0,0] only contain the transit sentinel")
		}
	}
	if policy != "uniform" && c.Depot.IsSentinel() {
		return fmt.Errorf("destination depot %s: %w", c.Depot, ErrSentinelPosition)
	}
	return nil
}

// UniformDestination draws both coordinates uniformly from Bounds,
// redrawing if it lands on the transit sentinel.
type UniformDestination struct {
	rng    *rand.Rand
	bounds Bounds
}

// NewUniformDestination creates a UniformDestination drawing from rng.
func NewUniformDestination(rng *rand.Rand, bounds Bounds) *UniformDestination {
	return &UniformDestination{rng: rng, bounds: bounds}
}

// Destination implements DestinationPolicy.
func (u *UniformDestination) Destination(_ *Train, _ *Station) Coord {
	for {
		c := Coord{X: u.draw(), Y: u.draw()}
		if !c.IsSentinel() {
			return c
		}
	}
}

func (u *UniformDestination) draw() int {
	return u.bounds.Min + u.rng.Intn(u.bounds.Max-u.bounds.Min+1)
}

// FixedDestination always sends trains to the same depot.
type FixedDestination struct {
	Depot Coord
}

// Destination implements DestinationPolicy.
func (f *FixedDestination) Destination(_ *Train, _ *Station) Coord {
	return f.Depot
}

// RandomOrDepot flips a fair coin per eviction: heads draws a uniform
// destination, tails sends the train to the depot.
type RandomOrDepot struct {
	rng     *rand.Rand
	uniform *UniformDestination
	depot   Coord
}

// NewRandomOrDepot creates a RandomOrDepot policy drawing from rng.
func NewRandomOrDepot(rng *rand.Rand, bounds Bounds, depot Coord) *RandomOrDepot {
	return &RandomOrDepot{
		rng:     rng,
		uniform: NewUniformDestination(rng, bounds),
		depot:   depot,
	}
}

// Destination implements DestinationPolicy.
func (r *RandomOrDepot) Destination(t *Train, from *Station) Coord {
	if r.rng.Intn(2) == 0 {
		return r.uniform.Destination(t, from)
	}
	return r.depot
}

// NewDestinationPolicy creates a destination policy from cfg.
// An empty name defaults to uniform.
// Panics on unrecognized names; call cfg.Validate first.
func NewDestinationPolicy(cfg DestinationConfig, rng *rand.Rand) DestinationPolicy {
	if !IsValidDestinationPolicy(cfg.Policy) {
		panic(fmt.Sprintf("unknown destination policy %q", cfg.Policy))
	}
	switch cfg.Policy {
	case "", "uniform":
		return NewUniformDestination(rng, cfg.Bounds)
	case "fixed":
		return &FixedDestination{Depot: cfg.Depot}
	case "random-or-depot":
		return NewRandomOrDepot(rng, cfg.Bounds, cfg.Depot)
	default:
		panic(fmt.Sprintf("unhandled destination policy %q", cfg.Policy))
	}
}
