package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestinationConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DestinationConfig
		wantErr string
	}{
		{name: "empty defaults to uniform", cfg: DestinationConfig{Bounds: Bounds{1, 50}}},
		{name: "uniform", cfg: DestinationConfig{Policy: "uniform", Bounds: Bounds{1, 50}}},
		{name: "random-or-depot", cfg: DestinationConfig{Policy: "random-or-depot", Bounds: Bounds{1, 50}, Depot: Coord{20, 20}}},
		{name: "fixed ignores bounds", cfg: DestinationConfig{Policy: "fixed", Depot: Coord{20, 20}}},
		{name: "unknown", cfg: DestinationConfig{Policy: "teleport"}, wantErr: "unknown destination policy"},
		{name: "inverted bounds", cfg: DestinationConfig{Policy: "uniform", Bounds: Bounds{10, 1}}, wantErr: "min 10 > max 1"},
		{name: "sentinel-only bounds", cfg: DestinationConfig{Policy: "uniform"}, wantErr: "transit sentinel"},
		{name: "fixed on sentinel", cfg: DestinationConfig{Policy: "fixed"}, wantErr: "sentinel"},
		{name: "random-or-depot on sentinel", cfg: DestinationConfig{Policy: "random-or-depot", Bounds: Bounds{1, 50}}, wantErr: "sentinel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDestinationPolicyNames(t *testing.T) {
	assert.Equal(t, []string{"fixed", "random-or-depot", "uniform"}, DestinationPolicyNames())
	assert.True(t, IsValidDestinationPolicy(""))
	assert.False(t, IsValidDestinationPolicy("Uniform"))
}

func TestUniformDestination_StaysInBoundsAndAvoidsSentinel(t *testing.T) {
	// GIVEN bounds that include the sentinel coordinate
	u := NewUniformDestination(rand.New(rand.NewSource(7)), Bounds{Min: 0, Max: 1})

	// WHEN drawing many destinations
	for i := 0; i < 500; i++ {
		c := u.Destination(nil, nil)

		// THEN none is (0,0) and all lie within bounds
		assert.False(t, c.IsSentinel())
		assert.Contains(t, []int{0, 1}, c.X)
		assert.Contains(t, []int{0, 1}, c.Y)
	}
}

func TestUniformDestination_Deterministic(t *testing.T) {
	draw := func() []Coord {
		u := NewUniformDestination(rand.New(rand.NewSource(421)), DefaultDestinationBounds)
		out := make([]Coord, 20)
		for i := range out {
			out[i] = u.Destination(nil, nil)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestRandomOrDepot_UsesBothBranches(t *testing.T) {
	depot := Coord{20, 20}
	p := NewRandomOrDepot(rand.New(rand.NewSource(421)), Bounds{Min: 30, Max: 50}, depot)

	var toDepot, random int
	for i := 0; i < 200; i++ {
		c := p.Destination(nil, nil)
		if c == depot {
			toDepot++
			continue
		}
		random++
		assert.GreaterOrEqual(t, c.X, 30)
		assert.GreaterOrEqual(t, c.Y, 30)
	}
	assert.Greater(t, toDepot, 50)
	assert.Greater(t, random, 50)
}

func TestNewDestinationPolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bounds := Bounds{1, 50}

	assert.IsType(t, &UniformDestination{}, NewDestinationPolicy(DestinationConfig{Bounds: bounds}, rng))
	assert.IsType(t, &UniformDestination{}, NewDestinationPolicy(DestinationConfig{Policy: "uniform", Bounds: bounds}, rng))
	assert.IsType(t, &RandomOrDepot{}, NewDestinationPolicy(DestinationConfig{Policy: "random-or-depot", Bounds: bounds, Depot: Coord{2, 2}}, rng))

	fixed := NewDestinationPolicy(DestinationConfig{Policy: "fixed", Depot: Coord{2, 2}}, rng)
	assert.Equal(t, Coord{2, 2}, fixed.Destination(nil, nil))

	assert.Panics(t, func() { NewDestinationPolicy(DestinationConfig{Policy: "teleport"}, rng) })
}
