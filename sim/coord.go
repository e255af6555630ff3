package sim

import "fmt"

// Coord is a point on the integer grid trains and stations live on.
type Coord struct {
	X int
	Y int
}

// TransitSentinel marks a train that is currently between stable locations.
// Neither trains nor stations may be registered here.
var TransitSentinel = Coord{}

// IsSentinel reports whether c is the transit sentinel.
func (c Coord) IsSentinel() bool {
	return c == TransitSentinel
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Distance is the rectilinear travel time between two coordinates in ticks.
func Distance(a, b Coord) int64 {
	return absDelta(a.X, b.X) + absDelta(a.Y, b.Y)
}

func absDelta(a, b int) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}
