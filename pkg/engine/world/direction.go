package world

// Direction represents one of the eight compass directions on the grid
type Direction int

// Direction constants, clockwise from North
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	// None is the zero step (used for "wait")
	None Direction = -1
)

var directionDeltas = [...]Point{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

// AllDirections returns all eight directions in neighbour expansion order:
// the row above left to right, then West and East, then the row below.
func AllDirections() []Direction {
	return []Direction{NorthWest, North, NorthEast, West, East, SouthWest, South, SouthEast}
}

// CardinalDirections returns the four orthogonal directions
func CardinalDirections() []Direction {
	return []Direction{North, West, East, South}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	case None:
		return "None"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the eight compass directions
func (d Direction) IsValid() bool {
	return d >= North && d <= NorthWest
}

// IsDiagonal returns true for the four diagonal directions
func (d Direction) IsDiagonal() bool {
	return d.IsValid() && d%2 == 1
}

// Delta returns the unit step for this direction; None and invalid values give (0,0)
func (d Direction) Delta() Point {
	if !d.IsValid() {
		return Point{}
	}
	return directionDeltas[d]
}

func (d Direction) rotate(steps int) Direction {
	if !d.IsValid() {
		return d
	}
	return Direction((int(d) + steps + 8) % 8)
}

// Left45 turns counter-clockwise by one eighth of a turn
func (d Direction) Left45() Direction { return d.rotate(-1) }

// Right45 turns clockwise by one eighth of a turn
func (d Direction) Right45() Direction { return d.rotate(1) }

// DirectionOf returns the direction whose step has the same signs as delta.
// The zero delta maps to None.
func DirectionOf(delta Point) Direction {
	step := Point{X: sign(delta.X), Y: sign(delta.Y)}
	for d, v := range directionDeltas {
		if v == step {
			return Direction(d)
		}
	}
	return None
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
