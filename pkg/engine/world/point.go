package world

import "fmt"

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Point identifies a grid cell by column (X) and row (Y).
// Y grows downwards, so North is negative Y.
type Point struct{ X, Y int }

// Add returns the component-wise sum of two points.
func (p Point) Add(other Point) Point {
	p.X += other.X
	p.Y += other.Y
	return p
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(other Point) Point {
	p.X -= other.X
	p.Y -= other.Y
	return p
}

// Mul scales both components by k.
func (p Point) Mul(k int) Point {
	p.X *= k
	p.Y *= k
	return p
}

// LengthSquared returns x*x + y*y.
func (p Point) LengthSquared() int {
	return p.X*p.X + p.Y*p.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
