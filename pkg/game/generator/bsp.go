package generator

import (
	"math/rand"

	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/level"
)

// BSPGenerator generates maps using Binary Space Partitioning
type BSPGenerator struct {
	rng *rand.Rand
}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	x, y, width, height int
}

func (r *bspRoom) centre() world.Point {
	return world.Pt(r.x+r.width/2, r.y+r.height/2)
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 4 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge
)

// Generate creates a new level using the BSP algorithm
func (g *BSPGenerator) Generate(depth int) (*level.Level, error) {
	depth = max(depth, 1)

	// Start small and scale grid size with depth (add 2 for perimeter)
	// Depth 1: 32x18, Depth 5: 56x34, capped at 100x60
	width := min(26+depth*6, 100)
	height := min(14+depth*4, 60)

	grid := filledGrid(width, height)
	inRoom := make([]bool, width*height)

	// Create BSP tree (leaving 1 cell border for perimeter walls)
	root := &bspNode{
		x:      1,
		y:      1,
		width:  width - 2,
		height: height - 2,
	}

	// More splits at greater depths for more rooms
	minSize := max(minNodeSize-depth/3, 6)
	g.splitBSP(root, minSize)

	g.createRooms(root)
	carveRooms(grid, inRoom, root)
	g.connectRooms(grid, root)
	placeDoors(grid, inRoom)

	rooms := collectRooms(root)
	start := rooms[g.rng.Intn(len(rooms))].centre()

	var candidates []world.Point
	grid.ForEachCell(func(c *world.Cell) {
		if inRoom[c.Pos.X+c.Pos.Y*width] {
			candidates = append(candidates, c.Pos)
		}
	})

	return populate(g.rng, grid, start, candidates, depth)
}

// splitBSP recursively splits a BSP node
func (g *BSPGenerator) splitBSP(node *bspNode, minSize int) {
	if node.width < minSize*2 && node.height < minSize*2 {
		return // Too small to split
	}

	// Decide split direction
	var splitHorizontal bool
	switch {
	case node.width > node.height && node.width >= minSize*2:
		splitHorizontal = false
	case node.height > node.width && node.height >= minSize*2:
		splitHorizontal = true
	case node.width >= minSize*2 && node.height >= minSize*2:
		splitHorizontal = g.rng.Intn(2) == 0
	case node.width >= minSize*2:
		splitHorizontal = false
	default:
		splitHorizontal = true
	}

	if splitHorizontal {
		// Split horizontally (top and bottom)
		splitPoint := minSize + g.rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		// Split vertically (left and right)
		splitPoint := minSize + g.rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	g.splitBSP(node.left, minSize)
	g.splitBSP(node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func (g *BSPGenerator) createRooms(node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			g.createRooms(node.left)
		}
		if node.right != nil {
			g.createRooms(node.right)
		}
		return
	}

	roomWidth := min(minRoomSize+g.rng.Intn(node.width-minRoomSize-roomPadding+1), node.width-roomPadding)
	roomHeight := min(minRoomSize+g.rng.Intn(node.height-minRoomSize-roomPadding+1), node.height-roomPadding)

	node.room = &bspRoom{
		x:      node.x + g.rng.Intn(node.width-roomWidth),
		y:      node.y + g.rng.Intn(node.height-roomHeight),
		width:  roomWidth,
		height: roomHeight,
	}
}

// carveRooms turns room cells into floor and marks them in inRoom
func carveRooms(grid *world.Grid, inRoom []bool, node *bspNode) {
	if r := node.room; r != nil {
		for y := r.y; y < r.y+r.height; y++ {
			for x := r.x; x < r.x+r.width; x++ {
				grid.SetTile(world.Pt(x, y), world.TileFloor)
				inRoom[x+y*grid.Width()] = true
			}
		}
	}

	if node.left != nil {
		carveRooms(grid, inRoom, node.left)
	}
	if node.right != nil {
		carveRooms(grid, inRoom, node.right)
	}
}

// connectRooms joins one room from each subtree with an L-shaped corridor
func (g *BSPGenerator) connectRooms(grid *world.Grid, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := g.getRoom(node.left)
	rightRoom := g.getRoom(node.right)

	if leftRoom != nil && rightRoom != nil {
		from, to := leftRoom.centre(), rightRoom.centre()
		if g.rng.Intn(2) == 0 {
			// Horizontal first, then vertical
			carveCorridorHorizontal(grid, from.Y, from.X, to.X)
			carveCorridorVertical(grid, to.X, from.Y, to.Y)
		} else {
			// Vertical first, then horizontal
			carveCorridorVertical(grid, from.X, from.Y, to.Y)
			carveCorridorHorizontal(grid, to.Y, from.X, to.X)
		}
	}

	g.connectRooms(grid, node.left)
	g.connectRooms(grid, node.right)
}

func carveCorridorHorizontal(grid *world.Grid, y, startX, endX int) {
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		grid.SetTile(world.Pt(x, y), world.TileFloor)
	}
}

func carveCorridorVertical(grid *world.Grid, x, startY, endY int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		grid.SetTile(world.Pt(x, y), world.TileFloor)
	}
}

// placeDoors puts a closed door on each corridor cell that enters a room
// through a one-cell gap in a wall.
func placeDoors(grid *world.Grid, inRoom []bool) {
	room := func(p world.Point) bool {
		return grid.IsInBounds(p) && inRoom[p.X+p.Y*grid.Width()]
	}
	wall := func(p world.Point) bool {
		c := grid.Cell(p)
		return c == nil || c.Tile == world.TileWall
	}
	floor := func(p world.Point) bool {
		c := grid.Cell(p)
		return c != nil && c.Tile == world.TileFloor
	}
	nearDoor := func(p world.Point) bool {
		for _, dir := range world.AllDirections() {
			if c := grid.Cell(p.Add(dir.Delta())); c != nil && c.IsDoor() {
				return true
			}
		}
		return false
	}

	grid.ForEachCell(func(c *world.Cell) {
		p := c.Pos
		if c.Tile != world.TileFloor || room(p) || nearDoor(p) {
			return
		}
		n, s := p.Add(world.North.Delta()), p.Add(world.South.Delta())
		e, w := p.Add(world.East.Delta()), p.Add(world.West.Delta())

		verticalGap := wall(e) && wall(w) && floor(n) && floor(s) && (room(n) || room(s))
		horizontalGap := wall(n) && wall(s) && floor(e) && floor(w) && (room(e) || room(w))
		if verticalGap || horizontalGap {
			c.Tile = world.TileDoorClosed
		}
	})
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func (g *BSPGenerator) getRoom(node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *bspRoom
	if node.left != nil {
		leftRoom = g.getRoom(node.left)
	}
	if node.right != nil {
		rightRoom = g.getRoom(node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if g.rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}

	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom

	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}

	return rooms
}
