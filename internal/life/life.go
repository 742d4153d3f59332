// Package life is Conway's Game of Life (B3/S23) on a fixed-size grid that either wraps
// at the edges or treats everything outside as dead.
package life

import (
	"fmt"
	"math/rand"
)

// Grid holds the current generation and a scratch buffer for the next one.
type Grid struct {
	W, H int
	Wrap bool

	cells      []bool
	next       []bool
	generation int
}

// New returns an empty grid. Sizes below 1 are raised to 1.
func New(w, h int, wrap bool) *Grid {
	w, h = max(w, 1), max(h, 1)
	return &Grid{
		W:     w,
		H:     h,
		Wrap:  wrap,
		cells: make([]bool, w*h),
		next:  make([]bool, w*h),
	}
}

func (g *Grid) index(x, y int) (int, bool) {
	if g.Wrap {
		x = ((x % g.W) + g.W) % g.W
		y = ((y % g.H) + g.H) % g.H
	} else if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0, false
	}
	return y*g.W + x, true
}

// Alive reports the state of a cell. Off-grid cells are dead unless the grid wraps.
func (g *Grid) Alive(x, y int) bool {
	i, ok := g.index(x, y)
	return ok && g.cells[i]
}

// Set changes one cell; off-grid writes on a non-wrapping grid are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if i, ok := g.index(x, y); ok {
		g.cells[i] = alive
	}
}

// Toggle flips one cell.
func (g *Grid) Toggle(x, y int) {
	if i, ok := g.index(x, y); ok {
		g.cells[i] = !g.cells[i]
	}
}

// Clear kills every cell and resets the generation counter.
func (g *Grid) Clear() {
	clear(g.cells)
	g.generation = 0
}

// Randomize seeds every cell alive with probability density.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.cells {
		g.cells[i] = rng.Float64() < density
	}
	g.generation = 0
}

// Neighbors counts the live cells around (x, y).
func (g *Grid) Neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && g.Alive(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// Step advances one generation: a dead cell with three neighbours is born, a live cell
// with two or three survives, every other cell dies.
func (g *Grid) Step() {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			n := g.Neighbors(x, y)
			alive := g.cells[y*g.W+x]
			g.next[y*g.W+x] = n == 3 || (alive && n == 2)
		}
	}
	g.cells, g.next = g.next, g.cells
	g.generation++
}

// Generation is the number of Steps since the last Clear or Randomize.
func (g *Grid) Generation() int { return g.generation }

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Stamp sets the live cells of p with its top-left corner at (x, y).
func (g *Grid) Stamp(p Pattern, x, y int) {
	for _, c := range p.Cells {
		g.Set(x+c[0], y+c[1], true)
	}
}

// String renders the grid with '#' for live and '.' for dead cells, one row per line.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.cells[y*g.W+x] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// Pattern is a named set of live cell offsets.
type Pattern struct {
	Name  string
	Cells [][2]int
}

// Size returns the pattern's bounding box.
func (p Pattern) Size() (w, h int) {
	for _, c := range p.Cells {
		w, h = max(w, c[0]+1), max(h, c[1]+1)
	}
	return w, h
}

// ParsePattern reads rows of '#' (or 'O') and '.' into a pattern.
func ParsePattern(name string, rows ...string) Pattern {
	p := Pattern{Name: name}
	for y, row := range rows {
		for x, r := range row {
			if r == '#' || r == 'O' {
				p.Cells = append(p.Cells, [2]int{x, y})
			}
		}
	}
	return p
}

var patterns = []Pattern{
	ParsePattern("blinker", "###"),
	ParsePattern("glider", ".#.", "..#", "###"),
	ParsePattern("pulsar",
		"..###...###..",
		".............",
		"#....#.#....#",
		"#....#.#....#",
		"#....#.#....#",
		"..###...###..",
		".............",
		"..###...###..",
		"#....#.#....#",
		"#....#.#....#",
		"#....#.#....#",
		".............",
		"..###...###..",
	),
	ParsePattern("gun",
		"........................#...........",
		"......................#.#...........",
		"............##......##............##",
		"...........#...#....##............##",
		"##........#.....#...##..............",
		"##........#...#.##....#.#...........",
		"..........#.....#.......#...........",
		"...........#...#....................",
		"............##......................",
	),
}

// Patterns returns the built-in patterns.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// FindPattern looks a built-in pattern up by name.
func FindPattern(name string) (Pattern, error) {
	for _, p := range patterns {
		if p.Name == name {
			return p, nil
		}
	}
	return Pattern{}, fmt.Errorf("life: unknown pattern %q", name)
}
