package fluid

// SpatialGrid buckets particle indices into square cells so radius queries
// only visit neighbouring cells. The domain is not toroidal; positions
// outside it are clamped to the border cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]int32 // flat grid of particle index lists
}

// NewSpatialGrid creates a spatial grid covering the given domain size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all particles from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds particle index i at the given position.
func (g *SpatialGrid) Insert(i int, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], int32(i))
}

// Rebuild clears the grid and inserts every particle.
func (g *SpatialGrid) Rebuild(particles []Particle) {
	g.Clear()
	for i := range particles {
		g.Insert(i, particles[i].X, particles[i].Y)
	}
}

// QueryRadiusInto appends to dst the indices of particles within radius of
// (x, y), excluding the particle with index exclude. drift is an upper bound
// on how far any particle has moved since the last Rebuild; the cell search
// widens by it while the distance test uses current positions. Reuse dst
// across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []int32, particles []Particle, x, y, radius, drift float32, exclude int) []int32 {
	cellRadius := int((radius+drift)/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(x, y)
	radiusSq := radius * radius

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, j := range g.cells[row*g.cols+col] {
				if int(j) == exclude {
					continue
				}
				q := particles[j]
				dx := q.X - x
				dy := q.Y - y
				if dx*dx+dy*dy < radiusSq {
					dst = append(dst, j)
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float32) (int, int) {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if x < 0 || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if y < 0 || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
