package domain

// cardinals are the four orthogonal scan directions.
var cardinals = [4]Position{{Rank: -1}, {Rank: 1}, {File: -1}, {File: 1}}

// corners are the four cells with only two orthogonal neighbors.
var corners = [4]Position{{0, 0}, {0, Size - 1}, {Size - 1, 0}, {Size - 1, Size - 1}}

// resolveCaptures removes every enemy piece captured by the piece just
// placed at dst and returns how many were taken. Directional scans and the
// corner rule are independent; one move can capture in several directions
// and a corner at once.
func (g *Game) resolveCaptures(dst Position, mover Occupant) int {
	enemy := mover.Opponent()
	captured := 0
	for _, dir := range cardinals {
		captured += g.captureRun(dst, dir, mover, enemy)
	}
	captured += g.captureCorner(dst, mover, enemy)
	g.Captured[enemy] += captured
	return captured
}

// captureRun scans outward from dst one cell at a time. A maximal run of
// enemy pieces closed by a friendly piece is removed; a run that reaches an
// empty cell or the board edge is left alone. Only the fresh flank created
// by the moved piece captures, so standing sandwiches stay safe.
func (g *Game) captureRun(dst, dir Position, mover, enemy Occupant) int {
	run := 0
	for p := dst.add(dir); p.onBoard(); p = p.add(dir) {
		switch g.Board[p.Rank][p.File] {
		case enemy:
			run++
		case mover:
			for q := dst.add(dir); q != p; q = q.add(dir) {
				g.Board.set(q, Empty)
			}
			return run
		default:
			return 0
		}
	}
	return 0
}

// captureCorner handles the geometry the directional scans cannot reach: an
// enemy piece on a corner cell is taken when the mover lands on one of the
// corner's two orthogonal neighbors while the other already holds a friendly
// piece. Checked for all four corners; an enemy moving into an already
// flanked corner is not captured.
func (g *Game) captureCorner(dst Position, mover, enemy Occupant) int {
	for _, c := range corners {
		a, b := cornerNeighbors(c)
		var other Position
		switch dst {
		case a:
			other = b
		case b:
			other = a
		default:
			continue
		}
		if g.Board[c.Rank][c.File] == enemy && g.Board[other.Rank][other.File] == mover {
			g.Board.set(c, Empty)
			return 1
		}
	}
	return 0
}

// cornerNeighbors returns the two orthogonal neighbors of a corner cell.
func cornerNeighbors(c Position) (Position, Position) {
	dr, df := 1, 1
	if c.Rank == Size-1 {
		dr = -1
	}
	if c.File == Size-1 {
		df = -1
	}
	return Position{Rank: c.Rank + dr, File: c.File}, Position{Rank: c.Rank, File: c.File + df}
}
