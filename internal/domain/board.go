package domain

// Occupant represents what sits on a board cell.
type Occupant uint8

const (
	Empty Occupant = iota
	Black
	Red
)

// Opponent returns the opposing color. Empty has no opponent and maps to itself.
func (o Occupant) Opponent() Occupant {
	switch o {
	case Black:
		return Red
	case Red:
		return Black
	default:
		return Empty
	}
}

// String returns the game's own vocabulary for the occupant.
func (o Occupant) String() string {
	switch o {
	case Black:
		return "BLACK"
	case Red:
		return "RED"
	default:
		return "NONE"
	}
}

// Board is a fixed 9x9 grid of occupants, indexed [rank][file].
type Board [Size][Size]Occupant

// newBoard fills rank 0 with Black and rank 8 with Red, nine men each.
func newBoard() Board {
	var b Board
	for f := 0; f < Size; f++ {
		b[0][f] = Black
		b[Size-1][f] = Red
	}
	return b
}

// At returns the occupant of a cell, or ErrOutOfBounds for positions
// outside the grid.
func (b *Board) At(p Position) (Occupant, error) {
	if !p.onBoard() {
		return Empty, ErrOutOfBounds
	}
	return b[p.Rank][p.File], nil
}

// set writes a single cell. Rule checks belong to the callers.
func (b *Board) set(p Position, o Occupant) {
	b[p.Rank][p.File] = o
}

func (b *Board) count(o Occupant) int {
	n := 0
	for r := 0; r < Size; r++ {
		for f := 0; f < Size; f++ {
			if b[r][f] == o {
				n++
			}
		}
	}
	return n
}
