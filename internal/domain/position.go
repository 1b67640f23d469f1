package domain

// Size is the board edge length.
const Size = 9

// Position addresses a board cell by rank (row) and file (column), both 0..8.
type Position struct {
	Rank int
	File int
}

// ParsePosition parses the two-character addressing form: a rank letter
// 'a'..'i' followed by a file digit '1'..'9', e.g. "i7".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, ErrInvalidFormat
	}
	if s[0] < 'a' || s[0] > 'i' || s[1] < '1' || s[1] > '9' {
		return Position{}, ErrInvalidFormat
	}
	return Position{Rank: int(s[0] - 'a'), File: int(s[1] - '1')}, nil
}

// String returns the addressing form of the position.
func (p Position) String() string {
	return string([]byte{byte('a' + p.Rank), byte('1' + p.File)})
}

func (p Position) onBoard() bool {
	return p.Rank >= 0 && p.Rank < Size && p.File >= 0 && p.File < Size
}

func (p Position) add(d Position) Position {
	return Position{Rank: p.Rank + d.Rank, File: p.File + d.File}
}
