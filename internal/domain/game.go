// Package domain implements the Hasami Shogi rules core: the 9x9 board,
// rook-style move validation, custodian capture resolution and the
// turn/termination state machine. It performs no I/O and holds no state
// beyond a single Game value.
package domain

import "errors"

// Status describes whether the game is still running or who won.
type Status uint8

const (
	Unfinished Status = iota
	BlackWon
	RedWon
)

func (s Status) String() string {
	switch s {
	case BlackWon:
		return "BLACK_WON"
	case RedWon:
		return "RED_WON"
	default:
		return "UNFINISHED"
	}
}

// Errors returned by domain operations.
var (
	ErrInvalidFormat       = errors.New("invalid position format")
	ErrOutOfBounds         = errors.New("position out of bounds")
	ErrIllegalDirection    = errors.New("move must be straight and non-zero")
	ErrNotOwned            = errors.New("source is not the active player's piece")
	ErrDestinationOccupied = errors.New("destination occupied")
	ErrPathBlocked         = errors.New("path blocked")
	ErrGameOver            = errors.New("game already over")
)

// Game holds the full state of a Hasami Shogi match. The zero value is not
// usable; start games with New.
type Game struct {
	Board Board
	Turn  Occupant
	// Captured counts pieces removed per color, indexed by Occupant.
	Captured [3]int
}

// Outcome reports the effect of an accepted move.
type Outcome struct {
	Captured int
	Status   Status
}

// New returns a game in the initial configuration with Black to move.
func New() Game {
	return Game{Board: newBoard(), Turn: Black}
}

// ActivePlayer returns the color whose turn it is.
func (g *Game) ActivePlayer() Occupant { return g.Turn }

// CapturedCount returns how many pieces of the given color have been captured.
func (g *Game) CapturedCount(o Occupant) int { return g.Captured[o] }

// At returns the occupant of a cell.
func (g *Game) At(p Position) (Occupant, error) { return g.Board.At(p) }

// GameStatus derives the status from the remaining piece counts: a color
// reduced to one piece or fewer has lost.
func (g *Game) GameStatus() Status {
	black := g.Board.count(Black)
	red := g.Board.count(Red)
	switch {
	case black > 1 && red > 1:
		return Unfinished
	case black > 1:
		return BlackWon
	default:
		return RedWon
	}
}

// Move validates and applies a move given in addressing form (e.g. "b3",
// "b9"), resolves captures from the destination and flips the turn. On
// rejection the game is left untouched and the first applicable reason is
// returned. The turn does not flip on the move that ends the game.
func (g *Game) Move(from, to string) (Outcome, error) {
	if g.GameStatus() != Unfinished {
		return Outcome{}, ErrGameOver
	}
	src, dst, err := g.validate(from, to)
	if err != nil {
		return Outcome{}, err
	}

	mover := g.Board[src.Rank][src.File]
	g.Board.set(dst, mover)
	g.Board.set(src, Empty)
	captured := g.resolveCaptures(dst, mover)

	status := g.GameStatus()
	if status == Unfinished {
		g.Turn = mover.Opponent()
	}
	return Outcome{Captured: captured, Status: status}, nil
}

// validate runs the legality checks in their fixed reporting order:
// format, direction, ownership, destination, path clearance.
func (g *Game) validate(from, to string) (src, dst Position, err error) {
	if src, err = ParsePosition(from); err != nil {
		return
	}
	if dst, err = ParsePosition(to); err != nil {
		return
	}
	if (src.Rank != dst.Rank) == (src.File != dst.File) {
		// diagonal, or zero-length
		err = ErrIllegalDirection
		return
	}
	if g.Board[src.Rank][src.File] != g.Turn {
		err = ErrNotOwned
		return
	}
	if g.Board[dst.Rank][dst.File] != Empty {
		err = ErrDestinationOccupied
		return
	}
	step := direction(src, dst)
	for p := src.add(step); p != dst; p = p.add(step) {
		if g.Board[p.Rank][p.File] != Empty {
			err = ErrPathBlocked
			return
		}
	}
	return
}

// direction returns the unit step from src towards dst along their
// shared rank or file.
func direction(src, dst Position) Position {
	return Position{Rank: sign(dst.Rank - src.Rank), File: sign(dst.File - src.File)}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
