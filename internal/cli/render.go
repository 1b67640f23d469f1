// Package cli renders boards for terminals and drives an interactive
// match over an io.Reader/Writer pair. It consumes only the read-only
// query surface of the rules core.
package cli

import (
	"strings"

	"github.com/jaminalder/hasami-shogi/internal/domain"
)

// ANSI sequences matching the traditional yellow-board look.
const (
	boardLegend = "\x1b[34;43m" // blue on yellow
	blackPiece  = "\x1b[30;43m" // black on yellow
	redPiece    = "\x1b[31;43m" // red on yellow
	emptyCell   = "\x1b[1;43m"
	reset       = "\x1b[0m"
)

// Render returns the colored board with a file legend on top and rank
// letters down the side.
func Render(g *domain.Game) string {
	var sb strings.Builder
	sb.WriteString(boardLegend + "  1 2 3 4 5 6 7 8 9 " + reset + "\n")
	for r := 0; r < domain.Size; r++ {
		sb.WriteString(boardLegend + string(rune('a'+r)) + " " + reset)
		for f := 0; f < domain.Size; f++ {
			switch g.Board[r][f] {
			case domain.Black:
				sb.WriteString(blackPiece + "B " + reset)
			case domain.Red:
				sb.WriteString(redPiece + "R " + reset)
			default:
				sb.WriteString(emptyCell + ". " + reset)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
