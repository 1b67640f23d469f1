package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jaminalder/hasami-shogi/internal/domain"
)

// Run plays a match interactively: prompt for the from and to squares,
// apply the move, report rejections and captures, and repeat until the
// game ends or the input runs dry.
func Run(in io.Reader, out io.Writer, g *domain.Game) {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, Render(g))
	for g.GameStatus() == domain.Unfinished {
		fmt.Fprintf(out, "It is %s's turn\n", g.ActivePlayer())
		fmt.Fprint(out, "Enter the piece position you want to move from: ")
		from, ok := readField(sc)
		if !ok {
			return
		}
		fmt.Fprint(out, "Enter the piece position you want to move to: ")
		to, ok := readField(sc)
		if !ok {
			return
		}
		outcome, err := g.Move(from, to)
		if err != nil {
			fmt.Fprintf(out, "illegal move: %v\n", err)
			continue
		}
		if outcome.Captured > 0 {
			fmt.Fprintf(out, "captured %d piece(s)\n", outcome.Captured)
		}
		fmt.Fprint(out, Render(g))
	}
	fmt.Fprintln(out, g.GameStatus())
}

func readField(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}
