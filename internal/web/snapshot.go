package web

import (
	"encoding/json"

	"github.com/jaminalder/hasami-shogi/internal/app"
	"github.com/jaminalder/hasami-shogi/internal/domain"
)

// Snapshot is the wire representation of a game: nine rank strings of
// 'B', 'R' and '.' runes, rank 'a' first.
type Snapshot struct {
	ID            string   `json:"id"`
	Board         []string `json:"board"`
	Turn          string   `json:"turn"`
	Status        string   `json:"status"`
	CapturedBlack int      `json:"capturedBlack"`
	CapturedRed   int      `json:"capturedRed"`
}

func makeSnapshot(gs app.GameState) Snapshot {
	rows := make([]string, domain.Size)
	for r := 0; r < domain.Size; r++ {
		var row [domain.Size]byte
		for f := 0; f < domain.Size; f++ {
			switch gs.Game.Board[r][f] {
			case domain.Black:
				row[f] = 'B'
			case domain.Red:
				row[f] = 'R'
			default:
				row[f] = '.'
			}
		}
		rows[r] = string(row[:])
	}
	return Snapshot{
		ID:            gs.ID,
		Board:         rows,
		Turn:          gs.Game.ActivePlayer().String(),
		Status:        gs.Game.GameStatus().String(),
		CapturedBlack: gs.Game.CapturedCount(domain.Black),
		CapturedRed:   gs.Game.CapturedCount(domain.Red),
	}
}

// renderSnapshot is the broadcast renderer installed on the service.
func renderSnapshot(gs app.GameState) []byte {
	b, _ := json.Marshal(makeSnapshot(gs))
	return b
}
