// Command hasami plays a local two-seat Hasami Shogi match in the terminal.
package main

import (
	"os"

	"github.com/jaminalder/hasami-shogi/internal/cli"
	"github.com/jaminalder/hasami-shogi/internal/domain"
)

func main() {
	game := domain.New()
	cli.Run(os.Stdin, os.Stdout, &game)
}
