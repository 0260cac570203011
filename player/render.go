package player

import (
	"fmt"
	"strings"

	"alinea/game"
)

// layout draws the standard graph: the top line, the middle row hanging off
// node 4 and the bottom line, joined through nodes 1, 4 and 8.
var layout = []string{
	"%s---%s---%s",
	"    |",
	"%s---%s---%s---%s",
	"    |",
	"%s---%s---%s",
}

func symbol(p game.Player) string {
	switch p {
	case game.Human:
		return "X"
	case game.Computer:
		return "O"
	default:
		return "."
	}
}

// Render draws cells, X for the human and O for the computer.
func Render(cells []game.Player) string {
	args := make([]any, len(cells))
	for i, p := range cells {
		args[i] = symbol(p)
	}

	return fmt.Sprintf(strings.Join(layout, "\n"), args...) + "\n"
}
