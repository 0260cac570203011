package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"alinea/game"
	"alinea/gamemaster"
)

const help = `commands:
  place N    place a piece on node N
  select N   pick your piece on node N
  move N     move the selected piece to node N
  state      show the board
  quit       leave the game`

// Console lets a human play the human seat from line based input. The
// computer's turns are played as soon as they come up.
type Console struct {
	controller *gamemaster.Controller
	in         *bufio.Scanner
	out        io.Writer
}

func NewConsole(controller *gamemaster.Controller, in io.Reader, out io.Writer) *Console {
	return &Console{
		controller: controller,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Play runs until the game ends, the input ends or the human quits.
func (p *Console) Play() error {
	fmt.Fprintln(p.out, help)
	p.show()

	for {
		s := p.controller.CurrentState()
		if s.Over() {
			fmt.Fprintln(p.out, outcome(s))
			return nil
		}

		if s.Turn == game.Computer {
			if _, err := p.controller.AdvanceComputerTurn(); err != nil {
				return err
			}
			history := p.controller.History()
			fmt.Fprintf(p.out, "computer plays %s\n", history[len(history)-1].Action)
			p.show()
			continue
		}

		fmt.Fprintf(p.out, "%s (%s) > ", s.Turn, s.Phase)
		if !p.in.Scan() {
			return p.in.Err()
		}
		quit, err := p.execute(p.in.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(p.out, err)
		}
	}
}

// execute runs one command line. Invalid input is reported, never fatal.
func (p *Console) execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "state":
		p.show()
		return false, nil
	case "help":
		fmt.Fprintln(p.out, help)
		return false, nil
	}

	if len(fields) != 2 {
		return false, errors.New("expected a command and a node, try help")
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return false, fmt.Errorf("bad node %q", fields[1])
	}
	n := game.Node(id)

	switch fields[0] {
	case "place":
		err = p.controller.SubmitPlacement(n)
	case "select":
		err = p.controller.SubmitSelect(n)
	case "move":
		err = p.controller.SubmitMoveTo(n)
	default:
		return false, fmt.Errorf("unknown command %q, try help", fields[0])
	}
	if err == nil && fields[0] != "select" {
		p.show()
	}
	return false, err
}

func (p *Console) show() {
	s := p.controller.CurrentState()
	fmt.Fprint(p.out, Render(s.Cells))
	fmt.Fprintln(p.out, s)
}

func outcome(s gamemaster.Snapshot) string {
	if s.Status == gamemaster.Won {
		if s.Winner == game.Human {
			return "you win!"
		}
		return "the computer wins"
	}
	return "draw"
}
