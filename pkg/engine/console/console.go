// Package console implements a line-oriented REPL driver for the Gungi
// engine, the demo front-end named in the spec's external interfaces (not
// part of the rule-engine core: a thin host over pkg/engine).
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hkpeprah/gungi/pkg/engine"
	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements a line-oriented Gungi console for debugging and for
// interactive play. Recognised commands: d (drop), m (move), i (immobile
// strike), fr/nfr (accept/decline forced recovery), s (substitution), t
// (1-3 tier exchange), q/quit.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string
}

// NewDriver starts a driver reading commands from in and writing rendered
// output to the returned channel, until in is closed or a quit command is
// received.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			if d.dispatch(ctx, strings.TrimSpace(line)) {
				return
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch runs one command line and reports whether the driver should
// stop.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true

	case "d":
		d.drop(ctx, args)

	case "m":
		d.move(ctx, args)

	case "i":
		d.immobileStrike(ctx, args)

	case "fr":
		d.forceRecover(ctx, true)

	case "nfr":
		d.forceRecover(ctx, false)

	case "s":
		d.substitute(ctx, args)

	case "t":
		d.tierExchange(ctx, args)

	case "export":
		d.out <- d.e.Export(ctx)

	default:
		d.out <- fmt.Sprintf("unrecognized command: %q", line)
	}
	return false
}

func (d *Driver) drop(ctx context.Context, args []string) {
	if len(args) != 2 || len(args[0]) != 2 {
		d.out <- "usage: d <FfBb> <c-r>"
		return
	}

	front, back := gungi.PieceFromGN(args[0][0]), gungi.PieceFromGN(args[0][1])
	to, ok := parsePosn(args[1])
	if !ok {
		d.out <- fmt.Sprintf("invalid square: %q", args[1])
		return
	}

	d.report(ctx, d.e.Drop(ctx, front, back, to))
}

func (d *Driver) move(ctx context.Context, args []string) {
	if len(args) != 2 {
		d.out <- "usage: m <c-r-t> <c-r>"
		return
	}

	from, fromTier, ok := parsePosnTier(args[0])
	to, ok2 := parsePosn(args[1])
	if !ok || !ok2 {
		d.out <- "invalid square"
		return
	}

	d.report(ctx, d.e.Move(ctx, from, fromTier, to))
}

func (d *Driver) immobileStrike(ctx context.Context, args []string) {
	if len(args) != 2 {
		d.out <- "usage: i <c-r-t> <t>"
		return
	}

	from, strikerTier, ok := parsePosnTier(args[0])
	targetTier, err := strconv.Atoi(args[1])
	if !ok || err != nil {
		d.out <- "invalid arguments"
		return
	}

	d.report(ctx, d.e.ImmobileStrike(ctx, from, strikerTier, targetTier))
}

func (d *Driver) forceRecover(ctx context.Context, recover bool) {
	d.report(ctx, d.e.ForceRecover(ctx, recover))
}

func (d *Driver) substitute(ctx context.Context, args []string) {
	if len(args) != 2 {
		d.out <- "usage: s <c-r-t> <c-r-t>"
		return
	}

	from, fromTier, ok := parsePosnTier(args[0])
	to, toTier, ok2 := parsePosnTier(args[1])
	if !ok || !ok2 {
		d.out <- "invalid square"
		return
	}

	d.report(ctx, d.e.Substitute(ctx, from, fromTier, to, toTier))
}

func (d *Driver) tierExchange(ctx context.Context, args []string) {
	if len(args) != 2 {
		d.out <- "usage: t <c-r-t> <t>"
		return
	}

	from, fromTier, ok := parsePosnTier(args[0])
	toTier, err := strconv.Atoi(args[1])
	if !ok || err != nil {
		d.out <- "invalid arguments"
		return
	}

	d.report(ctx, d.e.TierExchange(ctx, from, fromTier, toTier))
}

// report prints the outcome of a mutating command and the board if it
// succeeded.
func (d *Driver) report(ctx context.Context, err gungi.Error) {
	if !err.OK() {
		d.out <- fmt.Sprintf("rejected: %v", err)
		return
	}
	d.printBoard(ctx)
}

func (d *Driver) printBoard(ctx context.Context) {
	d.out <- ""
	d.out <- d.e.String()
	d.out <- fmt.Sprintf("turn: %v", turnColour(d.e.State()))
	if winner, ok := d.e.Winner(); ok {
		d.out <- fmt.Sprintf("winner: %v", winner)
	}
	d.out <- ""
}

func turnColour(s gungi.GameState) gungi.Colour {
	if s&gungi.StateTurnWhite != 0 {
		return gungi.White
	}
	return gungi.Black
}

// parsePosn parses a "<col>-<row>" token.
func parsePosn(tok string) (gungi.Posn, bool) {
	parts := strings.Split(tok, "-")
	if len(parts) != 2 {
		return gungi.Posn{}, false
	}
	col, err1 := strconv.Atoi(parts[0])
	row, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return gungi.Posn{}, false
	}
	return gungi.NewPosn(col, row), true
}

// parsePosnTier parses a "<col>-<row>-<tier>" token.
func parsePosnTier(tok string) (gungi.Posn, int, bool) {
	parts := strings.Split(tok, "-")
	if len(parts) != 3 {
		return gungi.Posn{}, 0, false
	}
	col, err1 := strconv.Atoi(parts[0])
	row, err2 := strconv.Atoi(parts[1])
	tier, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return gungi.Posn{}, 0, false
	}
	return gungi.NewPosn(col, row), tier, true
}
