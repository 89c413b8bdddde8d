// Command gungi is the interactive demo front-end for the rule engine: a
// line-oriented REPL over pkg/engine/console, with optional GN document
// import/export. It is explicitly out of the rule engine's scope (spec
// section 1's "external collaborators, contracts only"); it exists the way
// the teacher engine carries its own cmd/morlock demo binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hkpeprah/gungi/pkg/engine"
	"github.com/hkpeprah/gungi/pkg/engine/console"
	"github.com/seekerror/logw"
)

// Exit codes distinguish the CLI argument/file error classes spec section 6
// requires. A missing flag value is caught by the flag package itself,
// which exits 2; an unreadable input file and a malformed GN document are
// reported with distinct codes of our own.
const (
	exitUnreadableInput = 3
	exitMalformedInput  = 4
)

var (
	output   = flag.String("output", "", "Write the final game record to FILE on exit")
	input    = flag.String("input", "", "Replay the game record in FILE before starting")
	location = flag.String("location", "", "Location recorded in the game header")
	event    = flag.String("event", "", "Event name recorded in the game header")
	white    = flag.String("white", "", "White player's name")
	black    = flag.String("black", "", "Black player's name")
)

func init() {
	flag.StringVar(output, "o", "", "Alias for -output")
	flag.StringVar(input, "i", "", "Alias for -input")
	flag.StringVar(location, "l", "", "Alias for -location")
	flag.StringVar(event, "e", "", "Alias for -event")
	flag.StringVar(white, "w", "", "Alias for -white")
	flag.StringVar(black, "b", "", "Alias for -black")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: gungi [options]

gungi is an interactive driver for the Gungi rule engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, engine.WithName("Gungi"), engine.WithAuthor("hkpeprah"))
	e.Metadata().SetLocation(*location)
	e.Metadata().SetEvent(*event)
	e.Metadata().SetWhite(*white)
	e.Metadata().SetBlack(*black)

	if *input != "" {
		doc, err := os.ReadFile(*input)
		if err != nil {
			logw.Errorf(ctx, "Cannot read input file %v: %v", *input, err)
			os.Exit(exitUnreadableInput)
		}
		if err := e.Import(ctx, string(doc)); err != nil {
			logw.Errorf(ctx, "Malformed GN document %v: %v", *input, err)
			os.Exit(exitMalformedInput)
		}
	}

	in := engine.ReadConsoleCommands(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteConsoleReplies(ctx, out)

	<-driver.Closed()

	if *output != "" {
		if err := os.WriteFile(*output, []byte(e.Export(ctx)), 0644); err != nil {
			logw.Errorf(ctx, "Cannot write output file %v: %v", *output, err)
			os.Exit(exitUnreadableInput)
		}
	}
}
