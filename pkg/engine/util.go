package engine

import (
	"bufio"
	"context"
	"fmt"
	"github.com/seekerror/logw"
	"os"
)

// ReadConsoleCommands reads one console.Driver command per stdin line into a
// chan. Async, so the REPL's input loop runs independently of whatever the
// driver is doing with the previous line.
func ReadConsoleCommands(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteConsoleReplies writes a console.Driver's reply lines to stdout.
func WriteConsoleReplies(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
