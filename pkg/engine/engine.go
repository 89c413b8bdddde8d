// Package engine wraps the Gungi rule engine in a mutex-guarded,
// context-logged facade suitable for embedding behind a host surface (a
// console driver, a network handler, a CLI) that may call it from more than
// one goroutine across different game instances.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hkpeprah/gungi/pkg/gn"
	"github.com/hkpeprah/gungi/pkg/gungi"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation options.
type Options struct {
	// Name identifies the engine instance in logs and Name().
	Name string
	// Author is the party responsible for the instance; purely informational.
	Author string
}

func (o Options) String() string {
	return fmt.Sprintf("{name=%v, author=%v}", o.Name, o.Author)
}

// Option is an engine creation option.
type Option func(*Engine)

// WithName overrides the default engine name.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// WithAuthor sets the author string returned by Author.
func WithAuthor(author string) Option {
	return func(e *Engine) {
		e.author = author
	}
}

// Engine wraps a Gungi Controller with mutex-guarded, logged operations. A
// single Engine instance is not meant to be driven by more than one caller
// concurrently without this wrapper; the Registry is what makes many
// Engines, each independently lockable, safe to run side by side.
type Engine struct {
	name, author string

	encoder *gn.Encoder

	mu sync.Mutex
}

// New returns an engine with a fresh game already set up.
func New(ctx context.Context, opts ...Option) *Engine {
	e := &Engine{name: "Gungi", encoder: gn.NewEncoder(gungi.NewController())}
	for _, fn := range opts {
		fn(e)
	}

	logw.Infof(ctx, "Initialized engine: %v", e.Name())
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Metadata returns the game-record metadata the engine's notation encoder
// will stamp on export; the caller populates it via its Set* methods.
func (e *Engine) Metadata() *gn.Metadata {
	return e.encoder.Metadata()
}

// Reset starts a new game, discarding all recorded notation.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset")

	e.encoder = gn.NewEncoder(gungi.NewController())
}

// Board returns the controller's towers, for read-only inspection.
func (e *Engine) Board() []*gungi.Tower {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.encoder.Controller().Board()
}

// State returns the current game state bitfield.
func (e *Engine) State() gungi.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.encoder.Controller().State()
}

// Winner returns the winning colour and true if the game ended by
// checkmate, or false if the game is ongoing or ended in a draw.
func (e *Engine) Winner() (gungi.Colour, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.encoder.Controller().Winner()
}

// Drop places a unit matching front/back from the current player's hand
// onto posn.
func (e *Engine) Drop(ctx context.Context, front, back gungi.Piece, posn gungi.Posn) gungi.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.encoder.Drop(front, back, posn)
	logw.Infof(ctx, "Drop %v%v -> %v: %v", front, back, posn, err)
	return err
}

// Move relocates the unit at the given tier of from to to.
func (e *Engine) Move(ctx context.Context, from gungi.Posn, fromTier int, to gungi.Posn) gungi.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.encoder.Move(from, fromTier, to)
	logw.Infof(ctx, "Move %v(%v) -> %v: %v", from, fromTier, to, err)
	return err
}

// ImmobileStrike captures the unit at targetTier of the tower the unit at
// strikerTier occupies.
func (e *Engine) ImmobileStrike(ctx context.Context, posn gungi.Posn, strikerTier, targetTier int) gungi.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.encoder.ImmobileStrike(posn, strikerTier, targetTier)
	logw.Infof(ctx, "ImmobileStrike %v(%v) x tier %v: %v", posn, strikerTier, targetTier, err)
	return err
}

// ForceRecover resolves a pending forced recovery, accepting it if recover
// is true or declining it otherwise.
func (e *Engine) ForceRecover(ctx context.Context, recover bool) gungi.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.encoder.ForceRecover(recover)
	logw.Infof(ctx, "ForceRecover %v: %v", recover, err)
	return err
}

// Substitute swaps the top units of the towers occupied by the unit at
// fromTier of from and the unit at toTier of to.
func (e *Engine) Substitute(ctx context.Context, from gungi.Posn, fromTier int, to gungi.Posn, toTier int) gungi.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.encoder.Substitute(from, fromTier, to, toTier)
	logw.Infof(ctx, "Substitute %v(%v) <-> %v(%v): %v", from, fromTier, to, toTier, err)
	return err
}

// TierExchange performs a 1-3 tier exchange within the tower at from.
func (e *Engine) TierExchange(ctx context.Context, from gungi.Posn, fromTier, toTier int) gungi.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.encoder.TierExchange(from, fromTier, toTier)
	logw.Infof(ctx, "TierExchange %v(%v -> %v): %v", from, fromTier, toTier, err)
	return err
}

// Export renders the game recorded so far as a Gungi Notation document.
func (e *Engine) Export(ctx context.Context) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Export")
	return e.encoder.Encode()
}

// Import replaces the engine's game with the one decoded from doc, applying
// every move in order from a fresh controller. On decode failure the
// engine's prior game is left untouched.
func (e *Engine) Import(ctx context.Context, doc string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	encoder := gn.NewEncoder(gungi.NewController())
	if err := encoder.Import(doc); err != nil {
		logw.Errorf(ctx, "Import failed: %v", err)
		return err
	}

	e.encoder = encoder

	logw.Infof(ctx, "Import: game state %v", e.encoder.Controller().State())
	return nil
}

// String renders the board for debugging and the console driver.
func (e *Engine) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.encoder.Controller().String()
}
