package gn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hkpeprah/gungi/pkg/gungi"
)

var (
	moveHeaderRE = regexp.MustCompile(`^(\d+)(\.{1,3})$`)

	dropRE      = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])\*(\d+)-(\d+)-(\d+)$`)
	moveRE      = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])<(\d+)-(\d+)-(\d+)>(\d+)-(\d+)-(\d+)$`)
	strikeRE    = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])<(\d+)-(\d+)-(\d+)x(\d+)-(\d+)-(\d+)$`)
	immobileRE  = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])<(\d+)-(\d+)-(\d+)x(\d+)$`)
	forceSelfRE = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])\+(\d+)-(\d+)-(\d+)$`)
	forceOthRE  = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])\^(\d+)-(\d+)-(\d+)$`)
	declineRE   = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])=(\d+)-(\d+)-(\d+)$`)
	substRE     = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])<(\d+)-(\d+)-(\d+)&(\d+)-(\d+)-(\d+)$`)
	tierExRE    = regexp.MustCompile(`^([A-Za-z])([A-Za-z-])<(\d+)-(\d+)-(\d+)&(\d+)$`)
)

// scanner walks a rune slice, used by both the header and movetext decoders
// so comments can be recognised and dropped wherever they appear.
type scanner struct {
	s   []rune
	pos int
}

func (sc *scanner) peek() (rune, bool) {
	if sc.pos >= len(sc.s) {
		return 0, false
	}
	return sc.s[sc.pos], true
}

func (sc *scanner) next() (rune, bool) {
	r, ok := sc.peek()
	if ok {
		sc.pos++
	}
	return r, ok
}

func (sc *scanner) skipWS() {
	for {
		r, ok := sc.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		sc.pos++
	}
}

// readToken reads a run of non-whitespace characters. It reports false if
// the scanner is already at a whitespace character or EOF.
func (sc *scanner) readToken() (string, bool) {
	start := sc.pos
	for {
		r, ok := sc.peek()
		if !ok || unicode.IsSpace(r) {
			break
		}
		sc.pos++
	}
	if sc.pos == start {
		return "", false
	}
	return string(sc.s[start:sc.pos]), true
}

// skipComment consumes a '# ... \n' line comment or a balanced '( ... )'
// comment, assuming the scanner is positioned at the opening character.
func (sc *scanner) skipComment() error {
	ch, _ := sc.next()
	if ch == '#' {
		for {
			r, ok := sc.peek()
			if !ok || r == '\n' {
				return nil
			}
			sc.pos++
		}
	}

	// ch == '('
	for {
		r, ok := sc.next()
		if !ok {
			return fmt.Errorf("gn: unterminated '(' comment")
		}
		if r == ')' {
			return nil
		}
	}
}

// Decode parses the header and movetext of a Gungi Notation document,
// applying every decoded move to controller in order, and returns the
// document's header metadata. Decoding fails on the first malformed header
// entry, unbalanced comment, or illegal move; controller is left mutated up
// to (and including) the last move successfully applied before the failure.
func Decode(gn string, controller *gungi.Controller) (*Metadata, error) {
	return decode(gn, controller, func(move string) error {
		return DecodeMove(move, controller)
	})
}

// decode is the shared implementation behind Decode and Encoder.Import: it
// dispatches every movetext token that isn't a move-number indicator to
// apply, rather than calling DecodeMove directly, so a caller that also
// wants to retain the document's own move text (Encoder.Import) can do so
// without re-deriving notation from the resulting controller state.
func decode(gn string, controller *gungi.Controller, apply func(move string) error) (*Metadata, error) {
	sc := &scanner{s: []rune(gn)}

	md := &Metadata{}
	if err := decodeHeader(sc, md); err != nil {
		return nil, err
	}
	if err := decodeMovetext(sc, controller, apply); err != nil {
		return nil, err
	}
	return md, nil
}

func decodeHeader(sc *scanner, md *Metadata) error {
	for {
		sc.skipWS()
		ch, ok := sc.peek()
		if !ok {
			return nil
		}
		if ch == '#' || ch == '(' {
			if err := sc.skipComment(); err != nil {
				return err
			}
			continue
		}
		if ch != '[' {
			return nil
		}
		sc.next()

		name, ok := sc.readToken()
		if !ok {
			return fmt.Errorf("gn: malformed header entry")
		}

		sc.skipWS()
		q, ok := sc.next()
		if !ok || q != '"' {
			return fmt.Errorf("gn: header %q missing opening quote", name)
		}

		var b strings.Builder
		for {
			r, ok := sc.next()
			if !ok {
				return fmt.Errorf("gn: header %q missing closing quote", name)
			}
			if r == '"' {
				break
			}
			b.WriteRune(r)
		}

		sc.skipWS()
		rb, ok := sc.next()
		if !ok || rb != ']' {
			return fmt.Errorf("gn: header %q missing closing bracket", name)
		}

		switch strings.ToLower(name) {
		case "event":
			md.SetEvent(b.String())
		case "date":
			if !md.SetDate(b.String()) {
				return fmt.Errorf("gn: header %q: malformed date %q", name, b.String())
			}
		case "location":
			md.SetLocation(b.String())
		case "white":
			md.SetWhite(b.String())
		case "black":
			md.SetBlack(b.String())
		case "result":
			// Accepted but not committed to the metadata: the encoder always
			// derives the result from the controller's own game state.
		default:
			return fmt.Errorf("gn: unknown header name %q", name)
		}
	}
}

func decodeMovetext(sc *scanner, controller *gungi.Controller, apply func(move string) error) error {
	moveCount := 1
	for {
		sc.skipWS()
		ch, ok := sc.peek()
		if !ok {
			return nil
		}
		if ch == '#' || ch == '(' {
			if err := sc.skipComment(); err != nil {
				return err
			}
			continue
		}

		tok, ok := sc.readToken()
		if !ok {
			return nil
		}

		if m := moveHeaderRE.FindStringSubmatch(tok); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n != moveCount {
				return fmt.Errorf("gn: move indicator %q out of sequence, expected %d", tok, moveCount)
			}
			moveCount++

			switch m[2] {
			case ".":
				if !controller.IsPlayersTurn(gungi.Black) {
					return fmt.Errorf("gn: move indicator %q: expected black to move", tok)
				}
			case "...":
				if !controller.IsPlayersTurn(gungi.White) {
					return fmt.Errorf("gn: move indicator %q: expected white to move", tok)
				}
			default:
				return fmt.Errorf("gn: malformed move indicator %q", tok)
			}
			continue
		}

		if err := apply(tok); err != nil {
			return err
		}
	}
}

// DecodeMove applies the single movetext token move to controller. The
// colour acting is always the controller's current turn; move does not
// itself carry a colour beyond the unit identity it asserts.
func DecodeMove(move string, controller *gungi.Controller) error {
	if strings.TrimSpace(move) == "" {
		return nil
	}

	colour := gungi.White
	if controller.IsPlayersTurn(gungi.Black) {
		colour = gungi.Black
	}

	switch {
	case moveRE.MatchString(move):
		return decodeMoveOrStrike(moveRE, move, controller, colour, false)
	case strikeRE.MatchString(move):
		return decodeMoveOrStrike(strikeRE, move, controller, colour, true)
	case dropRE.MatchString(move):
		return decodeDrop(move, controller)
	case immobileRE.MatchString(move):
		return decodeImmobileStrike(move, controller, colour)
	case forceSelfRE.MatchString(move):
		return decodeForceRecover(forceSelfRE, move, controller, colour)
	case forceOthRE.MatchString(move):
		return decodeForceRecover(forceOthRE, move, controller, colour)
	case declineRE.MatchString(move):
		return decodeDeclineRecovery(move, controller, colour)
	case substRE.MatchString(move):
		return decodeExchange(substRE, move, controller, colour, gungi.EffectSubstitution)
	case tierExRE.MatchString(move):
		return decodeTierExchange(move, controller, colour)
	default:
		return fmt.Errorf("gn: unrecognised move %q", move)
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// identity resolves the unit at posn/tier and checks it matches the stated
// front/back identity and the colour to move, exactly as the notation
// asserts: these fields are not themselves passed on to the controller
// call, so the decoder is the only thing that ever validates them.
func identity(controller *gungi.Controller, posn gungi.Posn, tier int, front, back gungi.Piece, colour gungi.Colour) (gungi.Handle, error) {
	h, ok := controller.UnitAtPosn(posn, tier)
	if !ok {
		return gungi.InvalidHandle, fmt.Errorf("no unit at %v tier %d", posn, tier)
	}
	u := controller.Arena().Unit(h)
	if u.Front() != front || u.Back() != back || u.Colour() != colour {
		return gungi.InvalidHandle, fmt.Errorf("unit at %v tier %d is not %s%s of colour %s", posn, tier, front.GN(), back.GN(), colour)
	}
	return h, nil
}

func decodeDrop(move string, controller *gungi.Controller) error {
	m := dropRE.FindStringSubmatch(move)
	front := gungi.PieceFromGN(m[1][0])
	back := gungi.PieceFromGN(m[2][0])
	to := gungi.NewPosn(atoi(m[3]), atoi(m[4]))
	tier := atoi(m[5])

	if !to.IsValid() {
		return fmt.Errorf("gn: drop %q: position out of range", move)
	}
	if height := controller.Board()[to.Index()].Height(); height != tier {
		return fmt.Errorf("gn: drop %q: stated tier does not match tower height", move)
	}

	if err := controller.DropUnitPiece(front, back, to); !err.OK() {
		return fmt.Errorf("gn: drop %q: %w", move, err)
	}
	return nil
}

// decodeMoveOrStrike handles both the plain move and mobile strike
// mini-syntaxes, which dispatch to the same controller call and differ
// only in which destination tiers they accept.
func decodeMoveOrStrike(re *regexp.Regexp, move string, controller *gungi.Controller, colour gungi.Colour, strike bool) error {
	m := re.FindStringSubmatch(move)
	front := gungi.PieceFromGN(m[1][0])
	back := gungi.PieceFromGN(m[2][0])
	from := gungi.NewPosn(atoi(m[3]), atoi(m[4]))
	fromTier := atoi(m[5])
	to := gungi.NewPosn(atoi(m[6]), atoi(m[7]))
	toTier := atoi(m[8])

	if !from.IsValid() || !to.IsValid() {
		return fmt.Errorf("gn: move %q: position out of range", move)
	}

	height := controller.Board()[to.Index()].Height()
	if strike {
		if height != toTier+1 {
			return fmt.Errorf("gn: move %q: stated tier is not a capture", move)
		}
	} else if height != toTier && height != toTier+1 {
		return fmt.Errorf("gn: move %q: stated tier does not match tower height", move)
	}

	if _, err := identity(controller, from, fromTier, front, back, colour); err != nil {
		return fmt.Errorf("gn: move %q: %w", move, err)
	}

	if err := controller.MoveUnitAt(from, fromTier, to); !err.OK() {
		return fmt.Errorf("gn: move %q: %w", move, err)
	}
	return nil
}

func decodeImmobileStrike(move string, controller *gungi.Controller, colour gungi.Colour) error {
	m := immobileRE.FindStringSubmatch(move)
	front := gungi.PieceFromGN(m[1][0])
	back := gungi.PieceFromGN(m[2][0])
	posn := gungi.NewPosn(atoi(m[3]), atoi(m[4]))
	strikerTier := atoi(m[5])
	targetTier := atoi(m[6])

	if !posn.IsValid() {
		return fmt.Errorf("gn: immobile strike %q: position out of range", move)
	}
	if _, err := identity(controller, posn, strikerTier, front, back, colour); err != nil {
		return fmt.Errorf("gn: immobile strike %q: %w", move, err)
	}

	if err := controller.ImmobileStrikeAt(posn, strikerTier, targetTier); !err.OK() {
		return fmt.Errorf("gn: immobile strike %q: %w", move, err)
	}
	return nil
}

// decodeForceRecover handles both forced-recovery glyphs: the original
// decoder resolves each to the same 'recover=true' call regardless of
// which glyph is written (see Encoder.ForceRecover for how the encoder
// chooses the glyph).
func decodeForceRecover(re *regexp.Regexp, move string, controller *gungi.Controller, colour gungi.Colour) error {
	m := re.FindStringSubmatch(move)
	if err := checkPendingRecovery(controller, m, move, colour); err != nil {
		return err
	}
	if err := controller.ForceRecover(true); !err.OK() {
		return fmt.Errorf("gn: force recover %q: %w", move, err)
	}
	return nil
}

func decodeDeclineRecovery(move string, controller *gungi.Controller, colour gungi.Colour) error {
	m := declineRE.FindStringSubmatch(move)
	if err := checkPendingRecovery(controller, m, move, colour); err != nil {
		return err
	}
	if err := controller.ForceRecover(false); !err.OK() {
		return fmt.Errorf("gn: decline recovery %q: %w", move, err)
	}
	return nil
}

func checkPendingRecovery(controller *gungi.Controller, m []string, move string, colour gungi.Colour) error {
	front := gungi.PieceFromGN(m[1][0])
	back := gungi.PieceFromGN(m[2][0])
	posn := gungi.NewPosn(atoi(m[3]), atoi(m[4]))
	tier := atoi(m[5])

	handle, _, ok := controller.ForcedRecovery()
	if !ok {
		return fmt.Errorf("gn: %q: no forced recovery is pending", move)
	}

	u := controller.Arena().Unit(handle)
	if u.Front() != front || u.Back() != back || u.Colour() != colour {
		return fmt.Errorf("gn: %q: does not identify the pending recovery unit", move)
	}
	upos, ok := u.Posn()
	if !ok || upos != posn {
		return fmt.Errorf("gn: %q: recovery unit is not at the stated tower", move)
	}
	if utier, ok := u.Tier(); ok && utier != tier {
		return fmt.Errorf("gn: %q: recovery unit is not at the stated tier", move)
	}
	return nil
}

func decodeExchange(re *regexp.Regexp, move string, controller *gungi.Controller, colour gungi.Colour, effect gungi.Effect) error {
	m := re.FindStringSubmatch(move)
	front := gungi.PieceFromGN(m[1][0])
	back := gungi.PieceFromGN(m[2][0])
	from := gungi.NewPosn(atoi(m[3]), atoi(m[4]))
	fromTier := atoi(m[5])
	to := gungi.NewPosn(atoi(m[6]), atoi(m[7]))
	toTier := atoi(m[8])

	if !from.IsValid() {
		return fmt.Errorf("gn: exchange %q: position out of range", move)
	}
	if _, err := identity(controller, from, fromTier, front, back, colour); err != nil {
		return fmt.Errorf("gn: exchange %q: %w", move, err)
	}

	if err := controller.ExchangeUnitsAt(effect, from, fromTier, to, toTier); !err.OK() {
		return fmt.Errorf("gn: exchange %q: %w", move, err)
	}
	return nil
}

// decodeTierExchange handles the 1-3 tier exchange mini-syntax, which
// addresses a single tower (to = from) and two tiers within it.
func decodeTierExchange(move string, controller *gungi.Controller, colour gungi.Colour) error {
	m := tierExRE.FindStringSubmatch(move)
	front := gungi.PieceFromGN(m[1][0])
	back := gungi.PieceFromGN(m[2][0])
	from := gungi.NewPosn(atoi(m[3]), atoi(m[4]))
	fromTier := atoi(m[5])
	toTier := atoi(m[6])

	if !from.IsValid() {
		return fmt.Errorf("gn: tier exchange %q: position out of range", move)
	}
	if _, err := identity(controller, from, fromTier, front, back, colour); err != nil {
		return fmt.Errorf("gn: tier exchange %q: %w", move, err)
	}

	if err := controller.ExchangeUnitsAt(gungi.Effect1_3TierExchange, from, fromTier, from, toTier); !err.OK() {
		return fmt.Errorf("gn: tier exchange %q: %w", move, err)
	}
	return nil
}
