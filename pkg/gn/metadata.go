// Package gn reads and writes Gungi Notation: a textual game-record format
// made of a header block of '[Name "value"]' lines followed by movetext
// grouped by move number.
package gn

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hkpeprah/gungi/pkg/gungi"
)

var dateRE = regexp.MustCompile(`^(\d{4})\.(\d{2})\.(\d{2})$`)

// Metadata is the header information of a '.gn' document. It has no bearing
// on game legality; it is carried purely for record-keeping.
type Metadata struct {
	event    string
	date     string
	location string
	white    string
	black    string
}

// Event returns the recorded event name.
func (m *Metadata) Event() string { return m.event }

// Date returns the recorded date, formatted 'YYYY.MM.DD'.
func (m *Metadata) Date() string { return m.date }

// Location returns the recorded location.
func (m *Metadata) Location() string { return m.location }

// White returns the recorded white player's name.
func (m *Metadata) White() string { return m.white }

// Black returns the recorded black player's name.
func (m *Metadata) Black() string { return m.black }

// SetEvent sets the event name.
func (m *Metadata) SetEvent(event string) { m.event = event }

// SetDate sets the date string, which must be formatted 'YYYY.MM.DD' with
// month <= 12 and day <= 31. It returns false, leaving the date unchanged,
// if date is malformed.
func (m *Metadata) SetDate(date string) bool {
	match := dateRE.FindStringSubmatch(date)
	if match == nil {
		return false
	}

	var month, day int
	fmt.Sscanf(match[2], "%d", &month)
	fmt.Sscanf(match[3], "%d", &day)
	if month > 12 || day > 31 {
		return false
	}

	m.date = date
	return true
}

// SetLocation sets the recorded location.
func (m *Metadata) SetLocation(location string) { m.location = location }

// SetWhite sets the white player's name.
func (m *Metadata) SetWhite(name string) { m.white = name }

// SetBlack sets the black player's name.
func (m *Metadata) SetBlack(name string) { m.black = name }

// Header renders the header block for controller's current game state,
// using the metadata already set on m. The Result line is derived from the
// controller, never from a decoded header: a document's own 'result' entry
// is accepted on decode but always ignored.
func (m *Metadata) Header(controller *gungi.Controller) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Event %q]\n", m.event)
	fmt.Fprintf(&b, "[Date %q]\n", m.date)
	fmt.Fprintf(&b, "[Location %q]\n", m.location)
	fmt.Fprintf(&b, "[White %q]\n", m.white)
	fmt.Fprintf(&b, "[Black %q]\n", m.black)
	fmt.Fprintf(&b, "[Result %q]\n", result(controller))
	return b.String()
}

func result(controller *gungi.Controller) string {
	if !controller.IsOver() {
		return "*"
	}
	if controller.IsDraw() {
		return "1/2 - 1/2"
	}
	if controller.IsInCheckmateColour(gungi.Black) {
		return "0 - 1"
	}
	return "1 - 0"
}
