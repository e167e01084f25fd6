package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/NamanBalaji/pulse/internal/etc"
	"github.com/NamanBalaji/pulse/internal/tracker"
)

const (
	// barPercentage is the share of the free terminal width given to the bar.
	barPercentage = 0.15
	defaultWidth  = 30
	minBarLength  = 15

	// fixedChars covers "100% []" and padding; ansiOverhead the escape codes.
	fixedChars   = 10
	ansiOverhead = 14

	cursorUpOneLine = "\033[1A"
	clearLine       = "\033[2K"
)

var (
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	remainingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
)

// Renderer draws a two-line progress frame in place on a terminal: the bar on
// the first line, elapsed and estimated-completion times on the second.
// The bar length is derived from the terminal width and recomputed on resize.
type Renderer struct {
	out          io.Writer
	name         string
	progressChar rune
	emptyChar    rune
	drawn        bool

	// geometry is touched by the resize watcher goroutine.
	mu        sync.Mutex
	barLength int
	width     func() int
}

// New creates a renderer writing to out. Empty progress and empty-space
// characters default to '#' and '-'.
func New(out io.Writer, name, progressChar, emptyChar string) *Renderer {
	if progressChar == "" {
		progressChar = "#"
	}

	if emptyChar == "" {
		emptyChar = "-"
	}

	r := &Renderer{
		out:          out,
		name:         name,
		progressChar: []rune(progressChar)[0],
		emptyChar:    []rune(emptyChar)[0],
		width:        terminalWidth,
	}
	r.recalculate()

	return r
}

// terminalWidth reports the current terminal column count, falling back to a
// fixed default when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}

	return w
}

// recalculate derives the bar length from the available width.
func (r *Renderer) recalculate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	available := r.width() - len(r.name) - fixedChars - ansiOverhead
	if available < 0 {
		available = 0
	}

	length := int(float64(available) * barPercentage)
	if length < minBarLength {
		length = minBarLength
	}

	if length%2 != 0 {
		length--
	}

	r.barLength = length
}

// Frame renders the two display lines for a snapshot, without any cursor
// movement codes.
func (r *Renderer) Frame(s tracker.Snapshot) (string, string) {
	r.mu.Lock()
	barLength := r.barLength
	r.mu.Unlock()

	var line1 string

	if s.Indefinite {
		// No total: a single marker cycles through the bar.
		position := int(s.Progress % int64(barLength))
		bar := []rune(strings.Repeat(string(r.emptyChar), barLength))
		bar[position] = r.progressChar

		line1 = fmt.Sprintf("%s: [%s%s] ",
			r.name,
			doneStyle.Render(string(bar[:position])),
			remainingStyle.Render(string(bar[position:])))
	} else {
		percent := int(s.Percent * 100)
		position := int(float64(barLength) * s.Percent)

		line1 = fmt.Sprintf("%s: %3d%% [%s%s] ",
			r.name,
			percent,
			doneStyle.Render(strings.Repeat(string(r.progressChar), position)),
			remainingStyle.Render(strings.Repeat(string(r.emptyChar), barLength-position)))
	}

	line2 := FormatTime("Elapsed:", s.Elapsed)
	if !s.Indefinite {
		line2 += " " + FormatTime("ETC:", s.ETC)
	}

	return line1, line2
}

// Draw writes the frame in place, overwriting the previously drawn one.
func (r *Renderer) Draw(s tracker.Snapshot) {
	line1, line2 := r.Frame(s)

	var b strings.Builder
	if r.drawn {
		b.WriteString(cursorUpOneLine)
	}

	b.WriteString("\r" + clearLine + line1 + "\n")
	b.WriteString("\r" + clearLine + line2)

	fmt.Fprint(r.out, b.String())

	r.drawn = true
}

// Finish terminates the in-place frame so later output starts on a new line.
func (r *Renderer) Finish() {
	if r.drawn {
		fmt.Fprintln(r.out)
		r.drawn = false
	}
}

// FormatTime formats a duration as "label d:hh:mm:ss:ms", omitting leading
// fields that are zero. The unavailable sentinel renders as "N/A".
func FormatTime(label string, d time.Duration) string {
	if d == etc.Unavailable {
		return label + " N/A"
	}

	if d < 0 {
		d = 0
	}

	total := d.Milliseconds()

	days := total / 86_400_000
	total -= days * 86_400_000
	hours := total / 3_600_000
	total -= hours * 3_600_000
	minutes := total / 60_000
	total -= minutes * 60_000
	seconds := total / 1000
	millis := total - seconds*1000

	var b strings.Builder
	b.WriteString(label)
	b.WriteByte(' ')

	if days > 0 {
		fmt.Fprintf(&b, "%d:", days)
	}

	if days > 0 || hours > 0 {
		fmt.Fprintf(&b, "%02d:", hours)
	}

	if days > 0 || hours > 0 || minutes > 0 {
		fmt.Fprintf(&b, "%02d:", minutes)
	}

	fmt.Fprintf(&b, "%02d", seconds)

	if millis > 0 {
		fmt.Fprintf(&b, ":%03d", millis)
	}

	return b.String()
}
