package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
)

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the output is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether the terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether the terminal supports Unicode characters
	SupportsUnicode bool
}

// DetectTerminalCapabilities detects terminal features of out
func DetectTerminalCapabilities(out io.Writer) TerminalCapabilities {
	isTTY := isTerminal(out)
	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && os.Getenv("NO_COLOR") == "",
		SupportsUnicode: isTTY && os.Getenv("KEEPALIVE_ASCII") != "1",
	}
}

// terminalSymbols defines the character set for the indicator
type terminalSymbols struct {
	// Bell prefixes every printed artifact
	Bell string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}

// selectSymbols returns the symbol set for the terminal capabilities
func selectSymbols(caps TerminalCapabilities) terminalSymbols {
	if caps.SupportsUnicode {
		return terminalSymbols{Bell: "●", SpinnerSet: 14} // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	}
	return terminalSymbols{Bell: "*", SpinnerSet: 9} // | / - \
}

// TerminalHost renders artifacts into a terminal. While a slot holds
// foreground execution its artifact is shown next to a running spinner;
// outside foreground mode artifacts are printed as single lines.
type TerminalHost struct {
	mu             sync.Mutex
	out            io.Writer
	caps           TerminalCapabilities
	symbols        terminalSymbols
	categories     map[string]Category
	shown          map[int]Artifact
	foreground     bool
	foregroundSlot int
	spinner        *spinner.Spinner
	spinnerColor   string
}

// NewTerminalHost creates a TerminalHost writing to out
func NewTerminalHost(out io.Writer) *TerminalHost {
	return newTerminalHostWithCaps(out, DetectTerminalCapabilities(out))
}

func newTerminalHostWithCaps(out io.Writer, caps TerminalCapabilities) *TerminalHost {
	return &TerminalHost{
		out:        out,
		caps:       caps,
		symbols:    selectSymbols(caps),
		categories: make(map[string]Category),
		shown:      make(map[int]Artifact),
	}
}

// UpsertCategory records c. Re-registering an identical category is a no-op.
func (h *TerminalHost) UpsertCategory(c Category) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.categories[c.ID] = c
	return nil
}

// Categories returns a copy of the registered categories
func (h *TerminalHost) Categories() map[string]Category {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]Category, len(h.categories))
	for id, c := range h.categories {
		out[id] = c
	}
	return out
}

// Show displays a under slot. The foreground slot updates the indicator in
// place; any other slot prints a line.
func (h *TerminalHost) Show(slot int, a Artifact) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shown[slot] = a
	if h.foreground && slot == h.foregroundSlot && h.spinner != nil {
		h.spinner.Lock()
		h.spinner.Suffix = " " + h.format(a)
		h.spinner.Unlock()
		h.applyAccent(a)
		return nil
	}
	fmt.Fprintln(h.out, h.format(a))
	return nil
}

// Withdraw removes the artifact for slot
func (h *TerminalHost) Withdraw(slot int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.shown, slot)
	if h.foreground && slot == h.foregroundSlot && h.spinner != nil {
		h.spinner.Lock()
		h.spinner.Suffix = ""
		h.spinner.Unlock()
	}
	return nil
}

// Shown returns the artifact currently displayed under slot
func (h *TerminalHost) Shown(slot int) (Artifact, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.shown[slot]
	return a, ok
}

// RegisterForeground shows a as the persistent indicator for slot.
// Only one slot may hold foreground execution at a time.
func (h *TerminalHost) RegisterForeground(slot int, a Artifact) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.foreground && slot != h.foregroundSlot {
		return fmt.Errorf("%w: slot %d already holds foreground", apperrors.ErrPermissionDenied, h.foregroundSlot)
	}
	h.shown[slot] = a
	h.foreground = true
	h.foregroundSlot = slot

	line := h.format(a)
	if !h.caps.IsTTY {
		fmt.Fprintln(h.out, line)
		return nil
	}
	if h.spinner == nil {
		h.spinner = h.newSpinner()
	}
	h.spinner.Lock()
	h.spinner.Suffix = " " + line
	h.spinner.Unlock()
	h.applyAccent(a)
	h.spinner.Start()
	return nil
}

// applyAccent tints the spinner with the artifact's accent colour, or resets
// it to the default when the artifact is not colorized.
func (h *TerminalHost) applyAccent(a Artifact) {
	if h.spinner == nil || !h.caps.SupportsColor {
		return
	}
	name := "reset"
	if a.Colorized {
		name = nearestColor(a.Color).name
	}
	if err := h.spinner.Color(name); err == nil {
		h.spinnerColor = name
	}
}

// UnregisterForeground stops the indicator. Without removeIndicator the last
// artifact stays on screen as a plain line.
func (h *TerminalHost) UnregisterForeground(slot int, removeIndicator bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.foreground || slot != h.foregroundSlot {
		return nil
	}
	if h.spinner != nil {
		h.spinner.Stop()
		h.spinner = nil
		h.spinnerColor = ""
	}
	h.foreground = false
	if removeIndicator {
		delete(h.shown, slot)
		return nil
	}
	if a, ok := h.shown[slot]; ok {
		fmt.Fprintln(h.out, h.format(a))
	}
	return nil
}

// InForeground reports whether slot currently holds foreground execution
func (h *TerminalHost) InForeground(slot int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.foreground && h.foregroundSlot == slot
}

func (h *TerminalHost) newSpinner() *spinner.Spinner {
	opts := []spinner.Option{spinner.WithWriter(h.out), spinner.WithHiddenCursor(true)}
	if f, ok := h.out.(*os.File); ok {
		opts = append(opts, spinner.WithWriterFile(f))
	}
	return spinner.New(spinner.CharSets[h.symbols.SpinnerSet], 100*time.Millisecond, opts...)
}

// format renders a as a single line: "● Title - Subtitle (Description)"
func (h *TerminalHost) format(a Artifact) string {
	title := a.Title
	if a.Colorized && h.caps.SupportsColor {
		c := color.New(nearestColor(a.Color).attr, color.Bold)
		c.EnableColor()
		title = c.Sprint(title)
	}
	var b strings.Builder
	b.WriteString(h.symbols.Bell)
	b.WriteString(" ")
	b.WriteString(title)
	if a.Subtitle != "" {
		b.WriteString(" - ")
		b.WriteString(a.Subtitle)
	}
	if a.Description != "" {
		fmt.Fprintf(&b, " (%s)", a.Description)
	}
	return b.String()
}

// terminalColor is an ANSI colour with its name and reference RGB value
type terminalColor struct {
	name string
	attr color.Attribute
	rgb  Color
}

// terminalPalette excludes black, which is unreadable on most terminals
var terminalPalette = []terminalColor{
	{name: "red", attr: color.FgRed, rgb: 0xFF0000},
	{name: "green", attr: color.FgGreen, rgb: 0x00FF00},
	{name: "yellow", attr: color.FgYellow, rgb: 0xFFFF00},
	{name: "blue", attr: color.FgBlue, rgb: 0x0000FF},
	{name: "magenta", attr: color.FgMagenta, rgb: 0xFF00FF},
	{name: "cyan", attr: color.FgCyan, rgb: 0x00FFFF},
	{name: "white", attr: color.FgWhite, rgb: 0xFFFFFF},
}

// nearestColor maps an RGB accent to the closest ANSI palette entry
func nearestColor(c Color) terminalColor {
	best := terminalPalette[0]
	bestDist := -1
	r, g, b := c.RGB()
	for _, p := range terminalPalette {
		pr, pg, pb := p.rgb.RGB()
		dr, dg, db := int(r)-int(pr), int(g)-int(pg), int(b)-int(pb)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = p, dist
		}
	}
	return best
}
