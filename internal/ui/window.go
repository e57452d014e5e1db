package ui

import (
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/go-artclock/internal/config"
	"github.com/tartampluch/go-artclock/internal/engine"
)

// AppState holds the main window widgets and the last rendered moment.
// Every method must run on the Fyne UI goroutine.
type AppState struct {
	Header    *canvas.Text
	Digital   *canvas.Text
	Narrative *widget.RichText
	Footer    *canvas.Text
	Content   fyne.CanvasObject

	Moment engine.Moment

	ambient *ambientLayer
	size    fyne.Size
}

// NewAppState builds the widget tree for the main window.
func NewAppState(header, footer string) *AppState {
	subtle := hexColor(config.ColorSubtle)

	s := &AppState{
		Header:    canvas.NewText(header, subtle),
		Digital:   canvas.NewText("", subtle),
		Narrative: widget.NewRichText(),
		Footer:    canvas.NewText(footer, subtle),
		ambient:   newAmbientLayer(),
	}
	s.Narrative.Wrapping = fyne.TextWrapWord

	background := canvas.NewRectangle(hexColor(config.ColorBackground))
	overlay := container.NewBorder(
		container.NewVBox(s.Header, s.Digital),
		s.Footer,
		nil, nil,
		container.NewCenter(s.Narrative),
	)
	s.Content = container.NewStack(background, s.ambient.container, container.NewPadded(overlay))
	return s
}

// hexColor parses a #rrggbb palette entry.
func hexColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		slog.Error(err.Error(), config.LogKeyComponent, config.CompUI, config.LogKeyValue, hex)
		return color.Black
	}
	return c
}

// ApplyMode shows the digital line and the ambient layer only in installation mode.
func (s *AppState) ApplyMode(mode string) {
	if mode == config.ModeInstallation {
		s.Digital.Show()
		s.ambient.container.Show()
		return
	}
	s.Digital.Hide()
	s.ambient.container.Hide()
}

// SetChrome replaces the localized header and footer.
func (s *AppState) SetChrome(header, footer string) {
	s.Header.Text = header
	s.Footer.Text = footer
	s.Header.Refresh()
	s.Footer.Refresh()
}

// SetClock renders the digital sub-display.
func (s *AppState) SetClock(now time.Time) {
	s.Digital.Text = now.Format(config.FormatDigital)
	s.Digital.Refresh()
}

// SetMoment renders a new narrative with its highlighted phrase.
func (s *AppState) SetMoment(m engine.Moment) {
	s.Moment = m
	s.Narrative.Segments = narrativeSegments(m)
	s.Narrative.Refresh()
}

// Animate advances the ambient layer one frame and rescales text when the window size changed.
func (s *AppState) Animate(size fyne.Size) {
	if size != s.size {
		s.Resize(size)
	}
	s.ambient.step(size)
}

// Resize scales the text to a unit of min(width, height)/40.
func (s *AppState) Resize(size fyne.Size) {
	s.size = size
	unit := min(size.Width, size.Height) / config.UnitDivisor

	s.Header.TextSize = unit * config.TextSizeHeader
	s.Digital.TextSize = unit * config.TextSizeDigital
	s.Footer.TextSize = unit * config.TextSizeFooter
	s.Header.Refresh()
	s.Digital.Refresh()
	s.Footer.Refresh()
}

// narrativeSegments splits the narrative around the highlight span.
// The highlighted phrase is bold in the primary colour, the rest in the foreground colour.
func narrativeSegments(m engine.Moment) []widget.RichTextSegment {
	plain := widget.RichTextStyle{
		Alignment: fyne.TextAlignCenter,
		ColorName: theme.ColorNameForeground,
		Inline:    true,
		SizeName:  theme.SizeNameSubHeadingText,
	}
	accent := plain
	accent.ColorName = theme.ColorNamePrimary
	accent.TextStyle = fyne.TextStyle{Bold: true}

	text := m.Narrative
	h := m.Highlight
	if h == nil || h.Start < 0 || h.End > len(text) || h.Start >= h.End {
		return []widget.RichTextSegment{&widget.TextSegment{Text: text, Style: plain}}
	}

	var segs []widget.RichTextSegment
	if h.Start > 0 {
		segs = append(segs, &widget.TextSegment{Text: text[:h.Start], Style: plain})
	}
	segs = append(segs, &widget.TextSegment{Text: text[h.Start:h.End], Style: accent})
	if h.End < len(text) {
		segs = append(segs, &widget.TextSegment{Text: text[h.End:], Style: plain})
	}
	return segs
}
