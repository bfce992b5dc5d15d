package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// holdTick is how often the progress bar advances while held
const holdTick = 50 * time.Millisecond

// DefaultHoldButtonSize keeps hold buttons easy to hit on a full-screen popup
var DefaultHoldButtonSize = fyne.NewSize(300, 80)

// HoldButton fires OnConfirmed only after being held down for Hold.
// Releasing early or leaving the button resets the progress.
type HoldButton struct {
	widget.BaseWidget
	Text        string
	Hold        time.Duration
	OnConfirmed func()
	// MinButtonSize is a floor for the rendered size. Zero means DefaultHoldButtonSize.
	MinButtonSize fyne.Size

	mu       sync.Mutex
	holding  bool
	hovered  bool
	progress float64
	stop     chan struct{}
}

// NewHoldButton creates a HoldButton
func NewHoldButton(text string, hold time.Duration, onConfirmed func()) *HoldButton {
	b := &HoldButton{
		Text:        text,
		Hold:        hold,
		OnConfirmed: onConfirmed,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          canvas.NewRectangle(theme.Color(theme.ColorNameButton)),
		progressBar: canvas.NewRectangle(theme.Color(theme.ColorNamePrimary)),
	}
}

// Progress returns how far the current hold is, between 0 and 1
func (b *HoldButton) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// Holding reports whether the button is pressed right now
func (b *HoldButton) Holding() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holding
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.mu.Lock()
	b.hovered = true
	b.mu.Unlock()
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.mu.Lock()
	b.hovered = false
	b.mu.Unlock()
	b.release()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.press()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
}

func (b *HoldButton) press() {
	b.mu.Lock()
	if b.holding {
		b.mu.Unlock()
		return
	}
	if b.Hold <= 0 {
		b.mu.Unlock()
		b.confirm()
		return
	}
	b.holding = true
	b.progress = 0
	stop := make(chan struct{})
	b.stop = stop
	b.mu.Unlock()

	b.Refresh()
	go b.track(time.Now(), stop)
}

// release cancels a hold in progress
func (b *HoldButton) release() {
	b.mu.Lock()
	if !b.holding {
		b.mu.Unlock()
		b.Refresh()
		return
	}
	b.holding = false
	b.progress = 0
	close(b.stop)
	b.stop = nil
	b.mu.Unlock()

	b.Refresh()
}

func (b *HoldButton) track(start time.Time, stop chan struct{}) {
	ticker := time.NewTicker(holdTick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			progress := holdProgress(now.Sub(start), b.Hold)

			b.mu.Lock()
			if !b.holding || b.stop != stop {
				b.mu.Unlock()
				return
			}
			b.progress = progress
			done := progress >= 1
			if done {
				b.holding = false
				b.progress = 0
				b.stop = nil
			}
			b.mu.Unlock()

			if done {
				fyne.Do(func() {
					b.Refresh()
					b.confirm()
				})
				return
			}
			fyne.Do(b.Refresh)
		}
	}
}

func (b *HoldButton) confirm() {
	if b.OnConfirmed != nil {
		b.OnConfirmed()
	}
}

func holdProgress(elapsed, hold time.Duration) float64 {
	if hold <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(hold)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)
	r.layoutProgress(size)
}

// layoutProgress fills the bar from the left
func (r *holdButtonRenderer) layoutProgress(size fyne.Size) {
	r.progressBar.Move(fyne.NewPos(0, 0))
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(r.button.Progress()), size.Height))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	floor := r.button.MinButtonSize
	if floor.IsZero() {
		floor = DefaultHoldButtonSize
	}

	textSize := r.text.MinSize()
	return fyne.NewSize(textSize.Width+theme.Padding()*4, textSize.Height+theme.Padding()*2).Max(floor)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	r.button.mu.Lock()
	hovered := r.button.hovered
	r.button.mu.Unlock()
	if hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	r.layoutProgress(r.bg.Size())

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
