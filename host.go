package reveal

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// WheelSpeed is the scroll distance per wheel notch. Default 60.
	WheelSpeed float64
	// ShowFPS overlays FPS, TPS and the scroll position.
	ShowFPS bool
	// Draw renders the page. The page has already run this tick's Frame.
	Draw func(screen *ebiten.Image, page *Page)
}

// host adapts a Page to ebiten.Game: wheel and keyboard feed the scroll
// signal, the window size feeds the viewport, and each tick runs one Frame.
type host struct {
	page *Page
	cfg  RunConfig
	w, h int
	last time.Time
}

// Run opens a window and drives page until the window closes.
func Run(page *Page, cfg RunConfig) error {
	if cfg.WheelSpeed == 0 {
		cfg.WheelSpeed = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 800
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	page.OnResize(float64(cfg.Width), float64(cfg.Height))

	h := &host{page: page, cfg: cfg}
	defer page.Dispose()
	return ebiten.RunGame(h)
}

func (h *host) Update() error {
	p := h.page
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.ScrollBy(-dy * h.cfg.WheelSpeed)
	}
	vh := p.Viewport().Height
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.ScrollTo(p.Viewport().ScrollY+vh*0.9, 0.4, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		p.ScrollTo(p.Viewport().ScrollY-vh*0.9, 0.4, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		p.ScrollTo(0, 0.6, ease.InOutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		p.ScrollTo(p.DocumentHeight(), 0.6, ease.InOutCubic)
	}
	p.Frame(h.frameDelta(ebiten.TPS(), time.Now()))
	return nil
}

// frameDelta is one tick at a fixed TPS. With ebiten.SyncWithFPS (TPS -1)
// ticks follow the display, so the wall-clock time since the last tick is
// used; the first such tick has no elapsed time.
func (h *host) frameDelta(tps int, now time.Time) time.Duration {
	if tps > 0 {
		h.last = time.Time{}
		return time.Second / time.Duration(tps)
	}
	var dt time.Duration
	if !h.last.IsZero() {
		dt = max(now.Sub(h.last), 0)
	}
	h.last = now
	return dt
}

func (h *host) Draw(screen *ebiten.Image) {
	if h.cfg.Draw != nil {
		h.cfg.Draw(screen, h.page)
	}
	if h.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nY: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), h.page.Viewport().ScrollY))
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.w || outsideHeight != h.h {
		h.w, h.h = outsideWidth, outsideHeight
		h.page.OnResize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
