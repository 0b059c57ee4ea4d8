// Package app is the Ebitengine shell around the emulation core: one
// window, keyboard input, and the audio sink hookup.
package app

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"nesgo/internal/audio"
	"nesgo/internal/cartridge"
	"nesgo/internal/input"
	"nesgo/internal/nes"
	"nesgo/internal/ppu"
)

// keyByName maps config key names to Ebitengine keys.
var keyByName = map[string]ebiten.Key{
	"A":          ebiten.KeyA,
	"B":          ebiten.KeyB,
	"Z":          ebiten.KeyZ,
	"X":          ebiten.KeyX,
	"C":          ebiten.KeyC,
	"S":          ebiten.KeyS,
	"D":          ebiten.KeyD,
	"Enter":      ebiten.KeyEnter,
	"Space":      ebiten.KeySpace,
	"ShiftLeft":  ebiten.KeyShiftLeft,
	"ShiftRight": ebiten.KeyShiftRight,
	"Up":         ebiten.KeyArrowUp,
	"Down":       ebiten.KeyArrowDown,
	"Left":       ebiten.KeyArrowLeft,
	"Right":      ebiten.KeyArrowRight,
}

// binding pairs one pad button with its bound key.
type binding struct {
	key    ebiten.Key
	button input.Button
}

// App runs one console inside an Ebitengine game loop.
type App struct {
	config  *Config
	console *nes.NES
	speaker audio.Speaker

	bindings []binding

	frame  *ebiten.Image
	pixels []byte
}

// New loads the ROM and assembles the shell around it.
func New(cfg *Config, romPath string) (*App, error) {
	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[APP] loaded %s (mapper %d, battery %v)", romPath, cart.MapperID(), cart.HasBattery())

	speaker, err := audio.NewSpeaker(cfg.Audio.Backend, cfg.Audio.WavPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:  cfg,
		console: nes.New(cart),
		speaker: speaker,
		frame:   ebiten.NewImage(ppu.Width, ppu.Height),
		pixels:  make([]byte, ppu.Width*ppu.Height*4),
	}
	app.console.SetSampleRate(cfg.Audio.SampleRate)
	app.bindings = resolveBindings(cfg.Input)
	return app, nil
}

// resolveBindings turns the config key names into live bindings,
// skipping names Ebitengine does not know.
func resolveBindings(m KeyMapping) []binding {
	var bindings []binding
	add := func(name string, button input.Button) {
		key, ok := keyByName[name]
		if !ok {
			log.Printf("[APP] unknown key name %q for button %v", name, button)
			return
		}
		bindings = append(bindings, binding{key: key, button: button})
	}
	add(m.A, input.ButtonA)
	add(m.B, input.ButtonB)
	add(m.Select, input.ButtonSelect)
	add(m.Start, input.ButtonStart)
	add(m.Up, input.ButtonUp)
	add(m.Down, input.ButtonDown)
	add(m.Left, input.ButtonLeft)
	add(m.Right, input.ButtonRight)
	return bindings
}

// pollButtons samples the keyboard into the 8-bit pad mask.
func (a *App) pollButtons() uint8 {
	var mask uint8
	for _, b := range a.bindings {
		if ebiten.IsKeyPressed(b.key) {
			mask |= uint8(b.button)
		}
	}
	return mask
}

// Update runs exactly one emulated frame per display frame.
func (a *App) Update() error {
	a.console.SetButtons(a.pollButtons())
	a.console.RunFrame()
	a.speaker.Queue(a.console.DrainSamples())
	return nil
}

// Draw uploads the console frame buffer and blits it; scaling is left
// to the Ebitengine layout.
func (a *App) Draw(screen *ebiten.Image) {
	fb := a.console.FrameBuffer()
	for i, c := range fb {
		a.pixels[i*4] = byte(c >> 16)   // R
		a.pixels[i*4+1] = byte(c >> 8)  // G
		a.pixels[i*4+2] = byte(c)       // B
		a.pixels[i*4+3] = byte(c >> 24) // A
	}
	a.frame.WritePixels(a.pixels)
	screen.DrawImage(a.frame, nil)
}

// Layout implements ebiten.Game with the native NES resolution.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

// Run opens the window and drives the game loop until the user closes
// it; the battery save is written on the way out.
func (a *App) Run() error {
	if err := a.speaker.Start(a.config.Audio.SampleRate); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	defer func() {
		if err := a.speaker.Close(); err != nil {
			log.Printf("[AUDIO] close: %v", err)
		}
	}()
	defer a.console.Cartridge().SaveBattery()

	scale := a.config.Window.Scale
	ebiten.SetWindowSize(ppu.Width*scale, ppu.Height*scale)
	ebiten.SetWindowTitle(a.config.Window.Title)
	ebiten.SetTPS(60)
	return ebiten.RunGame(a)
}
