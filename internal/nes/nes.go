// Package nes owns the console session: it wires the CPU, PPU, APU, bus
// and cartridge together and runs the cycle interleave.
package nes

import (
	"nesgo/internal/apu"
	"nesgo/internal/bus"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/ppu"
)

// NES is one powered-on console.
type NES struct {
	cart       *cartridge.Cartridge
	cpu        *cpu.CPU
	ppu        *ppu.PPU
	apu        *apu.APU
	bus        *bus.Bus
	controller *input.Controller

	// Previous level of the PPU's NMI line, for edge detection.
	nmiLinePrev bool
}

// New powers on a console around the cartridge: the bus is wired, the
// APU gets its DMC memory path, and the CPU starts from the reset
// vector.
func New(cart *cartridge.Cartridge) *NES {
	n := &NES{
		cart:       cart,
		controller: input.New(),
	}
	n.ppu = ppu.New(cart)
	n.apu = apu.New()
	n.bus = bus.New(n.ppu, n.apu, cart, n.controller)
	n.cpu = cpu.New(n.bus)
	n.bus.AttachCPU(n.cpu)
	n.apu.SetMemory(n.bus)
	n.cpu.Reset()
	return n
}

// Reset performs a console reset.
func (n *NES) Reset() {
	n.ppu.Reset()
	n.apu.Reset()
	n.controller.Reset()
	n.cpu.Reset()
	n.nmiLinePrev = false
}

// SetButtons updates the controller's live button mask for this frame,
// bit order A, B, Select, Start, Up, Down, Left, Right.
func (n *NES) SetButtons(mask uint8) {
	n.controller.SetButtons(mask)
}

// SetSampleRate selects the host audio rate.
func (n *NES) SetSampleRate(rate int) {
	n.apu.SetSampleRate(rate)
}

// DrainSamples returns the mono s16 audio produced since the last call.
func (n *NES) DrainSamples() []int16 {
	return n.apu.Samples()
}

// FrameBuffer returns the 256x240 output image; it is stable until the
// next RunFrame.
func (n *NES) FrameBuffer() *[ppu.Width * ppu.Height]uint32 {
	return n.ppu.FrameBuffer()
}

// Cartridge returns the loaded cartridge, for battery persistence.
func (n *NES) Cartridge() *cartridge.Cartridge {
	return n.cart
}

// CPU exposes the processor, for tests and debugging front-ends.
func (n *NES) CPU() *cpu.CPU {
	return n.cpu
}

// RunFrame advances emulation to the next frame boundary. Each CPU step
// is followed by one APU tick per CPU cycle and three PPU dots per CPU
// cycle; the NMI line is re-evaluated after every dot so the edge fires
// within one CPU cycle of vblank entry. The frame ends when the PPU
// wraps to scanline 0, dot 0 — the remaining dots of the current CPU
// step still run before returning.
func (n *NES) RunFrame() {
	frameDone := false
	for !frameDone {
		cpuCycles := n.cpu.Step()

		for i := 0; i < cpuCycles; i++ {
			n.apu.TickCPU()
		}

		for i := 0; i < cpuCycles*3; i++ {
			n.ppu.Tick()

			nmiLine := n.ppu.NMIOccurred() && n.ppu.NMIOutput()
			if nmiLine && !n.nmiLinePrev {
				n.cpu.NMI()
			}
			n.nmiLinePrev = nmiLine

			if n.ppu.Scanline() == 0 && n.ppu.Dot() == 0 {
				frameDone = true
			}
		}
	}
}
