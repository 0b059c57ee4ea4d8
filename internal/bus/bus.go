// Package bus implements the CPU-visible address decoder, the 2KB of
// internal RAM, OAM DMA and the IRQ line routing.
package bus

import (
	"nesgo/internal/apu"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/ppu"
)

// Bus is a pure router: other than the internal RAM it owns no
// emulation state, it fans CPU accesses out to the PPU, APU, controller
// and mapper.
type Bus struct {
	ram [0x800]uint8

	cpu        *cpu.CPU
	ppu        *ppu.PPU
	apu        *apu.APU
	cart       *cartridge.Cartridge
	controller *input.Controller
}

// New wires the router to its peripherals. The CPU is attached
// separately because it is constructed on top of the bus.
func New(p *ppu.PPU, a *apu.APU, cart *cartridge.Cartridge, controller *input.Controller) *Bus {
	return &Bus{
		ppu:        p,
		apu:        a,
		cart:       cart,
		controller: controller,
	}
}

// AttachCPU connects the CPU, needed for the OAM DMA stall.
func (b *Bus) AttachCPU(c *cpu.CPU) {
	b.cpu = c
}

// Read decodes a CPU read.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return b.ram[address&0x07FF]
	case address < 0x4000:
		return b.ppu.ReadRegister(0x2000 + address&7)
	case address == 0x4015:
		return b.apu.ReadStatus()
	case address == 0x4016:
		return b.controller.Read()
	case address == 0x4017:
		// Second controller is not wired; open-bus approximation
		return 0x40
	case address < 0x4020:
		// Write-only APU/IO registers
		return 0
	default:
		return b.cart.ReadPRG(address)
	}
}

// Write decodes a CPU write.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.ram[address&0x07FF] = value
	case address < 0x4000:
		b.ppu.WriteRegister(0x2000+address&7, value)
	case address == 0x4014:
		b.oamDMA(value)
	case address == 0x4016:
		b.controller.Write(value)
	case address <= 0x4017:
		b.apu.WriteRegister(address, value)
	case address >= 0x4020:
		b.cart.WritePRG(address, value)
	}
}

// oamDMA copies one CPU page into OAM and stalls the CPU for 513
// cycles, plus one when triggered on an odd CPU cycle. The copy itself
// runs up front; only the stall is spread over time, during which the
// APU and PPU keep their 1:1 and 3:1 tick ratios.
func (b *Bus) oamDMA(page uint8) {
	stall := 513
	if b.cpu != nil && b.cpu.Cycles()%2 == 1 {
		stall++
	}
	if b.cpu != nil {
		b.cpu.AddDMAStall(stall)
	}
	b.ppu.OAMDMA(b, page)
}

// MapperIRQ reports the cartridge IRQ line.
func (b *Bus) MapperIRQ() bool {
	return b.cart.Mapper().IRQPending()
}

// MapperIRQAck acknowledges the cartridge IRQ after vectoring.
func (b *Bus) MapperIRQAck() {
	b.cart.Mapper().IRQAck()
}

// APUIRQ reports the combined APU frame/DMC IRQ line.
func (b *Bus) APUIRQ() bool {
	return b.apu.IRQLine()
}
