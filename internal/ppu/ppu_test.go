package ppu

import (
	"bytes"
	"testing"

	"nesgo/internal/cartridge"
)

// newTestPPU builds a PPU over an NROM cartridge with CHR RAM so tests
// can author pattern data.
func newTestPPU(t *testing.T) *PPU {
	t.Helper()
	rom := cartridge.BuildTestROM(cartridge.TestROMConfig{PRGBanks: 1, CHRBanks: 0})
	cart, err := cartridge.LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("cartridge: %v", err)
	}
	return New(cart)
}

func tickUntil(p *PPU, scanline, dot int) {
	for i := 0; i < 89342*3; i++ {
		p.Tick()
		if p.scanline == scanline && p.dot == dot {
			return
		}
	}
	panic("tickUntil never reached target")
}

// TestCoarseXIncrement sweeps coarse X 31 across nametables and fine Y
// values: bits 0-4 clear, bit 10 toggles, everything else is preserved.
func TestCoarseXIncrement(t *testing.T) {
	p := newTestPPU(t)
	for base := uint16(0); base < 0x8000; base += 0x2B7 {
		v := base&0x7FE0 | 31
		p.v = v
		p.incrementCoarseX()
		if p.v&0x001F != 0 {
			t.Fatalf("v=$%04X: coarse X not cleared (got $%04X)", v, p.v)
		}
		if p.v&0x0400 == v&0x0400 {
			t.Fatalf("v=$%04X: horizontal NT bit not toggled", v)
		}
		if p.v&^uint16(0x041F) != v&^uint16(0x041F) {
			t.Fatalf("v=$%04X: unrelated bits changed (got $%04X)", v, p.v)
		}
	}

	// Below 31 it is a plain increment
	p.v = 5
	p.incrementCoarseX()
	if p.v != 6 {
		t.Errorf("v = $%04X, want $0006", p.v)
	}
}

func TestYIncrement(t *testing.T) {
	p := newTestPPU(t)

	t.Run("fine Y below 7", func(t *testing.T) {
		p.v = 0x1000
		p.incrementY()
		if p.v != 0x2000 {
			t.Errorf("v = $%04X, want $2000", p.v)
		}
	})

	t.Run("coarse Y 29 wraps and flips NT", func(t *testing.T) {
		p.v = 0x7000 | 29<<5
		p.incrementY()
		if p.v&0x7000 != 0 {
			t.Error("fine Y not cleared")
		}
		if p.v&0x03E0 != 0 {
			t.Error("coarse Y not cleared")
		}
		if p.v&0x0800 == 0 {
			t.Error("vertical NT bit not toggled")
		}
	})

	t.Run("coarse Y 31 wraps without NT flip", func(t *testing.T) {
		p.v = 0x7000 | 31<<5
		p.incrementY()
		if p.v&0x03E0 != 0 {
			t.Error("coarse Y not cleared")
		}
		if p.v&0x0800 != 0 {
			t.Error("vertical NT bit must not toggle from the illegal row")
		}
	})

	t.Run("plain coarse Y step", func(t *testing.T) {
		p.v = 0x7000 | 3<<5
		p.incrementY()
		if p.v != 4<<5 {
			t.Errorf("v = $%04X, want $%04X", p.v, uint16(4<<5))
		}
	})
}

func TestScrollCopies(t *testing.T) {
	p := newTestPPU(t)
	p.v = 0x7FFF
	p.t = 0x0000
	p.copyHorizontal()
	if p.v != 0x7BE0 {
		t.Errorf("horizontal copy: v = $%04X, want $7BE0", p.v)
	}

	p.v = 0x7FFF
	p.t = 0x0000
	p.copyVertical()
	if p.v != 0x041F {
		t.Errorf("vertical copy: v = $%04X, want $041F", p.v)
	}
}

func TestPaletteMirrors(t *testing.T) {
	p := newTestPPU(t)
	pairs := [][2]uint16{
		{0x3F10, 0x3F00}, {0x3F14, 0x3F04}, {0x3F18, 0x3F08}, {0x3F1C, 0x3F0C},
	}
	for _, pair := range pairs {
		p.Write(pair[0], 0x21)
		if got := p.Read(pair[1]); got != 0x21 {
			t.Errorf("write $%04X not visible at $%04X (got $%02X)", pair[0], pair[1], got)
		}
		p.Write(pair[1], 0x12)
		if got := p.Read(pair[0]); got != 0x12 {
			t.Errorf("write $%04X not visible at $%04X (got $%02X)", pair[1], pair[0], got)
		}
	}
}

func TestNametableMirroring(t *testing.T) {
	tests := []struct {
		mode cartridge.MirrorMode
		a, b uint16
		same bool
	}{
		{cartridge.MirrorHorizontal, 0x2000, 0x2400, true},
		{cartridge.MirrorHorizontal, 0x2000, 0x2800, false},
		{cartridge.MirrorVertical, 0x2000, 0x2800, true},
		{cartridge.MirrorVertical, 0x2000, 0x2400, false},
		{cartridge.MirrorSingleScreen0, 0x2000, 0x2C00, true},
	}
	for _, tt := range tests {
		got := mapNT(tt.a, tt.mode) == mapNT(tt.b, tt.mode)
		if got != tt.same {
			t.Errorf("mode %d: $%04X/$%04X aliased=%v, want %v", tt.mode, tt.a, tt.b, got, tt.same)
		}
	}
}

func TestScrollRegisterWrites(t *testing.T) {
	p := newTestPPU(t)

	p.WriteRegister(0x2000, 0x03)
	if p.t&0x0C00 != 0x0C00 {
		t.Error("PPUCTRL nametable bits not copied into t")
	}

	p.WriteRegister(0x2005, 0x7D) // coarse X = $0F, fine X = 5
	if p.t&0x001F != 0x0F {
		t.Errorf("t coarse X = %d, want 15", p.t&0x1F)
	}
	if p.fineX != 5 {
		t.Errorf("fineX = %d, want 5", p.fineX)
	}

	p.WriteRegister(0x2005, 0x5E) // coarse Y = $0B, fine Y = 6
	if got := p.t >> 12 & 7; got != 6 {
		t.Errorf("t fine Y = %d, want 6", got)
	}
	if got := p.t >> 5 & 0x1F; got != 0x0B {
		t.Errorf("t coarse Y = %d, want 11", got)
	}
}

func TestAddrRegisterWrites(t *testing.T) {
	p := newTestPPU(t)
	p.WriteRegister(0x2006, 0x3F)
	if p.v != 0 {
		t.Error("first PPUADDR write must not touch v")
	}
	p.WriteRegister(0x2006, 0x10)
	if p.v != 0x3F10 {
		t.Errorf("v = $%04X, want $3F10", p.v)
	}

	// Bit 14 is cleared by the first write
	p.WriteRegister(0x2006, 0x7F)
	p.WriteRegister(0x2006, 0xFF)
	if p.v != 0x3FFF {
		t.Errorf("v = $%04X, want $3FFF", p.v)
	}
}

func TestStatusReadClearsToggle(t *testing.T) {
	p := newTestPPU(t)
	p.WriteRegister(0x2005, 0x10) // w -> 1
	p.ReadRegister(0x2002)        // clears w
	p.WriteRegister(0x2005, 0xF8) // must act as a first write again
	if p.t&0x001F != 0x1F {
		t.Errorf("t coarse X = %d, want 31 (toggle was not reset)", p.t&0x1F)
	}
}

func TestBufferedDataRead(t *testing.T) {
	p := newTestPPU(t)

	setAddr := func(addr uint16) {
		p.WriteRegister(0x2006, uint8(addr>>8))
		p.WriteRegister(0x2006, uint8(addr))
	}

	setAddr(0x2000)
	p.WriteRegister(0x2007, 0x55)

	setAddr(0x2000)
	first := p.ReadRegister(0x2007)
	second := p.ReadRegister(0x2007)
	if first == 0x55 {
		t.Error("first read must return the stale buffer")
	}
	if second != 0x55 {
		t.Errorf("second read = $%02X, want $55 (buffered contract)", second)
	}
}

func TestPaletteReadBypassesBuffer(t *testing.T) {
	p := newTestPPU(t)
	setAddr := func(addr uint16) {
		p.WriteRegister(0x2006, uint8(addr>>8))
		p.WriteRegister(0x2006, uint8(addr))
	}

	setAddr(0x3F01)
	p.WriteRegister(0x2007, 0x2A)
	setAddr(0x3F01)
	if got := p.ReadRegister(0x2007); got != 0x2A {
		t.Errorf("palette read = $%02X, want $2A (no buffering)", got)
	}
}

func TestDataReadIncrementBy32(t *testing.T) {
	p := newTestPPU(t)
	p.WriteRegister(0x2000, 0x04)
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.ReadRegister(0x2007)
	if p.v != 0x2020 {
		t.Errorf("v = $%04X, want $2020", p.v)
	}
}

func TestOAMDataWrites(t *testing.T) {
	p := newTestPPU(t)
	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0xAA)
	p.WriteRegister(0x2004, 0xBB)
	if p.oam[0x10] != 0xAA || p.oam[0x11] != 0xBB {
		t.Error("OAMDATA writes must auto-increment OAMADDR")
	}
	p.WriteRegister(0x2003, 0x10)
	if got := p.ReadRegister(0x2004); got != 0xAA {
		t.Errorf("OAMDATA read = $%02X, want $AA", got)
	}
}

func TestVBlankFlagTiming(t *testing.T) {
	p := newTestPPU(t)

	tickUntil(p, 241, 1)
	if p.status&0x80 == 0 {
		t.Fatal("vblank flag not set at (241,1)")
	}
	if !p.NMIOccurred() {
		t.Fatal("nmi_occurred not set at vblank entry")
	}

	// Reading $2002 clears the flag and the NMI latch
	value := p.ReadRegister(0x2002)
	if value&0x80 == 0 {
		t.Error("status read must report the vblank flag")
	}
	if p.status&0x80 != 0 || p.NMIOccurred() {
		t.Error("status read must clear vblank state")
	}

	// Pre-render clears everything for the next frame
	tickUntil(p, 261, 2)
	if p.status&0xE0 != 0 {
		t.Error("pre-render line must clear vblank/sprite flags")
	}
}

func TestOddFrameDotSkip(t *testing.T) {
	frameLengths := func(p *PPU, frames int) []int {
		var lengths []int
		tickUntil(p, 0, 0)
		count := 0
		for len(lengths) < frames {
			p.Tick()
			count++
			if p.scanline == 0 && p.dot == 0 {
				lengths = append(lengths, count)
				count = 0
			}
		}
		return lengths
	}

	t.Run("rendering disabled", func(t *testing.T) {
		p := newTestPPU(t)
		for i, n := range frameLengths(p, 3) {
			if n != 89342 {
				t.Errorf("frame %d = %d dots, want 89342", i, n)
			}
		}
	})

	t.Run("rendering enabled", func(t *testing.T) {
		p := newTestPPU(t)
		p.WriteRegister(0x2001, 0x08)
		short, long := 0, 0
		for _, n := range frameLengths(p, 4) {
			switch n {
			case 89341:
				short++
			case 89342:
				long++
			default:
				t.Fatalf("unexpected frame length %d", n)
			}
		}
		if short != 2 || long != 2 {
			t.Errorf("frame lengths: %d short / %d long, want alternating 2/2", short, long)
		}
	})
}

func TestSpriteOverflowFlag(t *testing.T) {
	p := newTestPPU(t)
	p.WriteRegister(0x2001, 0x18)

	// Nine sprites on scanline 50
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 49
		p.oam[i*4+1] = 0
		p.oam[i*4+2] = 0
		p.oam[i*4+3] = uint8(i * 16)
	}
	for i := 9; i < 64; i++ {
		p.oam[i*4] = 0xFF
	}

	p.scanline = 50
	p.evaluateSprites()
	if p.secCount != 8 {
		t.Errorf("selected sprites = %d, want 8", p.secCount)
	}
	if p.status&0x20 == 0 {
		t.Error("sprite overflow flag not set for a ninth in-range sprite")
	}

	// Exactly eight sprites must not overflow
	p.status = 0
	p.oam[8*4] = 0xFF
	p.evaluateSprites()
	if p.status&0x20 != 0 {
		t.Error("overflow flag set with exactly eight sprites")
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p := newTestPPU(t)

	// Solid tile 0 (background) and tile 1 (sprite) in CHR RAM
	for row := uint16(0); row < 8; row++ {
		p.Write(row, 0xFF)    // tile 0 low plane
		p.Write(16+row, 0xFF) // tile 1 low plane
	}

	// Sprite 0 at (100, 100)
	p.oam[0] = 99
	p.oam[1] = 1
	p.oam[2] = 0
	p.oam[3] = 100
	for i := 1; i < 64; i++ {
		p.oam[i*4] = 0xFF
	}

	p.WriteRegister(0x2001, 0x1E) // BG + SP + both left-8 windows

	tickUntil(p, 110, 0)
	if p.status&0x40 == 0 {
		t.Fatal("sprite-0 hit flag not set")
	}
}

func TestSpriteZeroHitRequiresBothPlanes(t *testing.T) {
	p := newTestPPU(t)

	// Only the sprite tile is solid; the background stays transparent
	for row := uint16(0); row < 8; row++ {
		p.Write(16+row, 0xFF)
	}
	p.oam[0] = 99
	p.oam[1] = 1
	p.oam[2] = 0
	p.oam[3] = 100
	for i := 1; i < 64; i++ {
		p.oam[i*4] = 0xFF
	}
	p.WriteRegister(0x2001, 0x1E)

	tickUntil(p, 110, 0)
	if p.status&0x40 != 0 {
		t.Fatal("sprite-0 hit must require a non-transparent background pixel")
	}
}

func TestOAMDMACopiesWithWrap(t *testing.T) {
	p := newTestPPU(t)
	src := &pageSource{}
	for i := range src.data {
		src.data[i] = uint8(i)
	}

	p.WriteRegister(0x2003, 0xF0)
	p.OAMDMA(src, 0x02)

	for i := 0; i < 256; i++ {
		want := uint8(i)
		got := p.oam[uint8(0xF0+uint8(i))]
		if got != want {
			t.Fatalf("oam[$%02X] = $%02X, want $%02X", uint8(0xF0+uint8(i)), got, want)
		}
	}
	if p.oamAddr != 0xF0 {
		t.Errorf("OAMADDR = $%02X, want unchanged $F0", p.oamAddr)
	}
}

type pageSource struct {
	data [256]uint8
}

func (s *pageSource) Read(address uint16) uint8 {
	if address>>8 != 0x02 {
		return 0
	}
	return s.data[address&0xFF]
}
