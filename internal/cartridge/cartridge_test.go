package cartridge

import (
	"bytes"
	"testing"
)

func loadTestROM(t *testing.T, cfg TestROMConfig) *Cartridge {
	t.Helper()
	cart, err := LoadFromReader(bytes.NewReader(BuildTestROM(cfg)))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	return cart
}

func TestLoadRejectsBadMagic(t *testing.T) {
	rom := BuildTestROM(TestROMConfig{PRGBanks: 1})
	rom[0] = 'X'
	if _, err := LoadFromReader(bytes.NewReader(rom)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadRejectsZeroPRG(t *testing.T) {
	rom := BuildTestROM(TestROMConfig{PRGBanks: 1})
	rom[4] = 0
	if _, err := LoadFromReader(bytes.NewReader(rom[:headerSize])); err == nil {
		t.Fatal("expected error for zero PRG banks")
	}
}

func TestLoadRejectsShortImage(t *testing.T) {
	rom := BuildTestROM(TestROMConfig{PRGBanks: 2})
	if _, err := LoadFromReader(bytes.NewReader(rom[:headerSize+100])); err == nil {
		t.Fatal("expected error for truncated PRG data")
	}
}

func TestHeaderFields(t *testing.T) {
	tests := []struct {
		name   string
		cfg    TestROMConfig
		mapper uint8
		mirror MirrorMode
	}{
		{"nrom horizontal", TestROMConfig{MapperID: 0, PRGBanks: 1, CHRBanks: 1}, 0, MirrorHorizontal},
		{"nrom vertical", TestROMConfig{MapperID: 0, PRGBanks: 1, CHRBanks: 1, Vertical: true}, 0, MirrorVertical},
		{"mmc1", TestROMConfig{MapperID: 1, PRGBanks: 2, CHRBanks: 1}, 1, MirrorHorizontal},
		{"mmc3", TestROMConfig{MapperID: 4, PRGBanks: 2, CHRBanks: 1, Vertical: true}, 4, MirrorVertical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := loadTestROM(t, tt.cfg)
			if cart.MapperID() != tt.mapper {
				t.Errorf("mapper id = %d, want %d", cart.MapperID(), tt.mapper)
			}
			if cart.Mirroring() != tt.mirror {
				t.Errorf("mirroring = %d, want %d", cart.Mirroring(), tt.mirror)
			}
		})
	}
}

func TestMapperIDFromBothNibbles(t *testing.T) {
	rom := BuildTestROM(TestROMConfig{PRGBanks: 1, CHRBanks: 1})
	rom[6] |= 0x40 // mapper low nibble = 4
	rom[7] |= 0x10 // mapper high nibble = 1 -> id 20
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cart.MapperID() != 20 {
		t.Errorf("mapper id = %d, want 20", cart.MapperID())
	}
}

func TestUnsupportedMapperFallsBackToNROM(t *testing.T) {
	cart := loadTestROM(t, TestROMConfig{MapperID: 7, PRGBanks: 1, CHRBanks: 1})
	if _, ok := cart.Mapper().(*Mapper000); !ok {
		t.Errorf("mapper = %T, want *Mapper000 fallback", cart.Mapper())
	}
}

func TestCHRRAMWhenNoCHRBanks(t *testing.T) {
	cart := loadTestROM(t, TestROMConfig{PRGBanks: 1, CHRBanks: 0})
	cart.WriteCHR(0x1234, 0xAB)
	if got := cart.ReadCHR(0x1234); got != 0xAB {
		t.Errorf("CHR RAM read = $%02X, want $AB", got)
	}
}

func TestCHRROMIgnoresWrites(t *testing.T) {
	cart := loadTestROM(t, TestROMConfig{PRGBanks: 1, CHRBanks: 1, CHRFill: 0x11})
	cart.WriteCHR(0x0000, 0xAB)
	if got := cart.ReadCHR(0x0000); got != 0x11 {
		t.Errorf("CHR ROM read = $%02X, want $11", got)
	}
}

func TestTrainerLoadsIntoPRGRAM(t *testing.T) {
	trainer := make([]uint8, trainerSize)
	for i := range trainer {
		trainer[i] = uint8(i)
	}
	cart := loadTestROM(t, TestROMConfig{PRGBanks: 1, CHRBanks: 1, Trainer: trainer})

	// Trainer occupies $7000-$71FF
	if got := cart.ReadPRG(0x7000); got != 0x00 {
		t.Errorf("PRG RAM at $7000 = $%02X, want $00", got)
	}
	if got := cart.ReadPRG(0x70FF); got != 0xFF {
		t.Errorf("PRG RAM at $70FF = $%02X, want $FF", got)
	}
	if got := cart.ReadPRG(0x71FF); got != 0xFF {
		t.Errorf("PRG RAM at $71FF = $%02X, want $FF", got)
	}
}

func TestBatteryFlag(t *testing.T) {
	if loadTestROM(t, TestROMConfig{PRGBanks: 1, CHRBanks: 1}).HasBattery() {
		t.Error("battery flag set without header bit")
	}
	if !loadTestROM(t, TestROMConfig{PRGBanks: 1, CHRBanks: 1, Battery: true}).HasBattery() {
		t.Error("battery flag missing with header bit")
	}
}

func TestNES2RAMSizes(t *testing.T) {
	rom := BuildTestROM(TestROMConfig{MapperID: 1, PRGBanks: 1, CHRBanks: 0})
	rom[7] |= 0x08       // NES 2.0 marker
	rom[10] = 0x07       // PRG-RAM = 64 << 6 = 4096 bytes, no NVRAM
	rom[11] = 0x07       // CHR-RAM = 64 << 6 = 4096 bytes
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m, ok := cart.Mapper().(*Mapper001)
	if !ok {
		t.Fatalf("mapper = %T, want *Mapper001", cart.Mapper())
	}
	if len(m.PRGRAM()) != 4096 {
		t.Errorf("PRG RAM size = %d, want 4096", len(m.PRGRAM()))
	}
	if len(m.chr) != 4096 {
		t.Errorf("CHR RAM size = %d, want 4096", len(m.chr))
	}
	if cart.HasBattery() {
		t.Error("NES 2.0 image without NVRAM should not be battery backed")
	}
}

func TestResetVectorPlacement(t *testing.T) {
	cart := loadTestROM(t, TestROMConfig{PRGBanks: 1, CHRBanks: 1, ResetLo: 0x34, ResetHi: 0x12})
	if lo := cart.ReadPRG(0xFFFC); lo != 0x34 {
		t.Errorf("reset vector low = $%02X, want $34", lo)
	}
	if hi := cart.ReadPRG(0xFFFD); hi != 0x12 {
		t.Errorf("reset vector high = $%02X, want $12", hi)
	}
}
