package cartridge

// In-memory iNES image builder, used by tests across packages to
// construct cartridges without ROM files on disk.

// TestROMConfig describes an iNES image to synthesize.
type TestROMConfig struct {
	MapperID uint8
	PRGBanks int // 16KB units
	CHRBanks int // 8KB units, 0 means CHR RAM
	Vertical bool
	Battery  bool
	Trainer  []uint8 // 512 bytes when present
	ResetLo  uint8
	ResetHi  uint8
	PRGFill  uint8
	CHRFill  uint8
}

// BuildTestROM assembles an iNES byte image from the config. The reset
// vector is placed at the end of the last PRG bank.
func BuildTestROM(cfg TestROMConfig) []uint8 {
	if cfg.PRGBanks == 0 {
		cfg.PRGBanks = 1
	}

	header := make([]uint8, headerSize)
	header[0], header[1], header[2], header[3] = 'N', 'E', 'S', 0x1A
	header[4] = uint8(cfg.PRGBanks)
	header[5] = uint8(cfg.CHRBanks)
	header[6] = (cfg.MapperID & 0x0F) << 4
	if cfg.Vertical {
		header[6] |= 0x01
	}
	if cfg.Battery {
		header[6] |= 0x02
	}
	if len(cfg.Trainer) == trainerSize {
		header[6] |= 0x04
	}
	header[7] = cfg.MapperID & 0xF0

	prg := make([]uint8, cfg.PRGBanks*prgBankSize)
	for i := range prg {
		prg[i] = cfg.PRGFill
	}
	// Reset vector at $FFFC/$FFFD maps to the tail of the last bank
	prg[len(prg)-4] = cfg.ResetLo
	prg[len(prg)-3] = cfg.ResetHi

	chr := make([]uint8, cfg.CHRBanks*chrBankSize)
	for i := range chr {
		chr[i] = cfg.CHRFill
	}

	rom := make([]uint8, 0, len(header)+len(cfg.Trainer)+len(prg)+len(chr))
	rom = append(rom, header...)
	rom = append(rom, cfg.Trainer...)
	rom = append(rom, prg...)
	rom = append(rom, chr...)
	return rom
}
