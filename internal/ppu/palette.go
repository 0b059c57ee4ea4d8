package ppu

// NESPalette is the fixed 64-entry NTSC palette, packed as 0xAARRGGBB.
// The values are the widely used Nesdev approximation.
var NESPalette = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0700, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0E9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFFFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36CFF, 0xFFFF6EBC, 0xFFFF7D6A, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFFFF, 0xFFC0E0FF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFFC4EA, 0xFFFFC9C9, 0xFFF2D3A6,
	0xFFE5DE8A, 0xFFCCEA8E, 0xFFB7F4A5, 0xFFA9F4C7, 0xFFA7E9EE, 0xFFA8A8A8, 0xFF000000, 0xFF000000,
}
