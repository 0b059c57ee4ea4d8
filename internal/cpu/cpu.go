// Package cpu implements the 2A03's 6502 core for the NES.
package cpu

// AddressingMode selects how an instruction's operand address is formed.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01

	zeroPageMask = 0xFF
	pageMask     = 0xFF00

	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Bus is the CPU's view of the rest of the console: the address decoder
// plus the level-sensitive IRQ lines the CPU samples at instruction
// boundaries.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	MapperIRQ() bool
	APUIRQ() bool
	MapperIRQAck()
}

// Instruction describes one opcode's decode metadata.
type Instruction struct {
	Name   string
	Bytes  uint8
	Cycles uint8
	Mode   AddressingMode
}

// CPU represents the 6502 processor used in the NES. Decimal mode is
// decoded but inert, as on the 2A03.
type CPU struct {
	// Registers
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	// Status flags. B is not a stored flag; it only exists on pushed
	// copies of P, and the unused bit always reads as 1.
	C bool
	Z bool
	I bool
	D bool
	V bool
	N bool

	bus Bus

	cycles uint64

	instructions [256]*Instruction

	// Interrupt state
	pendingNMI bool
	pendingIRQ bool

	// irqDelay suppresses IRQ recognition for exactly one instruction
	// boundary after CLI/SEI/PLP/RTI change the I flag.
	irqDelay int

	// dmaStall freezes instruction fetch while OAM DMA cycles elapse.
	dmaStall int
}

// New creates a CPU attached to the given bus.
func New(bus Bus) *CPU {
	cpu := &CPU{bus: bus, SP: 0xFD}
	cpu.initInstructions()
	return cpu
}

// Reset loads the reset vector and restores the power-on register state:
// S=$FD, P=$24 (I and the unused bit set).
func (cpu *CPU) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = 0xFD

	cpu.C = false
	cpu.Z = false
	cpu.I = true
	cpu.D = false
	cpu.V = false
	cpu.N = false

	lo := uint16(cpu.bus.Read(resetVector))
	hi := uint16(cpu.bus.Read(resetVector + 1))
	cpu.PC = hi<<8 | lo

	cpu.cycles = 0
	cpu.pendingNMI = false
	cpu.pendingIRQ = false
	cpu.irqDelay = 0
	cpu.dmaStall = 0
}

// NMI posts a non-maskable interrupt edge; it is serviced at the next
// instruction boundary.
func (cpu *CPU) NMI() {
	cpu.pendingNMI = true
}

// IRQ latches a maskable interrupt request.
func (cpu *CPU) IRQ() {
	cpu.pendingIRQ = true
}

// AddDMAStall freezes the CPU for the given number of cycles. The APU
// and PPU keep ticking during the stall.
func (cpu *CPU) AddDMAStall(cycles int) {
	cpu.dmaStall += cycles
}

// Cycles returns the cumulative cycle count since reset.
func (cpu *CPU) Cycles() uint64 {
	return cpu.cycles
}

// Step executes one instruction, or services an interrupt, or burns one
// DMA stall cycle. Returns the number of CPU cycles consumed.
func (cpu *CPU) Step() int {
	if cpu.dmaStall > 0 {
		cpu.dmaStall--
		cpu.cycles++
		return 1
	}

	// Only the boundary immediately after CLI/SEI/PLP/RTI is suppressed.
	suppress := cpu.irqDelay != 0
	cpu.irqDelay = 0

	if !suppress && !cpu.I && (cpu.bus.MapperIRQ() || cpu.bus.APUIRQ()) {
		cpu.pendingIRQ = true
	}

	if cpu.pendingNMI {
		cpu.pendingNMI = false
		cpu.interrupt(nmiVector)
		return 7
	}

	if cpu.pendingIRQ && !cpu.I {
		cpu.pendingIRQ = false
		cpu.interrupt(irqVector)
		cpu.bus.MapperIRQAck()
		return 7
	}

	opcode := cpu.bus.Read(cpu.PC)
	instruction := cpu.instructions[opcode]
	if instruction == nil {
		// Unknown opcodes execute as 2-cycle NOPs; emulation never faults.
		cpu.PC++
		cpu.cycles += 2
		return 2
	}

	address, pageCrossed := cpu.getOperandAddress(instruction.Mode)
	extraCycles := cpu.executeInstruction(opcode, address, pageCrossed)

	if pageCrossed && readOpPageCrossPenalty(opcode) {
		extraCycles++
	}

	total := int(instruction.Cycles) + int(extraCycles)
	cpu.cycles += uint64(total)
	return total
}

// readOpPageCrossPenalty reports whether the opcode pays +1 cycle when
// an indexed read crosses a page. Stores and read-modify-write forms
// carry the extra cycle in their base cost instead.
func readOpPageCrossPenalty(opcode uint8) bool {
	switch opcode {
	case 0xBD, 0xB9, 0xB1, // LDA
		0xBE, 0xBC, // LDX, LDY
		0x7D, 0x79, 0x71, // ADC
		0xFD, 0xF9, 0xF1, // SBC
		0x3D, 0x39, 0x31, // AND
		0x1D, 0x19, 0x11, // ORA
		0x5D, 0x59, 0x51, // EOR
		0xDD, 0xD9, 0xD1, // CMP
		0xB3, 0xBF, // LAX
		0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC: // NOP abs,X
		return true
	}
	return false
}

// interrupt runs the 7-cycle interrupt sequence through the given vector,
// pushing P with B clear.
func (cpu *CPU) interrupt(vector uint16) {
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.statusByte())
	cpu.I = true
	lo := uint16(cpu.bus.Read(vector))
	hi := uint16(cpu.bus.Read(vector + 1))
	cpu.PC = hi<<8 | lo
	cpu.cycles += 7
}

// getOperandAddress resolves the effective address for the addressing
// mode, advancing PC past the operand bytes. The second return reports
// whether an indexed access crossed a page boundary.
func (cpu *CPU) getOperandAddress(mode AddressingMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		cpu.PC++
		return 0, false

	case Immediate:
		address := cpu.PC + 1
		cpu.PC += 2
		return address, false

	case ZeroPage:
		address := uint16(cpu.bus.Read(cpu.PC + 1))
		cpu.PC += 2
		return address, false

	case ZeroPageX:
		base := cpu.bus.Read(cpu.PC + 1)
		cpu.PC += 2
		return uint16(base+cpu.X) & zeroPageMask, false

	case ZeroPageY:
		base := cpu.bus.Read(cpu.PC + 1)
		cpu.PC += 2
		return uint16(base+cpu.Y) & zeroPageMask, false

	case Relative:
		offset := int8(cpu.bus.Read(cpu.PC + 1))
		next := cpu.PC + 2
		target := uint16(int32(next) + int32(offset))
		cpu.PC = next
		return target, next&pageMask != target&pageMask

	case Absolute:
		lo := uint16(cpu.bus.Read(cpu.PC + 1))
		hi := uint16(cpu.bus.Read(cpu.PC + 2))
		cpu.PC += 3
		return hi<<8 | lo, false

	case AbsoluteX:
		lo := uint16(cpu.bus.Read(cpu.PC + 1))
		hi := uint16(cpu.bus.Read(cpu.PC + 2))
		base := hi<<8 | lo
		address := base + uint16(cpu.X)
		cpu.PC += 3
		return address, base&pageMask != address&pageMask

	case AbsoluteY:
		lo := uint16(cpu.bus.Read(cpu.PC + 1))
		hi := uint16(cpu.bus.Read(cpu.PC + 2))
		base := hi<<8 | lo
		address := base + uint16(cpu.Y)
		cpu.PC += 3
		return address, base&pageMask != address&pageMask

	case Indirect: // JMP only
		lo := uint16(cpu.bus.Read(cpu.PC + 1))
		hi := uint16(cpu.bus.Read(cpu.PC + 2))
		ptr := hi<<8 | lo
		cpu.PC += 3
		// 6502 bug: the pointer's high byte fetch does not cross pages
		addrLo := uint16(cpu.bus.Read(ptr))
		addrHi := uint16(cpu.bus.Read(ptr&pageMask | (ptr+1)&zeroPageMask))
		return addrHi<<8 | addrLo, false

	case IndexedIndirect: // (zp,X)
		base := cpu.bus.Read(cpu.PC + 1)
		cpu.PC += 2
		ptr := base + cpu.X
		lo := uint16(cpu.bus.Read(uint16(ptr)))
		hi := uint16(cpu.bus.Read(uint16(ptr + 1)))
		return hi<<8 | lo, false

	case IndirectIndexed: // (zp),Y
		ptr := cpu.bus.Read(cpu.PC + 1)
		cpu.PC += 2
		lo := uint16(cpu.bus.Read(uint16(ptr)))
		hi := uint16(cpu.bus.Read(uint16(ptr + 1)))
		base := hi<<8 | lo
		address := base + uint16(cpu.Y)
		return address, base&pageMask != address&pageMask

	default:
		return 0, false
	}
}

// Stack helpers

func (cpu *CPU) push(value uint8) {
	cpu.bus.Write(stackBase+uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) pop() uint8 {
	cpu.SP++
	return cpu.bus.Read(stackBase + uint16(cpu.SP))
}

func (cpu *CPU) pushWord(value uint16) {
	cpu.push(uint8(value >> 8))
	cpu.push(uint8(value))
}

func (cpu *CPU) popWord() uint16 {
	lo := uint16(cpu.pop())
	hi := uint16(cpu.pop())
	return hi<<8 | lo
}

// setZN sets the Zero and Negative flags from value.
func (cpu *CPU) setZN(value uint8) {
	cpu.Z = value == 0
	cpu.N = value&nFlagMask != 0
}

// statusByte assembles P with the unused bit set and B clear; pushed
// copies from BRK/PHP OR in the B bit themselves.
func (cpu *CPU) statusByte() uint8 {
	status := uint8(unusedMask)
	if cpu.N {
		status |= nFlagMask
	}
	if cpu.V {
		status |= vFlagMask
	}
	if cpu.D {
		status |= dFlagMask
	}
	if cpu.I {
		status |= iFlagMask
	}
	if cpu.Z {
		status |= zFlagMask
	}
	if cpu.C {
		status |= cFlagMask
	}
	return status
}

// setStatusByte restores P from a pulled byte; the B and unused bits of
// the source are ignored.
func (cpu *CPU) setStatusByte(status uint8) {
	cpu.N = status&nFlagMask != 0
	cpu.V = status&vFlagMask != 0
	cpu.D = status&dFlagMask != 0
	cpu.I = status&iFlagMask != 0
	cpu.Z = status&zFlagMask != 0
	cpu.C = status&cFlagMask != 0
}

// StatusByte exposes P for the session and tests.
func (cpu *CPU) StatusByte() uint8 { return cpu.statusByte() }

// Instruction implementations

func (cpu *CPU) lda(address uint16) {
	cpu.A = cpu.bus.Read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ldx(address uint16) {
	cpu.X = cpu.bus.Read(address)
	cpu.setZN(cpu.X)
}

func (cpu *CPU) ldy(address uint16) {
	cpu.Y = cpu.bus.Read(address)
	cpu.setZN(cpu.Y)
}

func (cpu *CPU) adcValue(value uint8) {
	carry := uint16(0)
	if cpu.C {
		carry = 1
	}
	sum := uint16(cpu.A) + uint16(value) + carry
	result := uint8(sum)
	cpu.C = sum > 0xFF
	cpu.V = (^(cpu.A^value)&(cpu.A^result))&0x80 != 0
	cpu.A = result
	cpu.setZN(cpu.A)
}

func (cpu *CPU) adc(address uint16) {
	cpu.adcValue(cpu.bus.Read(address))
}

// sbc is ADC of the complement; decimal mode is ignored on the 2A03.
func (cpu *CPU) sbc(address uint16) {
	cpu.adcValue(cpu.bus.Read(address) ^ 0xFF)
}

func (cpu *CPU) and(address uint16) {
	cpu.A &= cpu.bus.Read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ora(address uint16) {
	cpu.A |= cpu.bus.Read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) eor(address uint16) {
	cpu.A ^= cpu.bus.Read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) aslMem(address uint16) uint8 {
	value := cpu.bus.Read(address)
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.bus.Write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) lsrMem(address uint16) uint8 {
	value := cpu.bus.Read(address)
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.bus.Write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) rolMem(address uint16) uint8 {
	value := cpu.bus.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.bus.Write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) rorMem(address uint16) uint8 {
	value := cpu.bus.Read(address)
	oldCarry := cpu.C
	cpu.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.bus.Write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) compare(register uint8, address uint16) {
	value := cpu.bus.Read(address)
	cpu.C = register >= value
	cpu.setZN(register - value)
}

func (cpu *CPU) bit(address uint16) {
	value := cpu.bus.Read(address)
	cpu.N = value&nFlagMask != 0
	cpu.V = value&vFlagMask != 0
	cpu.Z = cpu.A&value == 0
}

// branch takes the branch when cond holds; +1 cycle taken, +1 more when
// the target is on a different page than the next instruction.
func (cpu *CPU) branch(cond bool, address uint16, pageCrossed bool) uint8 {
	if !cond {
		return 0
	}
	cpu.PC = address
	if pageCrossed {
		return 2
	}
	return 1
}

func (cpu *CPU) brk() {
	// BRK pushes the address of the byte after its padding byte
	cpu.PC++
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.statusByte() | bFlagMask)
	cpu.I = true
	lo := uint16(cpu.bus.Read(irqVector))
	hi := uint16(cpu.bus.Read(irqVector + 1))
	cpu.PC = hi<<8 | lo
}

// executeInstruction dispatches the opcode. Returns extra cycles beyond
// the table's base count (taken branches only; indexed-read page-cross
// penalties are applied by Step).
func (cpu *CPU) executeInstruction(opcode uint8, address uint16, pageCrossed bool) uint8 {
	switch opcode {
	// Load/store
	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1: // LDA
		cpu.lda(address)
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE: // LDX
		cpu.ldx(address)
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC: // LDY
		cpu.ldy(address)
	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91: // STA
		cpu.bus.Write(address, cpu.A)
	case 0x86, 0x96, 0x8E: // STX
		cpu.bus.Write(address, cpu.X)
	case 0x84, 0x94, 0x8C: // STY
		cpu.bus.Write(address, cpu.Y)

	// Arithmetic
	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71: // ADC
		cpu.adc(address)
	case 0xE9, 0xEB, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1: // SBC ($EB unofficial)
		cpu.sbc(address)

	// Logic
	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31: // AND
		cpu.and(address)
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11: // ORA
		cpu.ora(address)
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51: // EOR
		cpu.eor(address)

	// Shifts and rotates
	case 0x0A: // ASL A
		cpu.C = cpu.A&0x80 != 0
		cpu.A <<= 1
		cpu.setZN(cpu.A)
	case 0x06, 0x16, 0x0E, 0x1E: // ASL
		cpu.aslMem(address)
	case 0x4A: // LSR A
		cpu.C = cpu.A&0x01 != 0
		cpu.A >>= 1
		cpu.setZN(cpu.A)
	case 0x46, 0x56, 0x4E, 0x5E: // LSR
		cpu.lsrMem(address)
	case 0x2A: // ROL A
		oldCarry := cpu.C
		cpu.C = cpu.A&0x80 != 0
		cpu.A <<= 1
		if oldCarry {
			cpu.A |= 0x01
		}
		cpu.setZN(cpu.A)
	case 0x26, 0x36, 0x2E, 0x3E: // ROL
		cpu.rolMem(address)
	case 0x6A: // ROR A
		oldCarry := cpu.C
		cpu.C = cpu.A&0x01 != 0
		cpu.A >>= 1
		if oldCarry {
			cpu.A |= 0x80
		}
		cpu.setZN(cpu.A)
	case 0x66, 0x76, 0x6E, 0x7E: // ROR
		cpu.rorMem(address)

	// Compare
	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1: // CMP
		cpu.compare(cpu.A, address)
	case 0xE0, 0xE4, 0xEC: // CPX
		cpu.compare(cpu.X, address)
	case 0xC0, 0xC4, 0xCC: // CPY
		cpu.compare(cpu.Y, address)

	// Increment/decrement
	case 0xE6, 0xF6, 0xEE, 0xFE: // INC
		value := cpu.bus.Read(address) + 1
		cpu.bus.Write(address, value)
		cpu.setZN(value)
	case 0xC6, 0xD6, 0xCE, 0xDE: // DEC
		value := cpu.bus.Read(address) - 1
		cpu.bus.Write(address, value)
		cpu.setZN(value)
	case 0xE8: // INX
		cpu.X++
		cpu.setZN(cpu.X)
	case 0xCA: // DEX
		cpu.X--
		cpu.setZN(cpu.X)
	case 0xC8: // INY
		cpu.Y++
		cpu.setZN(cpu.Y)
	case 0x88: // DEY
		cpu.Y--
		cpu.setZN(cpu.Y)

	// Transfers
	case 0xAA: // TAX
		cpu.X = cpu.A
		cpu.setZN(cpu.X)
	case 0x8A: // TXA
		cpu.A = cpu.X
		cpu.setZN(cpu.A)
	case 0xA8: // TAY
		cpu.Y = cpu.A
		cpu.setZN(cpu.Y)
	case 0x98: // TYA
		cpu.A = cpu.Y
		cpu.setZN(cpu.A)
	case 0xBA: // TSX
		cpu.X = cpu.SP
		cpu.setZN(cpu.X)
	case 0x9A: // TXS
		cpu.SP = cpu.X

	// Stack
	case 0x48: // PHA
		cpu.push(cpu.A)
	case 0x68: // PLA
		cpu.A = cpu.pop()
		cpu.setZN(cpu.A)
	case 0x08: // PHP
		cpu.push(cpu.statusByte() | bFlagMask)
	case 0x28: // PLP
		cpu.setStatusByte(cpu.pop())
		cpu.irqDelay = 1

	// Flags
	case 0x18: // CLC
		cpu.C = false
	case 0x38: // SEC
		cpu.C = true
	case 0x58: // CLI
		cpu.I = false
		cpu.irqDelay = 1
	case 0x78: // SEI
		cpu.I = true
		cpu.irqDelay = 1
	case 0xB8: // CLV
		cpu.V = false
	case 0xD8: // CLD
		cpu.D = false
	case 0xF8: // SED
		cpu.D = true

	// Control flow
	case 0x4C, 0x6C: // JMP
		cpu.PC = address
	case 0x20: // JSR
		cpu.pushWord(cpu.PC - 1)
		cpu.PC = address
	case 0x60: // RTS
		cpu.PC = cpu.popWord() + 1
	case 0x40: // RTI
		cpu.setStatusByte(cpu.pop())
		cpu.PC = cpu.popWord()
		cpu.irqDelay = 1

	// Branches
	case 0x90: // BCC
		return cpu.branch(!cpu.C, address, pageCrossed)
	case 0xB0: // BCS
		return cpu.branch(cpu.C, address, pageCrossed)
	case 0xD0: // BNE
		return cpu.branch(!cpu.Z, address, pageCrossed)
	case 0xF0: // BEQ
		return cpu.branch(cpu.Z, address, pageCrossed)
	case 0x10: // BPL
		return cpu.branch(!cpu.N, address, pageCrossed)
	case 0x30: // BMI
		return cpu.branch(cpu.N, address, pageCrossed)
	case 0x50: // BVC
		return cpu.branch(!cpu.V, address, pageCrossed)
	case 0x70: // BVS
		return cpu.branch(cpu.V, address, pageCrossed)

	// Misc
	case 0x24, 0x2C: // BIT
		cpu.bit(address)
	case 0x00: // BRK
		cpu.brk()
	case 0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA, // NOP (official + implied unofficial)
		0x80, 0x82, 0x89, 0xC2, 0xE2, // NOP imm
		0x04, 0x44, 0x64, // NOP zp
		0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4, // NOP zp,X
		0x0C, // NOP abs
		0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC: // NOP abs,X

	// Unofficial combined opcodes
	case 0xA3, 0xA7, 0xAF, 0xB3, 0xB7, 0xBF: // LAX
		cpu.A = cpu.bus.Read(address)
		cpu.X = cpu.A
		cpu.setZN(cpu.A)
	case 0x83, 0x87, 0x8F, 0x97: // SAX
		cpu.bus.Write(address, cpu.A&cpu.X)
	case 0xC3, 0xC7, 0xCF, 0xD3, 0xD7, 0xDF, 0xDB: // DCP
		value := cpu.bus.Read(address) - 1
		cpu.bus.Write(address, value)
		cpu.C = cpu.A >= value
		cpu.setZN(cpu.A - value)
	case 0xE3, 0xE7, 0xEF, 0xF3, 0xF7, 0xFF, 0xFB: // ISB
		value := cpu.bus.Read(address) + 1
		cpu.bus.Write(address, value)
		cpu.adcValue(value ^ 0xFF)
	case 0x03, 0x07, 0x0F, 0x13, 0x17, 0x1F, 0x1B: // SLO
		value := cpu.aslMem(address)
		cpu.A |= value
		cpu.setZN(cpu.A)
	case 0x23, 0x27, 0x2F, 0x33, 0x37, 0x3F, 0x3B: // RLA
		value := cpu.rolMem(address)
		cpu.A &= value
		cpu.setZN(cpu.A)
	case 0x43, 0x47, 0x4F, 0x53, 0x57, 0x5F, 0x5B: // SRE
		value := cpu.lsrMem(address)
		cpu.A ^= value
		cpu.setZN(cpu.A)
	case 0x63, 0x67, 0x6F, 0x73, 0x77, 0x7F, 0x7B: // RRA
		value := cpu.rorMem(address)
		cpu.adcValue(value)
	}
	return 0
}
