// Package apu implements the NES Audio Processing Unit: two pulse
// channels, triangle, noise, the DMC, the frame sequencer and the
// nonlinear mixer.
package apu

// MemoryReader supplies CPU-bus bytes for DMC sample fetches.
type MemoryReader interface {
	Read(address uint16) uint8
}

// NTSC CPU frequency, used by the fractional resampler.
const cpuFrequency = 1789773.0

// lengthTable maps the 5-bit length index of the channel length loads.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// APU represents the audio unit, ticked once per CPU cycle.
type APU struct {
	pulse1   Pulse
	pulse2   Pulse
	triangle Triangle
	noise    Noise
	dmc      DMC

	memory MemoryReader

	// Frame sequencer. The cadence uses half-cycle trigger points, so
	// the accumulator is fractional.
	mode5      bool
	irqInhibit bool
	frameIRQ   bool
	fcCycle    float64
	fcStep     int

	dmcIRQ bool

	// Resampler state
	sampleRate    int
	samplesPerCPU float64
	sampleAcc     float64
	samples       []int16
}

// New creates an APU with the default 4-step sequencer and a 44.1kHz
// output rate.
func New() *APU {
	apu := &APU{}
	apu.Reset()
	apu.SetSampleRate(44100)
	return apu
}

// SetMemory attaches the CPU bus for DMC sample reads.
func (apu *APU) SetMemory(memory MemoryReader) {
	apu.memory = memory
}

// SetSampleRate selects the host audio rate for the resampler.
func (apu *APU) SetSampleRate(rate int) {
	apu.sampleRate = rate
	apu.samplesPerCPU = float64(rate) / cpuFrequency
}

// Reset restores power-on channel and sequencer state.
func (apu *APU) Reset() {
	apu.pulse1 = Pulse{isPulse1: true}
	apu.pulse2 = Pulse{}
	apu.triangle = Triangle{}
	apu.noise = Noise{lfsr: 1}
	apu.dmc = DMC{bits: 8, silence: true, rate: dmcRates[0]}

	apu.mode5 = false
	apu.irqInhibit = false
	apu.frameIRQ = false
	apu.fcCycle = 0
	apu.fcStep = 0
	apu.dmcIRQ = false
	apu.sampleAcc = 0
	apu.samples = apu.samples[:0]
}

// IRQLine reports the level of the combined frame/DMC IRQ line.
func (apu *APU) IRQLine() bool {
	return apu.frameIRQ || apu.dmcIRQ
}

// Samples returns the mono s16 samples produced since the last call.
func (apu *APU) Samples() []int16 {
	out := apu.samples
	apu.samples = apu.samples[:0]
	return out
}

func (apu *APU) quarterFrame() {
	apu.pulse1.clockEnvelope()
	apu.pulse2.clockEnvelope()
	apu.triangle.clockLinearCounter()
	apu.noise.clockEnvelope()
}

func (apu *APU) halfFrame() {
	apu.pulse1.clockLengthAndSweep()
	apu.pulse2.clockLengthAndSweep()
	apu.triangle.clockLength()
	apu.noise.clockLength()
}

// resetFrameSequencer applies a $4017 write: the sequence restarts, and
// a write with bit 7 set clocks a quarter and a half frame immediately.
func (apu *APU) resetFrameSequencer(fiveStep, inhibit bool) {
	apu.mode5 = fiveStep
	apu.irqInhibit = inhibit
	apu.fcCycle = 0
	apu.fcStep = 0
	if inhibit {
		apu.frameIRQ = false
	}
	if fiveStep {
		apu.quarterFrame()
		apu.halfFrame()
	}
}

// clockFrameSequencer advances the sequencer by one CPU cycle.
// 4-step: quarter clocks at 3729.5, 7457.5, 11186.5 and 14915 cycles,
// half clocks at 7457.5 and 14915, with the frame IRQ at the wrap.
// 5-step: quarter at 3729.5, 7457.5, 11186.5, 14915.5 and 18641, half
// at 7457.5 and 14915.5, no IRQ.
func (apu *APU) clockFrameSequencer() {
	apu.fcCycle++
	if !apu.mode5 {
		if apu.fcCycle >= 3729.5 && apu.fcStep == 0 {
			apu.quarterFrame()
			apu.fcStep = 1
		}
		if apu.fcCycle >= 7457.5 && apu.fcStep <= 1 {
			apu.quarterFrame()
			apu.halfFrame()
			apu.fcStep = 2
		}
		if apu.fcCycle >= 11186.5 && apu.fcStep <= 2 {
			apu.quarterFrame()
			apu.fcStep = 3
		}
		if apu.fcCycle >= 14915.0 && apu.fcStep <= 3 {
			apu.quarterFrame()
			apu.halfFrame()
			if !apu.irqInhibit {
				apu.frameIRQ = true
			}
			apu.fcCycle -= 14915.0
			apu.fcStep = 0
		}
		return
	}
	if apu.fcCycle >= 3729.5 && apu.fcStep == 0 {
		apu.quarterFrame()
		apu.fcStep = 1
	}
	if apu.fcCycle >= 7457.5 && apu.fcStep <= 1 {
		apu.quarterFrame()
		apu.halfFrame()
		apu.fcStep = 2
	}
	if apu.fcCycle >= 11186.5 && apu.fcStep <= 2 {
		apu.quarterFrame()
		apu.fcStep = 3
	}
	if apu.fcCycle >= 14915.5 && apu.fcStep <= 3 {
		apu.quarterFrame()
		apu.halfFrame()
		apu.fcStep = 4
	}
	if apu.fcCycle >= 18641.0 && apu.fcStep <= 4 {
		apu.quarterFrame()
		apu.fcCycle -= 18641.0
		apu.fcStep = 0
	}
}

// TickCPU advances the APU by one CPU cycle: channel timers, the frame
// sequencer, and the output resampler.
func (apu *APU) TickCPU() {
	apu.pulse1.clockTimer()
	apu.pulse2.clockTimer()
	apu.triangle.clockTimer()
	apu.noise.clockTimer()
	apu.clockDMC()

	apu.clockFrameSequencer()

	apu.sampleAcc += apu.samplesPerCPU
	for apu.sampleAcc >= 1 {
		apu.sampleAcc--
		apu.samples = append(apu.samples, apu.mixSample())
	}
}

// mixSample runs the nonlinear mixer over the current channel outputs
// and quantizes to s16 mono. The divide-by-zero guards are part of the
// formula.
func (apu *APU) mixSample() int16 {
	p1 := float64(apu.pulse1.output())
	p2 := float64(apu.pulse2.output())
	t := float64(apu.triangle.output())
	n := float64(apu.noise.output())
	d := float64(apu.dmc.outputLevel)

	var pulseOut float64
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128.0/(p1+p2) + 100.0)
	}

	tndIn := t/8227.0 + n/12241.0 + d/22638.0
	var tndOut float64
	if tndIn > 0 {
		tndOut = 159.79 / (1.0/tndIn + 100.0)
	}

	sample := pulseOut + tndOut
	if sample < 0 {
		sample = 0
	} else if sample > 1 {
		sample = 1
	}
	return int16((sample*2 - 1) * 12000)
}

// WriteRegister services CPU writes of $4000-$4017 (except $4014).
func (apu *APU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x4000:
		apu.pulse1.writeControl(value)
	case 0x4001:
		apu.pulse1.writeSweep(value)
	case 0x4002:
		apu.pulse1.writeTimerLow(value)
	case 0x4003:
		apu.pulse1.writeTimerHigh(value)

	case 0x4004:
		apu.pulse2.writeControl(value)
	case 0x4005:
		apu.pulse2.writeSweep(value)
	case 0x4006:
		apu.pulse2.writeTimerLow(value)
	case 0x4007:
		apu.pulse2.writeTimerHigh(value)

	case 0x4008:
		apu.triangle.writeControl(value)
	case 0x400A:
		apu.triangle.writeTimerLow(value)
	case 0x400B:
		apu.triangle.writeTimerHigh(value)

	case 0x400C:
		apu.noise.writeControl(value)
	case 0x400E:
		apu.noise.writeMode(value)
	case 0x400F:
		apu.noise.writeLength(value)

	case 0x4010:
		apu.dmc.writeControl(value)
		if value&0x80 == 0 {
			apu.dmcIRQ = false
		}
	case 0x4011:
		apu.dmc.writeOutputLevel(value)
	case 0x4012:
		apu.dmc.writeSampleAddress(value)
	case 0x4013:
		apu.dmc.writeSampleLength(value)

	case 0x4015:
		apu.writeStatus(value)

	case 0x4017:
		apu.resetFrameSequencer(value&0x80 != 0, value&0x40 != 0)
	}
}

// writeStatus enables/disables channels; a cleared bit zeroes the
// channel's length counter, and clearing the DMC bit stops the sample
// and acknowledges its IRQ.
func (apu *APU) writeStatus(value uint8) {
	apu.pulse1.enabled = value&0x01 != 0
	if !apu.pulse1.enabled {
		apu.pulse1.lengthCtr = 0
	}
	apu.pulse2.enabled = value&0x02 != 0
	if !apu.pulse2.enabled {
		apu.pulse2.lengthCtr = 0
	}
	apu.triangle.enabled = value&0x04 != 0
	if !apu.triangle.enabled {
		apu.triangle.lengthCtr = 0
	}
	apu.noise.enabled = value&0x08 != 0
	if !apu.noise.enabled {
		apu.noise.lengthCtr = 0
	}
	if value&0x10 != 0 {
		apu.dmc.enabled = true
		if apu.dmc.bytesLeft == 0 {
			apu.dmc.restartSample()
		}
	} else {
		apu.dmc.enabled = false
		apu.dmc.bytesLeft = 0
		apu.dmcIRQ = false
	}
}

// ReadStatus services $4015 reads: channel length flags, DMC activity
// and the two IRQ flags. Reading clears both IRQ flags but leaves the
// DMC active bit untouched.
func (apu *APU) ReadStatus() uint8 {
	var status uint8
	if apu.pulse1.lengthCtr > 0 {
		status |= 0x01
	}
	if apu.pulse2.lengthCtr > 0 {
		status |= 0x02
	}
	if apu.triangle.lengthCtr > 0 {
		status |= 0x04
	}
	if apu.noise.lengthCtr > 0 {
		status |= 0x08
	}
	if apu.dmc.enabled && apu.dmc.bytesLeft > 0 {
		status |= 0x10
	}
	if apu.frameIRQ {
		status |= 0x40
	}
	if apu.dmcIRQ {
		status |= 0x80
	}
	apu.frameIRQ = false
	apu.dmcIRQ = false
	return status
}

// clockDMC runs the DMC timer; byte refills reach the CPU bus through
// the attached memory reader.
func (apu *APU) clockDMC() {
	d := &apu.dmc
	if d.timer > 0 {
		d.timer--
		return
	}
	d.timer = d.rate

	if !d.silence {
		if d.shift&1 != 0 {
			if d.outputLevel <= 125 {
				d.outputLevel += 2
			}
		} else if d.outputLevel >= 2 {
			d.outputLevel -= 2
		}
	}
	d.shift >>= 1
	d.bits--

	if d.bits == 0 {
		d.bits = 8
		if d.bytesLeft == 0 {
			if d.loop() {
				d.restartSample()
			} else {
				if d.irqEnabled() {
					apu.dmcIRQ = true
				}
				d.silence = true
			}
		}
		if d.bytesLeft > 0 && apu.memory != nil {
			d.shift = apu.memory.Read(d.curAddr)
			d.curAddr++
			d.bytesLeft--
			d.silence = false
		}
	}
}
