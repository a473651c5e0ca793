// Package ppu implements the NES Picture Processing Unit's
// scanline/dot timing, the loopy-driven background fetch pipeline and
// pixel emission. Sprite rendering is out of scope; OAM lives on the
// Bus and this package never reads it.
package ppu

import "github.com/dmccorquodale/nescore/bus"

const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	visibleWidth      = 256
	visibleHeight     = 240
	preRenderScanline = 261
	vblankScanline    = 241
)

// PPU holds the pipeline state that sits on top of the Bus's
// register/scroll state: the dot/scanline counters, the background
// shift registers and their feeding latches, and the completed frame
// buffer. It never holds a reference to the Bus; Tick takes it as a
// parameter so System controls the order CPU and PPU touch it in.
type PPU struct {
	scanline int
	dot      int
	oddFrame bool

	ntByte         uint8
	attrByte       uint8 // 2-bit palette-quadrant value for the current tile
	patternLoLatch uint8
	patternHiLatch uint8

	patternLo, patternHi uint16
	attrLo, attrHi       uint8

	nmiPending    bool
	frameComplete bool

	frame [visibleWidth * visibleHeight]uint8
}

// New returns a PPU at the start of frame 0, scanline 0, dot 0.
func New() *PPU {
	return &PPU{}
}

// Reset returns the PPU to its power-up pipeline state. It does not
// touch the Bus's register state, and System.Reset leaves that state
// as it is too.
func (p *PPU) Reset() {
	*p = PPU{}
}

// TakeNMI reports whether the PPU has raised an NMI since the last
// call, clearing the pending flag as it does. System calls this once
// per tick so the edge is delivered to the CPU exactly once.
func (p *PPU) TakeNMI() bool {
	if !p.nmiPending {
		return false
	}
	p.nmiPending = false
	return true
}

// FrameComplete reports whether a full frame has been produced since
// the last ClearFrameComplete call.
func (p *PPU) FrameComplete() bool { return p.frameComplete }

// ClearFrameComplete resets the frame-complete latch.
func (p *PPU) ClearFrameComplete() { p.frameComplete = false }

// Frame returns the completed frame buffer: one palette-index byte
// (0-63) per pixel, row-major, 256 wide by 240 tall. Index into
// MasterPalette to get a displayable color.
func (p *PPU) Frame() [visibleWidth * visibleHeight]uint8 {
	return p.frame
}

// Tick advances the PPU by exactly one dot.
func (p *PPU) Tick(b *bus.Bus) {
	p.renderDot(b)
	p.advance()
}

func (p *PPU) advance() {
	p.dot++
	if p.dot != dotsPerScanline {
		return
	}
	p.dot = 0
	p.scanline++
	if p.scanline != scanlinesPerFrame {
		return
	}
	p.scanline = 0
	p.frameComplete = true
	p.oddFrame = !p.oddFrame
	if p.oddFrame {
		p.dot = 1
	}
}

func (p *PPU) renderDot(b *bus.Bus) {
	if p.scanline == vblankScanline && p.dot == 1 {
		b.SetVBlank(true)
		if b.CtrlNMIEnabled() {
			p.nmiPending = true
		}
	}

	if p.scanline == preRenderScanline && p.dot == 1 {
		b.SetVBlank(false)
		b.SetSprite0(false)
		b.SetOverflow(false)
	}

	backgroundActive := p.scanline <= 239 || p.scanline == preRenderScanline
	if backgroundActive {
		inFetchWindow := (p.dot >= 1 && p.dot <= 257) || (p.dot >= 321 && p.dot <= 337)
		if inFetchWindow {
			p.backgroundFetchStep(b)
			if b.RenderingEnabled() {
				p.patternLo <<= 1
				p.patternHi <<= 1
				p.attrLo <<= 1
				p.attrHi <<= 1
			}
		}

		if p.dot == 256 {
			b.ScrollIncrementFineY()
		}
		if p.dot == 257 && b.RenderingEnabled() {
			b.ScrollCopyHorizontal()
		}
		if p.scanline == preRenderScanline && p.dot >= 280 && p.dot <= 304 && b.RenderingEnabled() {
			b.ScrollCopyVertical()
		}
	}

	if p.scanline <= 239 && p.dot >= 1 && p.dot <= visibleWidth {
		p.emitPixel(b, p.dot-1, p.scanline)
	}
}

// backgroundFetchStep runs the 8-dot nametable/attribute/pattern
// fetch cycle, keyed by position within the current group of 8 dots.
func (p *PPU) backgroundFetchStep(b *bus.Bus) {
	switch (p.dot - 1) % 8 {
	case 0:
		p.reloadShifters()
		addr := 0x2000 | (b.ScrollV() & 0x0FFF)
		p.ntByte = b.ReadPattern(addr)
	case 2:
		coarseX := b.ScrollCoarseX()
		coarseY := b.ScrollCoarseY()
		ntX := b.ScrollNametableX()
		ntY := b.ScrollNametableY()
		addr := 0x23C0 | (ntY << 11) | (ntX << 10) | ((coarseY >> 2) << 3) | (coarseX >> 2)
		at := b.ReadPattern(addr)
		quadrant := ((coarseY>>1)&1)<<1 | ((coarseX >> 1) & 1)
		p.attrByte = (at >> (quadrant * 2)) & 0x03
	case 4:
		addr := b.CtrlBgPatternTable() + uint16(p.ntByte)*16 + b.ScrollFineY()
		p.patternLoLatch = b.ReadPattern(addr)
	case 6:
		addr := b.CtrlBgPatternTable() + uint16(p.ntByte)*16 + b.ScrollFineY() + 8
		p.patternHiLatch = b.ReadPattern(addr)
	case 7:
		b.ScrollIncrementCoarseX()
	}
}

func (p *PPU) reloadShifters() {
	p.patternLo = (p.patternLo &^ 0x00FF) | uint16(p.patternLoLatch)
	p.patternHi = (p.patternHi &^ 0x00FF) | uint16(p.patternHiLatch)
	p.attrLo = inflate(p.attrByte & 0x01)
	p.attrHi = inflate((p.attrByte >> 1) & 0x01)
}

func inflate(bit uint8) uint8 {
	if bit != 0 {
		return 0xFF
	}
	return 0x00
}

func bit16(shifter uint16, fineX uint8) uint8 {
	if shifter&(0x8000>>fineX) != 0 {
		return 1
	}
	return 0
}

func bit8(shifter uint8, fineX uint8) uint8 {
	if shifter&(0x80>>fineX) != 0 {
		return 1
	}
	return 0
}

func (p *PPU) emitPixel(b *bus.Bus, x, scanline int) {
	fineX := b.ScrollFineX()

	pixel := bit16(p.patternHi, fineX)<<1 | bit16(p.patternLo, fineX)
	palette := bit8(p.attrHi, fineX)<<1 | bit8(p.attrLo, fineX)
	c := palette<<2 | pixel

	colorIndex := b.ReadPattern(0x3F00+uint16(c)) & 0x3F
	p.frame[scanline*visibleWidth+x] = colorIndex
}
