// Package bus implements the shared memory fabric connecting the CPU,
// the PPU, and the cartridge: RAM, VRAM (exposed as a mirrored 4KiB
// logical nametable space), palette RAM, and the PPU's memory-mapped
// register block, plus the multiply-mirrored address decoding for both
// the CPU-facing main bus and the PPU-facing pattern bus.
package bus

import "github.com/dmccorquodale/nescore/rom"

const (
	ramSize     = 0x0800
	vramSize    = 0x0800
	paletteSize = 0x0020

	oamDMARegister = 0x4014
)

// Mapper is the subset of mapper.Mapper the Bus needs. Declared locally
// (rather than importing package mapper) to avoid a dependency cycle —
// mapper constructors never need the Bus.
type Mapper interface {
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
}

// Bus owns every byte of addressable state in the system except the
// CPU's and PPU's own working registers. It is constructed empty and
// then Attach-ed to a cartridge, which fixes PRG, CHR and mirroring for
// the lifetime of the Bus.
type Bus struct {
	ram   [ramSize]byte
	vram  [vramSize]byte
	pal   [paletteSize]byte
	regs  pregs
	mapper Mapper
	mirror rom.Mirroring
}

// New returns an unattached Bus. Reads return 0 and writes are
// discarded until Attach is called.
func New() *Bus {
	return &Bus{}
}

// Attach binds a cartridge mapper and its mirroring mode to the Bus.
// ROM contents (and thus PRG/CHR/mirroring) are fixed for the rest of
// the Bus's lifetime; Reset does not call Attach again.
func (b *Bus) Attach(m Mapper, mirror rom.Mirroring) {
	b.mapper = m
	b.mirror = mirror
}

// ReadMain reads a byte from the CPU-visible 16-bit address space.
func (b *Bus) ReadMain(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr <= 0x3FFF:
		return b.readReg(addr&0x2007 - 0x2000)
	case addr <= 0x4017:
		return 0 // APU/IO stub
	case addr <= 0x401F:
		return 0 // CPU test mode, unused
	case addr <= 0x5FFF:
		return 0 // expansion, unused
	case addr <= 0x7FFF:
		return 0 // PRG RAM, unused
	default:
		if b.mapper == nil {
			return 0
		}
		return b.mapper.PrgRead(addr)
	}
}

// WriteMain writes a byte to the CPU-visible 16-bit address space.
func (b *Bus) WriteMain(addr uint16, val uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = val
	case addr <= 0x3FFF:
		b.writeReg(addr&0x2007-0x2000, val)
	case addr == oamDMARegister:
		b.oamDMA(val)
	case addr <= 0x4017:
		// remaining APU/IO writes: stub
	case addr <= 0x401F:
		// CPU test mode, unused
	case addr <= 0x5FFF:
		// expansion, unused
	case addr <= 0x7FFF:
		// PRG RAM, unused
	default:
		if b.mapper != nil {
			b.mapper.PrgWrite(addr, val)
		}
	}
}

// oamDMA copies 256 bytes starting at page<<8 from the main bus into
// OAM, honoring the real hardware's behavior of starting the copy at
// the current OAMADDR and wrapping. It does not stall the CPU for the
// 513/514 cycles real hardware would; see SPEC_FULL.md section 4.1.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.regs.oam[b.regs.oamAddr] = b.ReadMain(base + uint16(i))
		b.regs.oamAddr++
	}
}

// readReg and writeReg implement the side-effectful PPU register
// semantics of spec.md section 4.1, keyed by offset 0-7 from $2000.
func (b *Bus) readReg(offset uint16) uint8 {
	switch offset {
	case 2: // PPUSTATUS
		v := b.regs.status & 0xE0
		b.regs.setVBlank(false)
		b.regs.w = 0
		return v
	case 4: // OAMDATA
		return b.regs.oam[b.regs.oamAddr]
	case 7: // PPUDATA
		addr := b.regs.v.get()
		data := b.regs.readBuffer
		b.regs.readBuffer = b.ReadPattern(addr)
		if addr >= 0x3F00 {
			data = b.regs.readBuffer
		}
		b.regs.vramIncrement()
		return data
	default:
		return 0
	}
}

func (b *Bus) writeReg(offset uint16, val uint8) {
	switch offset {
	case 0: // PPUCTRL
		b.regs.ctrl = val
		b.regs.t.data = (b.regs.t.data &^ 0x0C00) | (uint16(val&0x03) << 10)
	case 1: // PPUMASK
		b.regs.mask = val
	case 3: // OAMADDR
		b.regs.oamAddr = val
	case 4: // OAMDATA
		b.regs.oam[b.regs.oamAddr] = val
		b.regs.oamAddr++
	case 5: // PPUSCROLL
		if b.regs.w == 0 {
			b.regs.fineX = val & 0x07
			b.regs.t.setCoarseX(uint16(val) >> 3)
			b.regs.w = 1
		} else {
			b.regs.t.setFineY(uint16(val) & 0x07)
			b.regs.t.setCoarseY(uint16(val) >> 3)
			b.regs.w = 0
		}
	case 6: // PPUADDR
		if b.regs.w == 0 {
			b.regs.t.data = (b.regs.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
			b.regs.w = 1
		} else {
			b.regs.t.data = (b.regs.t.data & 0x7F00) | uint16(val)
			b.regs.v = b.regs.t
			b.regs.w = 0
		}
	case 7: // PPUDATA
		b.WritePattern(b.regs.v.get(), val)
		b.regs.vramIncrement()
	}
}

// ReadPattern reads a byte from the PPU-visible 14-bit pattern-bus
// address space: pattern tables, nametables (through the mirror map),
// and palette RAM.
func (b *Bus) ReadPattern(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		if b.mapper == nil {
			return 0
		}
		return b.mapper.ChrRead(addr)
	case addr <= 0x2FFF:
		return b.vram[b.nametableMirror(addr-0x2000)]
	case addr <= 0x3EFF:
		return b.vram[b.nametableMirror(addr-0x3000)]
	default:
		return b.pal[paletteMirror(addr)]
	}
}

// WritePattern writes a byte to the PPU-visible 14-bit pattern-bus
// address space.
func (b *Bus) WritePattern(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		if b.mapper != nil {
			b.mapper.ChrWrite(addr, val)
		}
	case addr <= 0x2FFF:
		b.vram[b.nametableMirror(addr-0x2000)] = val
	case addr <= 0x3EFF:
		b.vram[b.nametableMirror(addr-0x3000)] = val
	default:
		b.pal[paletteMirror(addr)] = val
	}
}

// nametableMirror folds a 12-bit offset into $2000-$2FFF down to a
// physical VRAM offset (0-$7FF) according to the cartridge's mirroring
// mode. https://www.nesdev.org/wiki/Mirroring#Nametable_Mirroring
func (b *Bus) nametableMirror(a uint16) uint16 {
	switch b.mirror {
	case rom.MirrorHorizontal:
		if a >= 0x800 {
			return 0x400 + (a-0x800)%0x400
		}
		return a % 0x400
	case rom.MirrorVertical:
		return a % 0x800
	case rom.MirrorSingleScreen:
		return a % 0x400
	case rom.MirrorFourScreen:
		if a >= 0x800 {
			return 0 // only 2KiB of physical VRAM is available in this core
		}
		return a
	default:
		panic("bus: unknown mirroring mode")
	}
}

// paletteMirror folds a palette-space address into the 32-byte palette
// RAM, aliasing the four sprite-palette slots $10/$14/$18/$1C onto
// their background counterparts $00/$04/$08/$0C.
func paletteMirror(addr uint16) uint16 {
	a := addr & 0x1F
	switch a {
	case 0x10, 0x14, 0x18, 0x1C:
		return a - 0x10
	default:
		return a
	}
}
