package cpu

import "github.com/dmccorquodale/nescore/bus"

// An addressing mode function positions the CPU to operate on an
// operand: it consumes whatever operand bytes the mode needs from PC,
// and leaves either effAddr (memory-referencing modes) or effAddr as
// a branch target (REL) ready for the instruction function. Modes
// that can cross a page (ABX, ABY, IZY) charge the extra cycle
// themselves; their "plain" counterparts compute the identical
// address but never do, for the handful of opcodes (STA, and every
// read-modify-write instruction) that are documented to always pay
// the worst-case cycle count instead.
type modeFunc func(c *CPU, b *bus.Bus)

func impAddressing(c *CPU, b *bus.Bus) {}

func accAddressing(c *CPU, b *bus.Bus) {}

func immAddressing(c *CPU, b *bus.Bus) {
	c.effAddr = c.PC
	c.PC++
}

func zpAddressing(c *CPU, b *bus.Bus) {
	c.effAddr = uint16(c.fetch(b))
}

func zpxAddressing(c *CPU, b *bus.Bus) {
	c.effAddr = uint16(c.fetch(b)+c.X) & 0xFF
}

func zpyAddressing(c *CPU, b *bus.Bus) {
	c.effAddr = uint16(c.fetch(b)+c.Y) & 0xFF
}

func absAddressing(c *CPU, b *bus.Bus) {
	c.effAddr = c.fetch16(b)
}

func abxAddressing(c *CPU, b *bus.Bus) {
	base := c.fetch16(b)
	c.effAddr = base + uint16(c.X)
	if pageCrossed(base, c.effAddr) {
		c.cycles++
	}
}

func abxPlainAddressing(c *CPU, b *bus.Bus) {
	base := c.fetch16(b)
	c.effAddr = base + uint16(c.X)
}

func abyAddressing(c *CPU, b *bus.Bus) {
	base := c.fetch16(b)
	c.effAddr = base + uint16(c.Y)
	if pageCrossed(base, c.effAddr) {
		c.cycles++
	}
}

func abyPlainAddressing(c *CPU, b *bus.Bus) {
	base := c.fetch16(b)
	c.effAddr = base + uint16(c.Y)
}

// indAddressing implements JMP's indirect mode, including the
// documented hardware bug: when the pointer's low byte is $FF, the
// high byte of the target is fetched from the start of the same page
// rather than the following one.
func indAddressing(c *CPU, b *bus.Bus) {
	ptrLo := c.fetch(b)
	ptrHi := c.fetch(b)
	ptr := uint16(ptrHi)<<8 | uint16(ptrLo)

	hiAddr := ptr + 1
	if ptrLo == 0xFF {
		hiAddr = ptr &^ 0x00FF
	}

	lo := uint16(b.ReadMain(ptr))
	hi := uint16(b.ReadMain(hiAddr))
	c.effAddr = hi<<8 | lo
}

func izxAddressing(c *CPU, b *bus.Bus) {
	ptr := uint16(c.fetch(b)+c.X) & 0xFF
	lo := uint16(b.ReadMain(ptr))
	hi := uint16(b.ReadMain((ptr + 1) & 0xFF))
	c.effAddr = hi<<8 | lo
}

func izyAddressing(c *CPU, b *bus.Bus) {
	zp := uint16(c.fetch(b))
	lo := uint16(b.ReadMain(zp))
	hi := uint16(b.ReadMain((zp + 1) & 0xFF))
	base := hi<<8 | lo
	c.effAddr = base + uint16(c.Y)
	if pageCrossed(base, c.effAddr) {
		c.cycles++
	}
}

func izyPlainAddressing(c *CPU, b *bus.Bus) {
	zp := uint16(c.fetch(b))
	lo := uint16(b.ReadMain(zp))
	hi := uint16(b.ReadMain((zp + 1) & 0xFF))
	base := hi<<8 | lo
	c.effAddr = base + uint16(c.Y)
}

// relAddressing reads the signed branch displacement and resolves it
// against the PC as it stands right after the operand byte, which is
// also the PC the hardware compares against for the page-cross
// penalty.
func relAddressing(c *CPU, b *bus.Bus) {
	off := int8(c.fetch(b))
	c.effAddr = c.PC + uint16(int16(off))
}

func (c *CPU) fetch16(b *bus.Bus) uint16 {
	lo := uint16(c.fetch(b))
	hi := uint16(c.fetch(b))
	return hi<<8 | lo
}
