package bus

// The methods in this file are the surface the ppu package uses to
// drive the register block each dot. They exist so that pregs' fields
// (and the loopy type) can stay unexported: every PPU-side mutation of
// architectural state is funneled through here, the same way every
// CPU-side mutation is funneled through ReadMain/WriteMain.

// CtrlNMIEnabled reports whether PPUCTRL requests an NMI at the start
// of vertical blank.
func (b *Bus) CtrlNMIEnabled() bool { return b.regs.ctrlNMIEnabled() }

// CtrlBgPatternTable returns the base address ($0000 or $1000) of the
// background pattern table selected by PPUCTRL.
func (b *Bus) CtrlBgPatternTable() uint16 { return b.regs.ctrlBgPatternTable() }

// RenderingEnabled reports whether PPUMASK has background or sprite
// rendering enabled; several scroll-register updates only take effect
// while this is true.
func (b *Bus) RenderingEnabled() bool { return b.regs.maskRenderingEnabled() }

// SetVBlank, SetSprite0 and SetOverflow set or clear the corresponding
// PPUSTATUS bits.
func (b *Bus) SetVBlank(on bool)   { b.regs.setVBlank(on) }
func (b *Bus) SetSprite0(on bool)  { b.regs.setSprite0(on) }
func (b *Bus) SetOverflow(on bool) { b.regs.setOverflow(on) }

// ScrollV returns the current value of the loopy V register (15 bits).
func (b *Bus) ScrollV() uint16 { return b.regs.v.get() }

// ScrollFineX returns the 3-bit fine-X scroll value.
func (b *Bus) ScrollFineX() uint8 { return b.regs.fineX }

// ScrollCoarseX, ScrollCoarseY, ScrollNametableX, ScrollNametableY and
// ScrollFineY decompose V for nametable/attribute/pattern address
// computation during the background fetch pipeline.
func (b *Bus) ScrollCoarseX() uint16    { return b.regs.v.coarseX() }
func (b *Bus) ScrollCoarseY() uint16    { return b.regs.v.coarseY() }
func (b *Bus) ScrollNametableX() uint16 { return b.regs.v.nametableX() }
func (b *Bus) ScrollNametableY() uint16 { return b.regs.v.nametableY() }
func (b *Bus) ScrollFineY() uint16      { return b.regs.v.fineY() }

// ScrollIncrementCoarseX performs the horizontal V increment used at
// the end of each 8-dot background fetch group.
func (b *Bus) ScrollIncrementCoarseX() { b.regs.v.incrementCoarseX() }

// ScrollIncrementFineY performs the dot-256 vertical V increment.
func (b *Bus) ScrollIncrementFineY() { b.regs.v.incrementFineY() }

// ScrollCopyHorizontal copies T's horizontal scroll bits into V (dot
// 257 of every visible/pre-render scanline).
func (b *Bus) ScrollCopyHorizontal() { b.regs.v.copyHorizontal(&b.regs.t) }

// ScrollCopyVertical copies T's vertical scroll bits into V (dots
// 280-304 of the pre-render scanline).
func (b *Bus) ScrollCopyVertical() { b.regs.v.copyVertical(&b.regs.t) }

// OAM returns the byte at OAM address i (0-255). Exposed read-only for
// a future sprite-rendering pass; this core doesn't read it itself.
func (b *Bus) OAM(i uint8) uint8 { return b.regs.oam[i] }
