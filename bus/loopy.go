package bus

// loopy is the PPU's internal scroll-position register layout, shared
// by V (current VRAM address) and T (temporary VRAM address):
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select (X, then Y)
//	+++----------------- fine Y scroll
//
// Only the low 15 bits of data are meaningful.
type loopy struct {
	data uint16
}

func (l *loopy) get() uint16 { return l.data & 0x7FFF }

func (l *loopy) set(v uint16) { l.data = v & 0x7FFF }

func (l *loopy) coarseX() uint16 { return l.data & 0x001F }

func (l *loopy) setCoarseX(n uint16) { l.data = (l.data &^ 0x001F) | (n & 0x001F) }

func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.toggleNametableX()
		return
	}
	l.data++
}

func (l *loopy) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopy) setCoarseY(n uint16) { l.data = (l.data &^ 0x03E0) | ((n & 0x001F) << 5) }

func (l *loopy) nametableX() uint16 { return (l.data & 0x0400) >> 10 }

func (l *loopy) toggleNametableX() { l.data ^= 0x0400 }

func (l *loopy) nametableY() uint16 { return (l.data & 0x0800) >> 11 }

func (l *loopy) toggleNametableY() { l.data ^= 0x0800 }

func (l *loopy) fineY() uint16 { return (l.data & 0x7000) >> 12 }

func (l *loopy) setFineY(n uint16) { l.data = (l.data &^ 0x7000) | ((n & 0x0007) << 12) }

// incrementFineY implements the vertical-increment step at dot 256: fine
// Y rolls over into coarse Y, which itself wraps at 30 (the visible
// nametable height) by flipping the vertical nametable bit, or at 31
// (deep into the attribute table, reachable only by an out-of-range
// scroll write) by wrapping silently.
func (l *loopy) incrementFineY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}

	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

// copyHorizontal copies T's coarse-X and nametable-X bits into V, as
// done at dot 257 of every visible/pre-render scanline.
func (v *loopy) copyHorizontal(t *loopy) {
	v.data = (v.data &^ 0x041F) | (t.data & 0x041F)
}

// copyVertical copies T's fine-Y, coarse-Y and nametable-Y bits into V,
// as done during dots 280-304 of the pre-render scanline.
func (v *loopy) copyVertical(t *loopy) {
	v.data = (v.data &^ 0x7BE0) | (t.data & 0x7BE0)
}
