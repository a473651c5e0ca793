package mapper

import "github.com/dmccorquodale/nescore/rom"

func init() {
	Register(0, newNROM)
}

// nrom implements mapper 0: 16KiB or 32KiB of PRG ROM mapped directly
// into $8000-$FFFF (mirrored for the 16KiB case), and a single 8KiB CHR
// bank (ROM or, when the header carries no CHR data, RAM).
type nrom struct {
	prg      []byte
	chr      []byte
	chrIsRAM bool
	mirror   rom.Mirroring
}

func newNROM(cart *rom.Cartridge) (Mapper, error) {
	return &nrom{
		prg:      cart.PRG,
		chr:      cart.CHR,
		chrIsRAM: cart.ChrIsRAM,
		mirror:   cart.Mirror,
	}, nil
}

func (m *nrom) PrgRead(addr uint16) uint8 {
	if len(m.prg) == prg16KiB {
		return m.prg[addr&0x3FFF]
	}
	return m.prg[addr-0x8000]
}

// PrgWrite is a no-op: PRG is ROM and this core carries no PRG RAM.
func (m *nrom) PrgWrite(addr uint16, val uint8) {}

func (m *nrom) ChrRead(addr uint16) uint8 {
	return m.chr[addr]
}

func (m *nrom) ChrWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr[addr] = val
	}
}

func (m *nrom) Mirroring() rom.Mirroring {
	return m.mirror
}

const prg16KiB = 16384
