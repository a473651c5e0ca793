// Package mapper implements and registers mappers that are referenced
// numerically by iNES ROM headers. Only mapper 0 (NROM) is registered;
// mappers beyond it are out of scope for this core.
package mapper

import (
	"fmt"

	"github.com/dmccorquodale/nescore/rom"
)

// Mapper routes the Bus's PRG/CHR accesses to whatever bank layout the
// cartridge's board implements. Reads from unmapped regions and writes
// to read-only regions are expected to behave per the embedding Bus's
// contract (return 0 / be silently ignored) rather than erroring.
type Mapper interface {
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	Mirroring() rom.Mirroring
}

// factory builds a Mapper from a parsed cartridge.
type factory func(*rom.Cartridge) (Mapper, error)

var registry = map[uint8]factory{}

// Register adds a mapper constructor under the given iNES mapper
// number. Re-registering an id panics: it indicates a programming
// error in this package's init list, not a runtime condition.
func Register(id uint8, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mapper: id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the Mapper for cart's mapper number, or an error if
// this core doesn't implement it.
func Get(cart *rom.Cartridge) (Mapper, error) {
	f, ok := registry[cart.Mapper]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", rom.ErrUnsupportedMapper, cart.Mapper)
	}
	return f(cart)
}
