// Package system wires the Bus, CPU, and PPU together into a running
// NES. It owns all three as values and threads the Bus into each
// processor's Tick as a parameter, so neither processor holds a
// long-lived reference to the other's state.
package system

import (
	"context"

	"github.com/dmccorquodale/nescore/bus"
	"github.com/dmccorquodale/nescore/cpu"
	"github.com/dmccorquodale/nescore/ppu"
	"github.com/dmccorquodale/nescore/rom"
)

// System is a complete, single-threaded NES: one Bus, one CPU, one
// PPU, advanced in fixed 1:3 CPU:PPU phase.
type System struct {
	Bus *bus.Bus
	CPU *cpu.CPU
	PPU *ppu.PPU

	ticks uint64
}

// New returns a System attached to the given cartridge mapper and
// mirroring mode, with the CPU already reset from the cartridge's
// reset vector.
func New(m bus.Mapper, mirror rom.Mirroring) *System {
	b := bus.New()
	b.Attach(m, mirror)
	c := cpu.New()
	c.Reset(b)

	return &System{
		Bus: b,
		CPU: c,
		PPU: ppu.New(),
	}
}

// Reset returns the CPU and the PPU pipeline to their power-up state
// without re-attaching the cartridge; the Bus's RAM is left as-is,
// matching real hardware (RESET does not clear RAM), and so is the PPU
// register block on the Bus.
func (s *System) Reset() {
	s.PPU.Reset()
	s.CPU.Reset(s.Bus)
	s.ticks = 0
}

// Tick advances the PPU by one dot; every third tick it additionally
// advances the CPU by one cycle. A PPU-raised NMI is delivered to the
// CPU in the same tick it is observed.
func (s *System) Tick() {
	s.PPU.Tick(s.Bus)
	if s.ticks%3 == 0 {
		s.CPU.Tick(s.Bus)
	}
	s.ticks++

	if s.PPU.TakeNMI() {
		s.CPU.NMI(s.Bus)
	}
}

// RunFrame ticks the system until the PPU has produced a complete
// frame, draining any mid-instruction CPU cycles before returning so
// every call starts and ends on an instruction boundary. ctx is
// checked once per tick as a coarse cancellation point; it is never
// threaded into CPU or PPU state, only the scheduler loop.
func (s *System) RunFrame(ctx context.Context) ([]byte, error) {
	for !s.PPU.FrameComplete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Tick()
	}

	for s.CPU.Cycles() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Tick()
	}

	s.PPU.ClearFrameComplete()
	frame := s.PPU.Frame()
	return frame[:], nil
}
