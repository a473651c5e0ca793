package system

import (
	"context"
	"testing"

	"github.com/dmccorquodale/nescore/rom"
)

// stubMapper backs the full PRG window with writable memory and an
// 8KiB CHR RAM, enough to drive both the CPU and PPU through a full
// scheduler pass.
type stubMapper struct {
	prg [0x8000]byte
	chr [0x2000]byte
}

func (m *stubMapper) PrgRead(addr uint16) uint8       { return m.prg[addr-0x8000] }
func (m *stubMapper) PrgWrite(addr uint16, val uint8) { m.prg[addr-0x8000] = val }
func (m *stubMapper) ChrRead(addr uint16) uint8       { return m.chr[addr] }
func (m *stubMapper) ChrWrite(addr uint16, val uint8) { m.chr[addr] = val }

// newTestSystem returns a System whose reset vector points at an
// infinite loop (JMP to self), so CPU execution never runs off the end
// of a zeroed PRG bank during a test.
func newTestSystem() *System {
	m := &stubMapper{}
	m.prg[0x7FFC] = 0x00 // reset vector -> 0x8000
	m.prg[0x7FFD] = 0x80
	m.prg[0x0000] = 0x4C // JMP $8000
	m.prg[0x0001] = 0x00
	m.prg[0x0002] = 0x80

	return New(m, rom.MirrorHorizontal)
}

func TestNewResetsCPUFromVector(t *testing.T) {
	s := newTestSystem()
	if s.CPU.PC != 0x8000 {
		t.Errorf("PC = 0x%04x, want 0x8000 after reset", s.CPU.PC)
	}
}

func TestTickAdvancesCPUOnEveryThirdCall(t *testing.T) {
	s := newTestSystem()
	startCycles := s.CPU.Cycles()

	s.Tick()
	s.Tick()
	if s.CPU.Cycles() == startCycles && s.CPU.PC == 0x8000 {
		t.Errorf("CPU appears not to have ticked within the first 3 PPU ticks")
	}

	s.Tick() // third call: the CPU still has not ticked again
	if got := s.CPU.Cycles(); got != startCycles-1 {
		t.Errorf("after 3 ticks, CPU.Cycles() = %d, want %d", got, startCycles-1)
	}
	s.Tick() // fourth call: the CPU ticks for the second time
	if got := s.CPU.Cycles(); got != startCycles-2 {
		t.Errorf("after 4 ticks, CPU.Cycles() = %d, want %d", got, startCycles-2)
	}
}

func TestRunFrameReturnsFullFrameAndClearsCompletion(t *testing.T) {
	s := newTestSystem()

	frame, err := s.RunFrame(context.Background())
	if err != nil {
		t.Fatalf("RunFrame returned error: %v", err)
	}
	if len(frame) != 256*240 {
		t.Fatalf("frame length = %d, want %d", len(frame), 256*240)
	}
	if s.PPU.FrameComplete() {
		t.Errorf("frame-complete latch not cleared after RunFrame returned")
	}
}

func TestRunFrameEndsOnCPUInstructionBoundary(t *testing.T) {
	s := newTestSystem()

	if _, err := s.RunFrame(context.Background()); err != nil {
		t.Fatalf("RunFrame returned error: %v", err)
	}
	if s.CPU.Cycles() != 0 {
		t.Errorf("CPU.Cycles() = %d, want 0 at the end of RunFrame", s.CPU.Cycles())
	}
}

func TestRunFrameRespectsCancellation(t *testing.T) {
	s := newTestSystem()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.RunFrame(ctx); err == nil {
		t.Errorf("expected an error from an already-cancelled context")
	}
}

func TestNMIDeliveredWhenEnabled(t *testing.T) {
	s := newTestSystem()
	s.Bus.WriteMain(0x2000, 0x80) // enable NMI on VBlank

	// Advance past scanline 241, dot 1, where VBlank and the NMI are raised.
	for i := 0; i < 242*341+2; i++ {
		s.Tick()
	}

	// The scheduler delivers the NMI inline, so by now the CPU should
	// have been redirected through the NMI vector at least once: PC
	// should no longer simply be looping at 0x8000 with an untouched
	// stack pointer.
	if s.CPU.SP == 0xFD {
		t.Errorf("SP unchanged (0x%02x); expected NMI to have pushed PC/P onto the stack", s.CPU.SP)
	}
}
