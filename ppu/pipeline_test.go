package ppu

import (
	"testing"

	"github.com/dmccorquodale/nescore/bus"
	"github.com/dmccorquodale/nescore/rom"
)

type stubMapper struct {
	chr [0x2000]byte
}

func (m *stubMapper) PrgRead(addr uint16) uint8       { return 0 }
func (m *stubMapper) PrgWrite(addr uint16, val uint8) {}
func (m *stubMapper) ChrRead(addr uint16) uint8       { return m.chr[addr] }
func (m *stubMapper) ChrWrite(addr uint16, val uint8) { m.chr[addr] = val }

func newTestSystem() (*PPU, *bus.Bus) {
	b := bus.New()
	b.Attach(&stubMapper{}, rom.MirrorHorizontal)
	return New(), b
}

func tickDots(p *PPU, b *bus.Bus, n int) {
	for i := 0; i < n; i++ {
		p.Tick(b)
	}
}

// ticksToReach returns the number of Tick calls needed so that the
// dot just processed is (scanline, dot), given the PPU starts at
// (0, 0).
func ticksToReach(scanline, dot int) int {
	return scanline*dotsPerScanline + dot + 1
}

func TestFrameCompletesAfterOneFullPass(t *testing.T) {
	p, b := newTestSystem()
	tickDots(p, b, dotsPerScanline*scanlinesPerFrame-1)
	if p.FrameComplete() {
		t.Fatalf("frame reported complete one dot early")
	}
	p.Tick(b)
	if !p.FrameComplete() {
		t.Fatalf("frame not complete after %d dots", dotsPerScanline*scanlinesPerFrame)
	}
}

func TestVBlankSetAtScanline241Dot1(t *testing.T) {
	p, b := newTestSystem()
	b.WriteMain(0x2000, 0x80) // enable NMI on VBlank

	tickDots(p, b, ticksToReach(vblankScanline, 1))

	status := b.ReadMain(0x2002)
	if status&0x80 == 0 {
		t.Errorf("VBlank bit not set at scanline 241 dot 1")
	}
	if !p.TakeNMI() {
		t.Errorf("NMI not raised with CTRL.NMI enabled")
	}
}

func TestNoNMIWhenCtrlDisabled(t *testing.T) {
	p, b := newTestSystem()
	tickDots(p, b, ticksToReach(vblankScanline, 1))
	if p.TakeNMI() {
		t.Errorf("NMI raised despite CTRL.NMI being disabled")
	}
}

func TestPreRenderClearsStatusFlags(t *testing.T) {
	p, b := newTestSystem()
	b.SetVBlank(true)
	b.SetSprite0(true)
	b.SetOverflow(true)

	tickDots(p, b, ticksToReach(preRenderScanline, 1))

	if b.ReadMain(0x2002)&0xE0 != 0 {
		t.Errorf("status flags not cleared at pre-render dot 1")
	}
}

func TestTakeNMIClearsPending(t *testing.T) {
	p, b := newTestSystem()
	b.WriteMain(0x2000, 0x80)
	tickDots(p, b, ticksToReach(vblankScanline, 1))

	if !p.TakeNMI() {
		t.Fatalf("expected NMI pending")
	}
	if p.TakeNMI() {
		t.Errorf("NMI still pending after being taken")
	}
}
