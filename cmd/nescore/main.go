// Command nescore runs a cartridge image against the emulation core
// and displays it in an ebiten window. It contains no emulation logic
// of its own, only a ROM load, a palette lookup, and a blit.
package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dmccorquodale/nescore/mapper"
	"github.com/dmccorquodale/nescore/ppu"
	"github.com/dmccorquodale/nescore/rom"
	"github.com/dmccorquodale/nescore/system"
)

var romFile = flag.String("rom", "", "Path to an iNES ROM image to run.")

const (
	screenWidth  = 256
	screenHeight = 240
)

// game adapts a system.System to the ebiten.Game interface: one
// RunFrame per Update, one blit per Draw. It holds no emulation state
// of its own beyond the most recently produced frame.
type game struct {
	sys   *system.System
	frame []byte
	img   *ebiten.Image
}

func newGame(sys *system.System) *game {
	return &game{
		sys: sys,
		img: ebiten.NewImage(screenWidth, screenHeight),
	}
}

func (g *game) Update() error {
	frame, err := g.sys.RunFrame(context.Background())
	if err != nil {
		return err
	}
	g.frame = frame
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for i, idx := range g.frame {
		c := ppu.MasterPalette[idx&0x3F]
		x, y := i%screenWidth, i/screenWidth
		g.img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
	}
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	f, err := os.Open(*romFile)
	if err != nil {
		log.Fatalf("opening ROM: %v", err)
	}
	defer f.Close()

	cart, err := rom.Load(f)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	m, err := mapper.Get(cart)
	if err != nil {
		log.Fatalf("couldn't get mapper: %v", err)
	}

	sys := system.New(m, cart.Mirror)

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame(sys)); err != nil {
		log.Fatal(err)
	}
}
