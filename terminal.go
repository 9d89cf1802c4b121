//go:build !baremetal

package board

// The terminal front end of the simulator. Each character cell shows two
// display rows using half block characters, so the 128×64 display takes 128
// columns and 32 lines, plus one line for the LEDs.

import (
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

type terminalFrontend struct {
	lock   sync.Mutex
	screen tcell.Screen

	// Button 1 is held down on the display.
	dragging bool
}

func startTerminal() (frontend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("board: could not initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	f := &terminalFrontend{screen: screen}
	go f.listenEvents()
	return f, nil
}

func (f *terminalFrontend) drawFrame(width, height int, pixels []bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	on := tcell.NewRGBColor(int32(oledOn.R), int32(oledOn.G), int32(oledOn.B))
	off := tcell.NewRGBColor(int32(oledOff.R), int32(oledOff.G), int32(oledOff.B))
	for row := 0; row < height/2; row++ {
		for x := 0; x < width; x++ {
			top := pixels[(row*2)*width+x]
			bottom := pixels[(row*2+1)*width+x]
			// The upper half block is drawn in the foreground color, the
			// lower half shows the background color.
			style := tcell.StyleDefault.Foreground(off).Background(off)
			if top {
				style = style.Foreground(on)
			}
			if bottom {
				style = style.Background(on)
			}
			f.screen.SetContent(x, row, '▀', nil, style)
		}
	}
	f.screen.Show()
}

func (f *terminalFrontend) drawLEDs(red, green, blue color.RGBA) {
	f.lock.Lock()
	defer f.lock.Unlock()

	row := DisplayHeight/2 + 1
	x := 0
	for _, led := range []struct {
		label rune
		c     color.RGBA
	}{
		{'R', red},
		{'G', green},
		{'B', blue},
	} {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(led.c.R), int32(led.c.G), int32(led.c.B)))
		f.screen.SetContent(x, row, led.label, nil, tcell.StyleDefault)
		for i := 1; i <= 4; i++ {
			f.screen.SetContent(x+i, row, '█', nil, style)
		}
		x += 7
	}
	help := "a: button A  space: joystick button  arrows/mouse: move  c: center  q: quit"
	for i, r := range help {
		f.screen.SetContent(x+i, row, r, nil, tcell.StyleDefault)
	}
	f.screen.Show()
}

// Goroutine that translates terminal events to key presses and pointer
// positions.
func (f *terminalFrontend) listenEvents() {
	for {
		switch ev := f.screen.PollEvent().(type) {
		case nil:
			// The screen was finalized.
			return
		case *tcell.EventResize:
			f.screen.Sync()
		case *tcell.EventKey:
			key := decodeTerminalKey(ev)
			if key == KeyEscape {
				f.screen.Fini()
				os.Exit(0)
			}
			if key != NoKey {
				// Terminals only report presses.
				simulatorKey(key, true)
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			if ev.Buttons()&tcell.Button1 != 0 {
				f.dragging = true
				simulatorPointer(x, y*2, true)
			} else if f.dragging {
				f.dragging = false
				simulatorPointer(0, 0, false)
			}
		}
	}
}

func decodeTerminalKey(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyEscape
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return KeyA
		case 'c', 'C':
			return KeyC
		case ' ':
			return KeySpace
		case 'q', 'Q':
			return KeyEscape
		}
	}
	return NoKey
}
