//go:build !baremetal

package board

// The desktop window front end of the simulator.
//
// Fyne needs to own the main thread, which a board package can't ask for. So
// the window actually runs in a separate process, started by running the
// current executable again, and the two communicate over pipes (stdin/stdout
// in the window process) with a simple line-based protocol.

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

const runWindowCommand = "run-simulator-window"

func init() {
	if len(os.Args) >= 2 && os.Args[1] == runWindowCommand {
		// This is the window process.
		// Run the entire window in an init function, because that's the only
		// way to do this with the API that is exposed by the board package.
		windowMain()
		os.Exit(0)
	}
}

// Colors of a lit and dark pixel on the simulated OLED.
var (
	oledOn  = color.RGBA{R: 0xd0, G: 0xf0, B: 0xff, A: 255}
	oledOff = color.RGBA{R: 0x08, G: 0x08, B: 0x10, A: 255}
)

var (
	displayImageLock sync.Mutex
	displayImage     *image.RGBA
	displayScale     = 4

	ledsLock   sync.Mutex
	leds       []color.RGBA
	ledsPerRow = 3
)

// The main function for the window process.
func windowMain() {
	displayImage = image.NewRGBA(image.Rect(0, 0, DisplayWidth, DisplayHeight))
	display := &displayWidget{}
	display.Generator = func(w, h int) image.Image {
		displayImageLock.Lock()
		defer displayImageLock.Unlock()
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{
			R: 48,
			G: 48,
			B: 48,
			A: 255,
		}), image.Pt(0, 0), draw.Src)
		rect := displayImage.Bounds()
		scale := h / rect.Dy()
		if w/rect.Dx() < scale {
			scale = w / rect.Dx()
		}
		if scale < 1 {
			scale = 1
		}
		width := rect.Dx() * scale
		height := rect.Dy() * scale
		x := (w - width) / 2
		y := (h - height) / 2
		draw.NearestNeighbor.Scale(img, image.Rect(x, y, x+width, y+height), displayImage, rect, draw.Src, nil)
		return img
	}

	// Create the LEDs.
	ledsWidget := canvas.NewRaster(func(w, h int) image.Image {
		ledsLock.Lock()
		defer ledsLock.Unlock()
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		if len(leds) == 0 {
			return img
		}

		// Draw all the LEDs as squares, each 24 pixels in size with an 8 pixel
		// gap.
		rows := (len(leds) + ledsPerRow - 1) / ledsPerRow
		scale := float64(h) / float64(rows*32)
		col := 0
		row := 0
		for _, c := range leds {
			x0 := int(float64(8+col*32) * scale)
			x1 := int(float64(8+col*32+24) * scale)
			y0 := int(float64(4+row*32) * scale)
			y1 := int(float64(4+row*32+24) * scale)
			draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Pt(0, 0), draw.Src)
			col++
			if col >= ledsPerRow {
				col = 0
				row++
			}
		}
		return img
	})
	ledsWidget.Hidden = true

	// Create a window.
	a := app.New()
	w := a.NewWindow("Simulator")
	w.SetPadded(false)
	w.SetFixedSize(true)
	w.SetContent(container(display, ledsWidget))

	// Listen for keyboard events, and translate them to board key codes.
	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(event *fyne.KeyEvent) {
			key := decodeFyneKey(event.Name)
			if key != NoKey {
				fmt.Printf("keypress %d\n", key)
			}
		})
		deskCanvas.SetOnKeyUp(func(event *fyne.KeyEvent) {
			key := decodeFyneKey(event.Name)
			if key != NoKey {
				fmt.Printf("keyrelease %d\n", key)
			}
		})
	}

	// Listen for events from the parent process (which includes display data).
	go windowReceiveEvents(w, display, ledsWidget)

	// Show the window.
	w.ShowAndRun()
}

func container(objects ...fyne.CanvasObject) fyne.CanvasObject {
	return fyne.NewContainerWithLayout(layout.NewVBoxLayout(), objects...)
}

// Goroutine that listens for commands from the parent process.
func windowReceiveEvents(w fyne.Window, display *displayWidget, ledsWidget *canvas.Raster) {
	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// The parent process exited.
			os.Exit(0)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "display":
			var width, height, scale int
			fmt.Sscanf(line, "%s %d %d %d\n", &cmd, &width, &height, &scale)
			displayImageLock.Lock()
			displayImage = image.NewRGBA(image.Rect(0, 0, width, height))
			draw.Draw(displayImage, displayImage.Bounds(), image.NewUniform(oledOff), image.Pt(0, 0), draw.Src)
			displayScale = scale
			display.SetMinSize(fyne.NewSize(float32(width*scale), float32(height*scale)))
			displayImageLock.Unlock()
		case "title":
			w.SetTitle(strings.TrimSpace(line[len("title"):]))
		case "draw":
			// Read the image data (which is a single line).
			var startX, startY, width int
			fmt.Sscanf(line, "%s %d %d %d\n", &cmd, &startX, &startY, &width)
			buf := make([]byte, width*3)
			io.ReadFull(r, buf)

			// Draw the image data to the image buffer.
			displayImageLock.Lock()
			for x := 0; x < width; x++ {
				displayImage.SetRGBA(startX+x, startY, color.RGBA{
					R: buf[x*3+0],
					G: buf[x*3+1],
					B: buf[x*3+2],
					A: 255,
				})
			}
			displayImageLock.Unlock()
		case "flush":
			display.Refresh()
		case "leds":
			// Read the LED data.
			var numLEDs int
			fmt.Sscanf(line, "%s %d\n", &cmd, &numLEDs)
			buf := make([]byte, numLEDs*3)
			io.ReadFull(r, buf)

			// Update the leds slice.
			ledsLock.Lock()
			if len(leds) != numLEDs {
				// LEDs were configured for the first time (probably).
				// Make sure we prepare for the given number of LEDs.
				leds = make([]color.RGBA, numLEDs)
				cols := ledsPerRow
				if cols > len(leds) {
					cols = len(leds)
				}
				rows := (len(leds) + ledsPerRow - 1) / ledsPerRow
				ledsWidget.SetMinSize(fyne.NewSize(float32(cols*32+8), float32(rows*32+8)))
				ledsWidget.Show()
			}
			for i := range leds {
				leds[i] = color.RGBA{
					R: buf[i*3+0],
					G: buf[i*3+1],
					B: buf[i*3+2],
					A: 255,
				}
			}
			ledsLock.Unlock()
			ledsWidget.Refresh()
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

func decodeFyneKey(key fyne.KeyName) Key {
	switch key {
	case fyne.KeyLeft:
		return KeyLeft
	case fyne.KeyRight:
		return KeyRight
	case fyne.KeyUp:
		return KeyUp
	case fyne.KeyDown:
		return KeyDown
	case fyne.KeyEscape:
		return KeyEscape
	case fyne.KeyReturn:
		return KeyEnter
	case fyne.KeySpace:
		return KeySpace
	case fyne.KeyA:
		return KeyA
	case fyne.KeyC:
		return KeyC
	default:
		return NoKey
	}
}

var _ desktop.Mouseable = (*displayWidget)(nil)
var _ fyne.Draggable = (*displayWidget)(nil)

// Wrapper for canvas.Raster that sends mouse events to the parent process, in
// display pixel coordinates.
type displayWidget struct {
	canvas.Raster
}

func (r *displayWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(&r.Raster)
}

func (r *displayWidget) pixel(pos fyne.Position) (x, y int) {
	displayImageLock.Lock()
	scale := displayScale
	displayImageLock.Unlock()
	return int(pos.X) / scale, int(pos.Y) / scale
}

func (r *displayWidget) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		x, y := r.pixel(event.Position)
		fmt.Printf("mousedown %d %d\n", x, y)
	}
}

func (r *displayWidget) MouseUp(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		fmt.Printf("mouseup\n")
	}
}

func (r *displayWidget) Dragged(event *fyne.DragEvent) {
	x, y := r.pixel(event.PointEvent.Position)
	fmt.Printf("mousemove %d %d\n", x, y)
}

func (r *displayWidget) DragEnd() {
	// handled in MouseUp
}

// The parent side of the window front end.
type windowFrontend struct {
	lock  sync.Mutex
	stdin io.WriteCloser
	line  []byte
}

// Start the window process, if it isn't running yet.
func startWindow() (frontend, error) {
	cmd := exec.Command(os.Args[0], runWindowCommand)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("board: could not start window process: %w", err)
	}
	go func() {
		err := cmd.Wait()
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				os.Exit(exitErr.ExitCode())
			}
			os.Exit(1)
		}
		// The window was closed, so exit.
		os.Exit(0)
	}()

	f := &windowFrontend{
		stdin: stdin,
		line:  make([]byte, DisplayWidth*3),
	}

	// Listen for events (keyboard/mouse).
	go windowListenEvents(stdout)

	// Do some initialization.
	scale := Simulator.WindowScale
	if scale <= 0 {
		scale = 1
	}
	f.send("title "+Simulator.WindowTitle, nil)
	f.send(fmt.Sprintf("display %d %d %d", DisplayWidth, DisplayHeight, scale), nil)
	return f, nil
}

// Send a command to the separate process that manages the window.
// The command is a single line (without newline). The data part is optional
// binary data that can be sent with the command. The size of this binary data
// must be part of the textual command.
func (f *windowFrontend) send(command string, data []byte) {
	f.stdin.Write([]byte(command + "\n"))
	f.stdin.Write(data)
}

func (f *windowFrontend) drawFrame(width, height int, pixels []bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if len(f.line) < width*3 {
		f.line = make([]byte, width*3)
	}
	line := f.line[:width*3]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := oledOff
			if pixels[y*width+x] {
				c = oledOn
			}
			line[x*3+0] = c.R
			line[x*3+1] = c.G
			line[x*3+2] = c.B
		}
		f.send(fmt.Sprintf("draw 0 %d %d", y, width), line)
	}
	f.send("flush", nil)
}

func (f *windowFrontend) drawLEDs(red, green, blue color.RGBA) {
	f.lock.Lock()
	defer f.lock.Unlock()

	data := []byte{
		red.R, red.G, red.B,
		green.R, green.G, green.B,
		blue.R, blue.G, blue.B,
	}
	f.send("leds 3", data)
}

// Goroutine that listens for window events like key presses and mouse drags.
func windowListenEvents(stdout io.Reader) {
	r := bufio.NewReader(stdout)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "failed to read I/O events from child process:", err)
			}
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "keypress", "keyrelease":
			var key Key
			fmt.Sscanf(line, "%s %d", &cmd, &key)
			simulatorKey(key, cmd == "keypress")
		case "mousedown", "mousemove":
			var x, y int
			fmt.Sscanf(line, "%s %d %d", &cmd, &x, &y)
			simulatorPointer(x, y, true)
		case "mouseup":
			simulatorPointer(0, 0, false)
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}
