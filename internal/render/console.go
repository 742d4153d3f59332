package render

import (
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"toybox/internal/commands"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight = 36
	prompt    = "> "
	fontSize  = 18
	padding   = 8
	// Number of history lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxHistory       = 200
)

var (
	// Reused every frame when drawing the console to avoid per-frame color allocations.
	consoleBarColor  = rl.NewColor(40, 40, 40, 255)
	consoleLineColor = rl.NewColor(80, 80, 80, 255)
	consoleBgColor   = rl.NewColor(24, 24, 24, 230)
)

// Console is the command bar at the bottom of the window, toggled with the backquote key.
// Submitted lines run through the sandbox command registry; their output and errors are
// kept in the console history. While open it owns the keyboard.
type Console struct {
	reg *commands.Registry
	log *slog.Logger

	mu      sync.Mutex
	history []string
	partial string

	input string
	open  bool
}

// NewConsole returns a closed console. Bind the registry once it exists; the registry
// usually writes its output back into the console.
func NewConsole(log *slog.Logger) *Console {
	return &Console{log: log}
}

// Bind sets the registry submitted lines run through.
func (c *Console) Bind(reg *commands.Registry) { c.reg = reg }

// IsOpen reports whether the console is visible and capturing keys.
func (c *Console) IsOpen() bool { return c.open }

// Write appends command output to the history, one entry per line.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := c.partial + string(p)
	lines := strings.Split(text, "\n")
	c.partial = lines[len(lines)-1]
	for _, l := range lines[:len(lines)-1] {
		c.appendLocked(l)
	}
	return len(p), nil
}

func (c *Console) appendLocked(line string) {
	c.history = append(c.history, line)
	if over := len(c.history) - maxHistory; over > 0 {
		c.history = append(c.history[:0], c.history[over:]...)
	}
}

func (c *Console) println(line string) {
	c.mu.Lock()
	c.appendLocked(line)
	c.mu.Unlock()
}

// Submit echoes line and runs it.
func (c *Console) Submit(line string) {
	c.println(prompt + line)
	if c.reg == nil {
		return
	}
	if err := c.reg.ExecuteLine(line); err != nil {
		c.println(err.Error())
		c.log.Debug("console command failed", "line", line, "err", err)
	}
}

// Update toggles the console and, when open, handles typing, paste, backspace and enter.
// Call once per frame before any other keyboard handling.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		c.open = !c.open
		// Swallow the backquote itself.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !c.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.input += strings.ReplaceAll(pasted, "\n", " ")
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.input += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.input) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.input)
		c.input = c.input[:len(c.input)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.input != "" {
		line := c.input
		c.input = ""
		c.Submit(line)
	}
}

// Draw draws the input bar at the bottom when open, and the recent history above it.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, consoleBgColor)
	}

	c.mu.Lock()
	lines := c.history
	if len(lines) > maxLinesOnScreen {
		lines = lines[len(lines)-maxLinesOnScreen:]
	}
	for i, line := range lines {
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, padding, chatY+int32(i*lineHeight)+padding, fontSize, rl.LightGray)
	}
	c.mu.Unlock()

	rl.DrawRectangle(0, barY, screenW, BarHeight, consoleBarColor)
	rl.DrawRectangle(0, barY, screenW, 1, consoleLineColor)
	rl.DrawText(prompt+c.input+"|", padding, barY+padding, fontSize, rl.White)
}
