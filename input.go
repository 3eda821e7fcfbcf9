package editor

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyQ int = iota
	KeyW
	KeyE
	KeyR
	KeyY
	KeyZ
	KeyEscape
	KeyDelete
	KeyControl
	KeyLeftAlt
	MouseButtonLeft

	keyCount
)

// Input is a snapshot of the keys and mouse buttons the editor reacts to,
// refreshed once per frame.
type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY float64

	WindowWidth, WindowHeight int
}

// SetButton records the state of one key or button for this frame and derives
// the edge flags from the previous frame.
func (in *Input) SetButton(key int, down bool) {
	if key < 0 || key >= keyCount {
		return
	}
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

// SetMouse moves the cursor in window pixels, origin top-left.
func (in *Input) SetMouse(x, y float64) {
	in.MouseX = x
	in.MouseY = y
}

// PollGlfwInput pumps window events and copies the window's key, cursor and
// button state into in.
func PollGlfwInput(window *glfw.Window, in *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		in.SetButton(key, window.GetKey(glfwKey) == glfw.Press)
	}

	mx, my := window.GetCursorPos()
	in.SetMouse(mx, my)

	in.WindowWidth, in.WindowHeight = window.GetSize()

	in.SetButton(MouseButtonLeft, window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)
}

var keyToGlfw = map[int]glfw.Key{
	KeyQ:       glfw.KeyQ,
	KeyW:       glfw.KeyW,
	KeyE:       glfw.KeyE,
	KeyR:       glfw.KeyR,
	KeyY:       glfw.KeyY,
	KeyZ:       glfw.KeyZ,
	KeyEscape:  glfw.KeyEscape,
	KeyDelete:  glfw.KeyDelete,
	KeyControl: glfw.KeyLeftControl,
	KeyLeftAlt: glfw.KeyLeftAlt,
}
