package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/skylicht/editor"
	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/handles"
	"github.com/skylicht/editor/projective"
	"github.com/skylicht/editor/scene"
)

type CameraScript struct {
	Position []float32 `yaml:"position"`
	Target   []float32 `yaml:"target"`
	Fov      float32   `yaml:"fov"`
	// OrthoHeight > 0 selects an orthographic camera.
	OrthoHeight float32 `yaml:"ortho_height"`
}

type ViewportScript struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ObjectScript struct {
	Name     string    `yaml:"name"`
	Parent   string    `yaml:"parent"`
	Locked   bool      `yaml:"locked"`
	Position []float32 `yaml:"position"`
	// Rotation is Euler XYZ in degrees.
	Rotation []float32 `yaml:"rotation"`
	Scale    []float32 `yaml:"scale"`
	// Box is the half extent of the pick box; no box means the object cannot be clicked.
	Box []float32 `yaml:"box"`
}

// FrameScript is one tick of input. Either Mouse (pixels) or At (a world point
// projected through the camera) places the cursor; without both the cursor stays put.
type FrameScript struct {
	Mouse  []float32 `yaml:"mouse"`
	At     []float32 `yaml:"at"`
	Down   bool      `yaml:"down"`
	Escape bool      `yaml:"escape"`
	Tool   string    `yaml:"tool"`
	Skip   bool      `yaml:"skip"`
}

type Script struct {
	Camera   CameraScript   `yaml:"camera"`
	Viewport ViewportScript `yaml:"viewport"`
	Tool     string         `yaml:"tool"`
	Select   []string       `yaml:"select"`
	Objects  []ObjectScript `yaml:"objects"`
	Frames   []FrameScript  `yaml:"frames"`
}

// Outcome is what a played script left behind.
type Outcome struct {
	Editor  *editor.Editor
	Objects map[string]*scene.Node
	Results []handles.Result
}

var tools = map[string]editor.Tool{
	"select":    editor.ToolSelect,
	"translate": editor.ToolTranslate,
	"rotate":    editor.ToolRotate,
	"scale":     editor.ToolScale,
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %dx%d: size must be positive", s.Viewport.Width, s.Viewport.Height)
	}
	if s.Tool != "" {
		if _, ok := tools[s.Tool]; !ok {
			return fmt.Errorf("unknown tool %q", s.Tool)
		}
	}
	for _, v := range [][]float32{s.Camera.Position, s.Camera.Target} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("camera position and target need 3 components")
		}
	}

	seen := make(map[string]bool)
	for _, o := range s.Objects {
		if o.Name == "" {
			return fmt.Errorf("object without a name")
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate object %q", o.Name)
		}
		if o.Parent != "" && !seen[o.Parent] {
			return fmt.Errorf("object %q: parent %q must be declared before it", o.Name, o.Parent)
		}
		seen[o.Name] = true
		for _, v := range [][]float32{o.Position, o.Rotation, o.Scale, o.Box} {
			if len(v) != 0 && len(v) != 3 {
				return fmt.Errorf("object %q: vectors need 3 components", o.Name)
			}
		}
	}
	for _, name := range s.Select {
		if !seen[name] {
			return fmt.Errorf("select: unknown object %q", name)
		}
	}

	for i, f := range s.Frames {
		if len(f.Mouse) != 0 && len(f.Mouse) != 2 {
			return fmt.Errorf("frame %d: mouse needs 2 components", i)
		}
		if len(f.At) != 0 && len(f.At) != 3 {
			return fmt.Errorf("frame %d: at needs 3 components", i)
		}
		if f.Tool != "" {
			if _, ok := tools[f.Tool]; !ok {
				return fmt.Errorf("frame %d: unknown tool %q", i, f.Tool)
			}
		}
	}
	return nil
}

func vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (s *Script) camera() *core.Camera {
	pos := vec3(s.Camera.Position, mgl32.Vec3{})
	target := vec3(s.Camera.Target, mgl32.Vec3{0, 0, 1})
	aspect := float32(s.Viewport.Width) / float32(s.Viewport.Height)
	if s.Camera.OrthoHeight > 0 {
		return core.NewOrthographicCamera(pos, target, s.Camera.OrthoHeight, aspect)
	}
	fov := s.Camera.Fov
	if fov <= 0 {
		fov = 60
	}
	return core.NewPerspectiveCamera(pos, target, fov, aspect)
}

// build creates the scene: every object is a game object in one zone, nested under its
// parent when one is named.
func (s *Script) build() (*scene.Node, map[string]*scene.Node, error) {
	root := scene.NewScene("script")
	zone := root.MustAddChild(scene.KindZone, "zone")
	nodes := make(map[string]*scene.Node, len(s.Objects))

	for _, o := range s.Objects {
		parent := zone
		if o.Parent != "" {
			parent = nodes[o.Parent]
		}
		n, err := parent.AddChild(scene.KindGameObject, o.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("object %q: %w", o.Name, err)
		}
		n.Locked = o.Locked
		n.Transform.Position = vec3(o.Position, mgl32.Vec3{})
		n.Transform.Scale = vec3(o.Scale, mgl32.Vec3{1, 1, 1})
		if len(o.Rotation) == 3 {
			n.Transform.Rotation = mgl32.AnglesToQuat(
				mgl32.DegToRad(o.Rotation[0]),
				mgl32.DegToRad(o.Rotation[1]),
				mgl32.DegToRad(o.Rotation[2]),
				mgl32.XYZ,
			)
		}
		if len(o.Box) == 3 {
			n.Renderables = []scene.Renderable{{Box: core.NewAABB(mgl32.Vec3{}, vec3(o.Box, mgl32.Vec3{}))}}
		}
		nodes[o.Name] = n
	}
	return root, nodes, nil
}

// Play runs every frame of s through a fresh editor session.
func Play(s *Script, cfg editor.Config, logger editor.Logger) (*Outcome, error) {
	root, nodes, err := s.build()
	if err != nil {
		return nil, err
	}

	ed := editor.New(root, cfg, logger)
	if s.Tool != "" {
		ed.SetTool(tools[s.Tool])
	}
	for _, name := range s.Select {
		ed.Selection().Add(nodes[name])
	}

	cam := s.camera()
	vp := core.NewViewport(s.Viewport.Width, s.Viewport.Height)
	out := &Outcome{Editor: ed, Objects: nodes, Results: make([]handles.Result, 0, len(s.Frames))}

	var in editor.Input
	for i, f := range s.Frames {
		if f.Tool != "" {
			ed.SetTool(tools[f.Tool])
		}
		switch {
		case len(f.Mouse) == 2:
			in.SetMouse(float64(f.Mouse[0]), float64(f.Mouse[1]))
		case len(f.At) == 3:
			p, ok := projective.WorldToScreen(cam, vec3(f.At, mgl32.Vec3{}), vp.Width, vp.Height)
			if !ok {
				return nil, fmt.Errorf("frame %d: point %v is behind the camera", i, f.At)
			}
			in.SetMouse(float64(p.X()), float64(p.Y()))
		}
		in.SetButton(editor.MouseButtonLeft, f.Down)
		in.SetButton(editor.KeyEscape, f.Escape)

		res := ed.Frame(&in, cam, vp)
		if f.Skip {
			if r := ed.Skip(); r != handles.Continuing {
				res = r
			}
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
