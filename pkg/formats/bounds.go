// Package formats reads and writes bounds files, the YAML documents that
// describe an object's collision polygons per animation frame.
package formats

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rotabounds/pkg/bounds"
	"github.com/Faultbox/rotabounds/pkg/math"
)

// Bounds file errors.
var (
	ErrEmptyBounds    = errors.New("bounds file has no bounds")
	ErrBadPoint       = errors.New("point must be [x, y]")
	ErrUnknownMode    = bounds.ErrUnknownMode
	ErrFieldMode      = errors.New("field not valid in this mode")
	ErrDuplicateFrame = errors.New("duplicate frame key")
)

// BoundsFile is a parsed bounds file.
//
// A file whose bounds are a plain polygon list holds a single frame under
// bounds.DefaultFrame. A file whose bounds are a mapping holds one frame per
// key.
type BoundsFile struct {
	Mode   bounds.Mode
	Frames map[string]bounds.Definition
}

type polygonYAML struct {
	Points      [][]float64 `yaml:"points,flow"`
	Checkpoints []int       `yaml:"checkpoints,omitempty,flow"`
	Open        bool        `yaml:"open,omitempty"`
	Hidden      bool        `yaml:"hidden,omitempty"`
}

type fileYAML struct {
	Mode   string    `yaml:"mode,omitempty"`
	Bounds yaml.Node `yaml:"bounds"`
}

type fileOutYAML struct {
	Mode   string `yaml:"mode"`
	Bounds any    `yaml:"bounds"`
}

// ParseBounds parses a bounds file and validates every frame.
func ParseBounds(data []byte) (*BoundsFile, error) {
	var raw fileYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing bounds YAML: %w", err)
	}

	mode, err := bounds.ParseMode(raw.Mode)
	if err != nil {
		return nil, err
	}
	f := &BoundsFile{Mode: mode, Frames: make(map[string]bounds.Definition)}

	switch raw.Bounds.Kind {
	case yaml.SequenceNode:
		var polys []polygonYAML
		if err := raw.Bounds.Decode(&polys); err != nil {
			return nil, fmt.Errorf("decoding bounds: %w", err)
		}
		def, err := definition(mode, polys)
		if err != nil {
			return nil, err
		}
		f.Frames[bounds.DefaultFrame] = def

	case yaml.MappingNode:
		// Decode pair by pair so duplicate keys after normalization are caught.
		for i := 0; i+1 < len(raw.Bounds.Content); i += 2 {
			keyNode, valNode := raw.Bounds.Content[i], raw.Bounds.Content[i+1]
			key := FrameKey(keyNode.Value)
			if _, dup := f.Frames[key]; dup {
				return nil, fmt.Errorf("%w: %q (line %d)", ErrDuplicateFrame, key, keyNode.Line)
			}
			var polys []polygonYAML
			if err := valNode.Decode(&polys); err != nil {
				return nil, fmt.Errorf("frame %q: decoding bounds: %w", key, err)
			}
			def, err := definition(mode, polys)
			if err != nil {
				return nil, fmt.Errorf("frame %q: %w", key, err)
			}
			f.Frames[key] = def
		}
		if len(f.Frames) == 0 {
			return nil, ErrEmptyBounds
		}

	case 0:
		return nil, ErrEmptyBounds

	default:
		return nil, fmt.Errorf("bounds must be a list or a mapping (line %d)", raw.Bounds.Line)
	}

	return f, nil
}

// LoadBounds reads and parses a bounds file from disk.
func LoadBounds(path string) (*BoundsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bounds file: %w", err)
	}
	f, err := ParseBounds(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// FrameKey normalizes a frame name so that keys which look alike compare
// equal.
func FrameKey(s string) string {
	return norm.NFC.String(s)
}

func definition(mode bounds.Mode, polys []polygonYAML) (bounds.Definition, error) {
	def := bounds.Definition{Polygons: make([]bounds.Polygon, 0, len(polys))}
	for i, py := range polys {
		p := bounds.Polygon{Hidden: py.Hidden, Hints: make([]math.Vec2, 0, len(py.Points))}
		for j, pt := range py.Points {
			if len(pt) != 2 {
				return bounds.Definition{}, fmt.Errorf("polygon %d point %d: %w, got %d values", i, j, ErrBadPoint, len(pt))
			}
			p.Hints = append(p.Hints, math.Vec2{X: pt[0], Y: pt[1]})
		}

		switch mode {
		case bounds.ModeSegment:
			if len(py.Checkpoints) > 0 {
				return bounds.Definition{}, fmt.Errorf("polygon %d: %w: checkpoints in %s mode", i, ErrFieldMode, mode)
			}
			p.Kind = bounds.Segment{Open: py.Open}
		default:
			if py.Open {
				return bounds.Definition{}, fmt.Errorf("polygon %d: %w: open in %s mode", i, ErrFieldMode, mode)
			}
			p.Kind = bounds.Membership{Checkpoints: py.Checkpoints}
		}
		def.Polygons = append(def.Polygons, p)
	}

	if err := def.Validate(); err != nil {
		return bounds.Definition{}, err
	}
	return def, nil
}

// Keys returns the frame keys in sorted order.
func (f *BoundsFile) Keys() []string {
	keys := make([]string, 0, len(f.Frames))
	for k := range f.Frames {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Definitions returns a copy of every frame's definition, by key.
func (f *BoundsFile) Definitions() map[string]bounds.Definition {
	out := make(map[string]bounds.Definition, len(f.Frames))
	for k, def := range f.Frames {
		out[k] = def.Clone()
	}
	return out
}

// Single reports whether the file holds one unkeyed frame.
func (f *BoundsFile) Single() bool {
	_, ok := f.Frames[bounds.DefaultFrame]
	return ok && len(f.Frames) == 1
}

// NewObject builds an Object in the file's mode with every frame
// registered, and activates the first key.
func (f *BoundsFile) NewObject(opts ...bounds.Option) (*bounds.Object, error) {
	opts = append([]bounds.Option{bounds.WithMode(f.Mode)}, opts...)
	o := bounds.New(opts...)
	keys := f.Keys()
	for _, k := range keys {
		if _, err := o.Register(k, f.Frames[k]); err != nil {
			return nil, err
		}
	}
	if len(keys) > 0 {
		if _, err := o.Activate(keys[0]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Marshal encodes f as YAML. A single unkeyed frame is written as a plain
// polygon list.
func Marshal(f *BoundsFile) ([]byte, error) {
	if len(f.Frames) == 0 {
		return nil, ErrEmptyBounds
	}
	out := fileOutYAML{Mode: f.Mode.String()}
	if f.Single() {
		out.Bounds = polygonsYAML(f.Frames[bounds.DefaultFrame])
	} else {
		frames := make(map[string][]polygonYAML, len(f.Frames))
		for k, def := range f.Frames {
			frames[k] = polygonsYAML(def)
		}
		out.Bounds = frames
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshaling bounds: %w", err)
	}
	return data, nil
}

// SaveBounds writes f to path.
func SaveBounds(path string, f *BoundsFile) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing bounds file: %w", err)
	}
	return nil
}

func polygonsYAML(def bounds.Definition) []polygonYAML {
	out := make([]polygonYAML, 0, len(def.Polygons))
	for _, p := range def.Polygons {
		py := polygonYAML{
			Points:      make([][]float64, 0, len(p.Hints)),
			Checkpoints: p.Checkpoints(),
			Open:        p.Open(),
			Hidden:      p.Hidden,
		}
		for _, h := range p.Hints {
			py.Points = append(py.Points, []float64{h.X, h.Y})
		}
		out = append(out, py)
	}
	return out
}
