// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is returned for scene descriptions that cannot be built.
var ErrInvalid = errors.New("scene: invalid scene")

// File is the TOML form of a scene.
//
//	name = "demo"
//	width = 400
//	height = 800
//	scale = 3
//	policy = "occlude"
//
//	[[layer]]
//	name = "target"
//	frame = [60, 150, 250, 100]
//	color = "#ffcc00"
//	radius = 12
//
// Layers are listed back to front; nested layers use [[layer.layer]].
type File struct {
	Name   string  `toml:"name"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	// Scale is the device scale used for sampling and rendering.
	Scale float32 `toml:"scale,omitempty"`
	// Policy is "occlude" or "fallthrough".
	Policy string `toml:"policy,omitempty"`
	// Mode is "subtree" or "self".
	Mode   string `toml:"mode,omitempty"`
	Color  string `toml:"color,omitempty"`
	Layers []Node `toml:"layer,omitempty"`
}

// Node describes one layer of a File.
type Node struct {
	Name string `toml:"name"`
	// Frame is x, y, width and height in the parent's space.
	Frame  []float32 `toml:"frame"`
	Color  string    `toml:"color,omitempty"`
	Radius float32   `toml:"radius,omitempty"`
	// Rotation turns the layer about its centre, in degrees clockwise.
	Rotation float32 `toml:"rotation,omitempty"`
	// Shape is "rect" (the default), "capsule" or "ellipse".
	Shape     string   `toml:"shape,omitempty"`
	Text      string   `toml:"text,omitempty"`
	TextSize  float32  `toml:"text_size,omitempty"`
	TextColor string   `toml:"text_color,omitempty"`
	Align     string   `toml:"align,omitempty"`
	Hidden    bool     `toml:"hidden,omitempty"`
	Opacity   *float32 `toml:"opacity,omitempty"`
	Disabled  bool     `toml:"disabled,omitempty"`
	// Passthrough turns the layer into a container whose children form
	// the overlay.
	Passthrough bool   `toml:"passthrough,omitempty"`
	Layers      []Node `toml:"layer,omitempty"`
}

// Decode reads a scene description. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	f := new(File)
	md, err := toml.NewDecoder(r).Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if err := undecoded(md); err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeFile reads the scene description in the file at path.
func DecodeFile(path string) (*File, error) {
	f := new(File)
	md, err := toml.DecodeFile(path, f)
	if err != nil {
		return nil, fmt.Errorf("scene: decode %s: %w", path, err)
	}
	if err := undecoded(md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes f as TOML.
func (f *File) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	return nil
}

func undecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(names, ", "))
}
