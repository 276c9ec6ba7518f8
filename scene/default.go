// SPDX-License-Identifier: Unlicense OR MIT

package scene

func ptr[T any](v T) *T { return &v }

// DefaultFile describes the demo window: a yellow tap target beneath a
// full-screen passthrough container holding a bottom sheet. Labels are
// disabled so that the gaps between glyphs do not let taps through.
func DefaultFile() *File {
	return &File{
		Name:   "window",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Scale:  3,
		Color:  "#f2f2f7",
		Layers: []Node{
			{
				Name:   "target",
				Frame:  []float32{60, 150, 250, 100},
				Color:  "#ffcc00",
				Radius: 12,
				Text:   "Tap the yellow view",
				Align:  "center",
			},
			{
				Name:        "passthrough",
				Frame:       []float32{0, 0, DefaultWidth, DefaultHeight},
				Passthrough: true,
				Layers: []Node{
					{
						Name:   "sheet",
						Frame:  []float32{0, 500, DefaultWidth, 300},
						Color:  "white",
						Radius: 20,
						Layers: []Node{
							{
								Name:    "grabber",
								Frame:   []float32{180, 8, 40, 5},
								Color:   "gray",
								Shape:   "capsule",
								Opacity: ptr[float32](0.4),
							},
							{
								Name:     "title",
								Frame:    []float32{20, 29, 360, 24},
								Text:     "This is a bottom sheet",
								TextSize: 17,
								Align:    "center",
								Disabled: true,
							},
							{
								Name:      "message",
								Frame:     []float32{20, 69, 360, 60},
								Text:      "Touches above this sheet pass through to the view beneath. The sheet itself blocks touches as usual.",
								TextSize:  15,
								TextColor: "#3c3c43",
								Align:     "center",
								Disabled:  true,
							},
							{
								Name:   "button",
								Frame:  []float32{20, 170, 360, 54},
								Color:  "#007aff",
								Radius: 12,
								Layers: []Node{
									{
										Name:      "label",
										Frame:     []float32{0, 16, 360, 24},
										Text:      "Tap Me",
										TextColor: "white",
										Align:     "center",
										Disabled:  true,
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// Default returns the demo window.
func Default() *Scene {
	s, err := Build(DefaultFile())
	if err != nil {
		panic(err)
	}
	return s
}
