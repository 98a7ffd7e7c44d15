package core

import "fmt"

// Color is an RGBA color with 8 bits per channel.
// It serializes as a four element array of integers in [0, 255].
type Color [4]uint8

// Named colors used as defaults for boards and notes.
var (
	Black     = Color{0, 0, 0, 255}
	White     = Color{255, 255, 255, 255}
	Yellow    = Color{255, 255, 0, 255}
	LightBlue = Color{173, 216, 230, 255}
	LightRed  = Color{255, 128, 128, 255}
)

// RGBA builds a color from its channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

func (c Color) R() uint8 { return c[0] }
func (c Color) G() uint8 { return c[1] }
func (c Color) B() uint8 { return c[2] }
func (c Color) A() uint8 { return c[3] }

// Hex renders the color as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c[0], c[1], c[2], c[3])
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" or one of the named colors.
func ParseColor(s string) (Color, error) {
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	case "yellow":
		return Yellow, nil
	case "lightblue", "light-blue":
		return LightBlue, nil
	case "lightred", "light-red":
		return LightRed, nil
	}

	var c Color
	c[3] = 255
	var n int
	var err error
	switch len(s) {
	case 7:
		n, err = fmt.Sscanf(s, "#%02x%02x%02x", &c[0], &c[1], &c[2])
		if n != 3 && err == nil {
			err = fmt.Errorf("short color")
		}
	case 9:
		n, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c[0], &c[1], &c[2], &c[3])
		if n != 4 && err == nil {
			err = fmt.Errorf("short color")
		}
	default:
		err = fmt.Errorf("unexpected length %d", len(s))
	}
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
