package render

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dart-pop/core"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// ParseColorMode resolves the -color flag, anything unknown means auto-detect
func ParseColorMode(s string) ColorMode {
	switch s {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeLevel maps a channel to the nearest cube index
func cubeLevel(v uint8) int {
	best, bestDist := 0, 256
	for i, c := range cubeValues {
		d := int(v) - int(c)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// RGBTo256 converts RGB to the nearest color cube index
func RGBTo256(c core.RGB) uint8 {
	return uint8(16 + 36*cubeLevel(c.R) + 6*cubeLevel(c.G) + cubeLevel(c.B))
}

// toTcell converts a color for the active mode
func (m ColorMode) toTcell(c core.RGB) tcell.Color {
	if m == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}

// UI colors
var (
	rgbBackground = core.RGB{R: 12, G: 14, B: 28}
	rgbString     = core.RGB{R: 170, G: 170, B: 170}
	rgbDart       = core.RGB{R: 240, G: 240, B: 240}
	rgbStatus     = core.RGB{R: 120, G: 200, B: 255}
	rgbWarn       = core.RGB{R: 255, G: 170, B: 0}
)
