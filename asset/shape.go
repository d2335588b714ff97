package asset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/dart-pop/components"
)

// Sentinel errors
var (
	ErrMalformedShape = errors.New("malformed shape")
	ErrMissingRegion  = errors.New("missing shape region")
)

// File names looked up inside an asset directory
const (
	BalloonFile = "balloon.txt"
	DartFile    = "dart.txt"
)

// Region is one named block of shape art, measured by its non-blank extent
type Region struct {
	Lines []string
	Left  int // Column where the non-blank extent starts
	Cols  int // Width of the non-blank extent in cells
	Rows  int
}

// BalloonShape holds the two balloon regions as fixed fields
type BalloonShape struct {
	Head   Region
	String Region
}

// DartShape holds the dart art
type DartShape struct {
	Body Region
}

// Assets is the full set of shapes needed before the loop may start
type Assets struct {
	Balloon BalloonShape
	Dart    DartShape
}

// ParseBalloon parses balloon art with [head] and [string] sections
func ParseBalloon(data string) (BalloonShape, error) {
	sections, err := parseSections(data, "head", "string")
	if err != nil {
		return BalloonShape{}, fmt.Errorf("balloon: %w", err)
	}
	return BalloonShape{Head: sections["head"], String: sections["string"]}, nil
}

// ParseDart parses dart art with a [body] section
func ParseDart(data string) (DartShape, error) {
	sections, err := parseSections(data, "body")
	if err != nil {
		return DartShape{}, fmt.Errorf("dart: %w", err)
	}
	return DartShape{Body: sections["body"]}, nil
}

// Load returns the built-in shapes when dir is empty, otherwise reads them from dir
func Load(dir string) (*Assets, error) {
	balloonData, dartData := DefaultBalloonShape, DefaultDartShape
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, BalloonFile))
		if err != nil {
			return nil, fmt.Errorf("read balloon shape: %w", err)
		}
		d, err := os.ReadFile(filepath.Join(dir, DartFile))
		if err != nil {
			return nil, fmt.Errorf("read dart shape: %w", err)
		}
		balloonData, dartData = string(b), string(d)
	}

	balloon, err := ParseBalloon(balloonData)
	if err != nil {
		return nil, err
	}
	dart, err := ParseDart(dartData)
	if err != nil {
		return nil, err
	}
	return &Assets{Balloon: balloon, Dart: dart}, nil
}

// Geometry converts cell extents into world units
// height spans all rows; a cell is cellAspect times as wide as it is tall
func (b BalloonShape) Geometry(height, cellAspect float64) components.TargetGeometry {
	rowUnit := height / float64(b.Head.Rows+b.String.Rows)
	colUnit := rowUnit * cellAspect
	return components.NewTargetGeometry(
		components.RegionSize{W: float64(b.Head.Cols) * colUnit, H: float64(b.Head.Rows) * rowUnit},
		components.RegionSize{W: float64(b.String.Cols) * colUnit, H: float64(b.String.Rows) * rowUnit},
	)
}

// Geometry converts the dart body extent into world units
func (d DartShape) Geometry(height, cellAspect float64) components.ProjectileGeometry {
	rowUnit := height / float64(d.Body.Rows)
	return components.ProjectileGeometry{
		Width:  float64(d.Body.Cols) * rowUnit * cellAspect,
		Height: height,
	}
}

// Cells returns the art rows as runes with the blank left margin removed
func (r Region) Cells() [][]rune {
	out := make([][]rune, len(r.Lines))
	for i, line := range r.Lines {
		runes := []rune(line)
		if len(runes) > r.Left {
			out[i] = runes[r.Left:]
		}
	}
	return out
}

// parseSections splits art into [name] blocks; every required name must be present and non-blank
func parseSections(data string, required ...string) (map[string]Region, error) {
	allowed := make(map[string]bool, len(required))
	for _, name := range required {
		allowed[name] = true
	}

	raw := make(map[string][]string)
	current := ""
	sc := bufio.NewScanner(strings.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])
			if !allowed[name] {
				return nil, fmt.Errorf("%w: line %d: unknown section %q", ErrMalformedShape, lineNo, name)
			}
			if _, dup := raw[name]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate section %q", ErrMalformedShape, lineNo, name)
			}
			raw[name] = []string{}
			current = name
			continue
		}

		if current == "" {
			if line == "" {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: art outside a section", ErrMalformedShape, lineNo)
		}
		if strings.ContainsRune(line, '\t') {
			return nil, fmt.Errorf("%w: line %d: tabs are not allowed", ErrMalformedShape, lineNo)
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: line %d: invalid UTF-8", ErrMalformedShape, lineNo)
		}
		raw[current] = append(raw[current], line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedShape, err)
	}

	regions := make(map[string]Region, len(required))
	for _, name := range required {
		lines, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingRegion, name)
		}
		region, ok := measure(lines)
		if !ok {
			return nil, fmt.Errorf("%w: %q is blank", ErrMissingRegion, name)
		}
		regions[name] = region
	}
	return regions, nil
}

// measure trims blank edge rows and computes the non-blank column extent
func measure(lines []string) (Region, bool) {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Region{}, false
	}

	minCol, maxCol := -1, -1
	for _, line := range lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				if minCol < 0 || col < minCol {
					minCol = col
				}
				if col > maxCol {
					maxCol = col
				}
			}
			col++
		}
	}

	return Region{
		Lines: lines,
		Left:  minCol,
		Cols:  maxCol - minCol + 1,
		Rows:  len(lines),
	}, true
}
