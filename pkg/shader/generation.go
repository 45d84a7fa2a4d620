package shader

import (
	"fmt"
	"strings"
)

// Generation selects the engine's shader system.
type Generation int

const (
	// DS1 covers MTD shaders of the earliest engine generation (PTDE and remaster).
	DS1 Generation = iota
	// BB covers MTD shaders of the mid generation (Bloodborne, DS3, Sekiro).
	BB
	// ER covers MATBIN shaders of the latest generation.
	ER
)

var generationNames = map[string]Generation{
	"ds1":       DS1,
	"ptde":      DS1,
	"ds1r":      DS1,
	"bb":        BB,
	"ds3":       BB,
	"sekiro":    BB,
	"er":        ER,
	"eldenring": ER,
}

// ParseGeneration parses a generation or game name, ignoring case.
func ParseGeneration(s string) (Generation, error) {
	g, ok := generationNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGeneration, s)
	}
	return g, nil
}

func (g Generation) String() string {
	switch g {
	case DS1:
		return "ds1"
	case BB:
		return "bb"
	case ER:
		return "er"
	default:
		return fmt.Sprintf("Generation(%d)", int(g))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Generation) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Generation) UnmarshalText(text []byte) error {
	parsed, err := ParseGeneration(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Category is the broad shader family, which decides some layout exceptions.
type Category int

const (
	CategoryStandard Category = iota // lit "Phn" shaders
	CategoryWater
	CategoryFoliage
	CategoryIvy
	CategorySnow
	CategoryUnknown
)

var categoryNames = [...]string{
	CategoryStandard: "standard",
	CategoryWater:    "water",
	CategoryFoliage:  "foliage",
	CategoryIvy:      "ivy",
	CategorySnow:     "snow",
	CategoryUnknown:  "unknown",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory parses a category name. "phn" is accepted for standard.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "phn" {
		return CategoryStandard, nil
	}
	for c, name := range categoryNames {
		if name == s {
			return Category(c), nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown shader category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// categoryMarkers map substrings of engine shader file names to categories,
// checked in order.
var categoryMarkers = []struct {
	marker   string
	category Category
}{
	{"Water", CategoryWater},
	{"Snow", CategorySnow},
	{"Foliage", CategoryFoliage},
	{"Ivy", CategoryIvy},
	{"Phn", CategoryStandard},
}

// CategoryOfShader derives the category from an engine shader file name such
// as "FRPG_Water_Reflect.spx".
func CategoryOfShader(shader string) Category {
	for _, m := range categoryMarkers {
		if strings.Contains(shader, m.marker) {
			return m.category
		}
	}
	return CategoryUnknown
}
