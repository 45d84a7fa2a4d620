package shader

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Sampler is one texture slot declared by a material definition.
type Sampler struct {
	Type    string `yaml:"type"`
	UVIndex int    `yaml:"uv"` // 1-based, as stored by the game
	Path    string `yaml:"path,omitempty"`
}

// ParamValue is a numeric material parameter. Scalars have one element.
type ParamValue []float64

// UnmarshalYAML accepts a number, a boolean or a list of numbers.
func (p *ParamValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := value.Decode(&f); err != nil {
			var b bool
			if berr := value.Decode(&b); berr != nil {
				return fmt.Errorf("line %d: parameter %q is not a number", value.Line, value.Value)
			}
			if b {
				f = 1
			}
		}
		*p = ParamValue{f}
	case yaml.SequenceNode:
		var fs []float64
		if err := value.Decode(&fs); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*p = fs
	default:
		return fmt.Errorf("line %d: parameter must be a number or a list of numbers", value.Line)
	}
	return nil
}

// Scalar returns the first component, or 0 for an empty value.
func (p ParamValue) Scalar() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

// Descriptor is a material definition (MTD or MATBIN) as read from the game.
type Descriptor struct {
	Name     string                `yaml:"name,omitempty"`
	Shader   string                `yaml:"shader"` // engine shader file, e.g. "FRPG_Phn_ColDif.spx"
	Category *Category             `yaml:"category,omitempty"`
	Samplers []Sampler             `yaml:"samplers"`
	Params   map[string]ParamValue `yaml:"params,omitempty"`
}

// ShaderStem returns the engine shader file name up to its first dot.
func (d *Descriptor) ShaderStem() string {
	base := path.Base(strings.ReplaceAll(d.Shader, "\\", "/"))
	stem, _, _ := strings.Cut(base, ".")
	return stem
}

// ShaderCategory returns the explicit category if set, otherwise the one
// implied by the engine shader name.
func (d *Descriptor) ShaderCategory() Category {
	if d.Category != nil {
		return *d.Category
	}
	return CategoryOfShader(d.Shader)
}

// HasParam reports whether the parameter is declared.
func (d *Descriptor) HasParam(name string) bool {
	_, ok := d.Params[name]
	return ok
}

// Param returns a scalar parameter or def if it is missing.
func (d *Descriptor) Param(name string, def float64) float64 {
	v, ok := d.Params[name]
	if !ok || len(v) == 0 {
		return def
	}
	return v[0]
}

// ParamVec2 returns a two-component parameter or def if it is missing or
// too short.
func (d *Descriptor) ParamVec2(name string, def mgl64.Vec2) mgl64.Vec2 {
	v, ok := d.Params[name]
	if !ok || len(v) < 2 {
		return def
	}
	return mgl64.Vec2{v[0], v[1]}
}

// SamplerPath returns the texture path of the first sampler of the given type.
func (d *Descriptor) SamplerPath(samplerType string) string {
	for _, s := range d.Samplers {
		if s.Type == samplerType {
			return s.Path
		}
	}
	return ""
}

// NameStem strips directories and the final extension from a material name:
// "mtd/M_2Foliage[D][B].mtd" becomes "M_2Foliage[D][B]".
func NameStem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// DescriptorTable maps material names to their definitions.
type DescriptorTable map[string]*Descriptor

// ParseDescriptors decodes a YAML (or JSON) descriptor table. Entries without
// a name take their key.
func ParseDescriptors(data []byte) (DescriptorTable, error) {
	var table DescriptorTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse descriptors: %w", err)
	}
	for key, d := range table {
		if d == nil {
			return nil, fmt.Errorf("parse descriptors: %q: %w", key, ErrNilDescriptor)
		}
		if d.Name == "" {
			d.Name = key
		}
	}
	return table, nil
}

// LoadDescriptors reads a descriptor table from disk.
func LoadDescriptors(filename string) (DescriptorTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load descriptors: %w", err)
	}
	return ParseDescriptors(data)
}

// Lookup finds a descriptor by exact name, then by name stem, then by any
// key whose stem matches. The last step visits keys in sorted order.
func (t DescriptorTable) Lookup(name string) (*Descriptor, bool) {
	if d, ok := t[name]; ok {
		return d, true
	}
	stem := NameStem(name)
	if d, ok := t[stem]; ok {
		return d, true
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if NameStem(k) == stem {
			return t[k], true
		}
	}
	return nil, false
}
