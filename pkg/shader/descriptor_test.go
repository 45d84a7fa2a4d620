package shader

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

func loadTestDescriptors(t *testing.T) DescriptorTable {
	t.Helper()
	table, err := LoadDescriptors(filepath.Join("testdata", "descriptors.yaml"))
	if err != nil {
		t.Fatalf("LoadDescriptors: %v", err)
	}
	return table
}

func TestLoadDescriptors(t *testing.T) {
	table := loadTestDescriptors(t)

	if len(table) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(table))
	}

	wall := table["M_Wall[D][B].mtd"]
	if wall.Name != "M_Wall[D][B].mtd" {
		t.Errorf("Name should default to key, got %q", wall.Name)
	}
	if wall.ShaderStem() != "FRPG_Phn_ColDif_Bl" {
		t.Errorf("ShaderStem() = %q", wall.ShaderStem())
	}
	if len(wall.Samplers) != 2 || wall.Samplers[0].Type != "Diffuse" || wall.Samplers[0].UVIndex != 1 {
		t.Errorf("unexpected samplers %+v", wall.Samplers)
	}
	if got := wall.SamplerPath("Diffuse"); got != `N:\FRPG\data\Model\map\tx\wall.tga` {
		t.Errorf("SamplerPath(Diffuse) = %q", got)
	}
	if got := wall.SamplerPath("Lightmap"); got != "" {
		t.Errorf("SamplerPath(Lightmap) = %q, want empty", got)
	}
	if got := wall.Param("g_BlendMode", 0); got != 2 {
		t.Errorf("g_BlendMode = %v, want 2", got)
	}
	if got := wall.Param("g_Missing", 7); got != 7 {
		t.Errorf("missing param should return default, got %v", got)
	}
	if wall.ShaderCategory() != CategoryStandard {
		t.Errorf("ShaderCategory() = %v, want standard", wall.ShaderCategory())
	}

	snow := table["A11_Snow[L].mtd"]
	if !snow.HasParam("g_SnowRoughness") {
		t.Error("snow descriptor should have g_SnowRoughness")
	}
	if got := snow.Param("g_SnowMetalMask", 0); got != 1 {
		t.Errorf("boolean param should decode as 1, got %v", got)
	}
	if snow.ShaderCategory() != CategorySnow {
		t.Errorf("ShaderCategory() = %v, want snow", snow.ShaderCategory())
	}

	custom := table["Overridden"]
	if custom.Name != "Overridden.mtd" {
		t.Errorf("explicit name should be kept, got %q", custom.Name)
	}
	if custom.ShaderCategory() != CategoryFoliage {
		t.Errorf("explicit category should win, got %v", custom.ShaderCategory())
	}
	if got := custom.ParamVec2("g_UVScale", mgl64.Vec2{1, 1}); got != (mgl64.Vec2{0.5, 2}) {
		t.Errorf("ParamVec2 = %v", got)
	}
	if got := custom.ParamVec2("g_BlendMode", mgl64.Vec2{1, 1}); got != (mgl64.Vec2{1, 1}) {
		t.Errorf("scalar param should not satisfy ParamVec2, got %v", got)
	}
}

func TestParseDescriptorsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad param", "M.mtd:\n  params:\n    g_BlendMode: fast\n"},
		{"map param", "M.mtd:\n  params:\n    g_BlendMode: {a: 1}\n"},
		{"bad category", "M.mtd:\n  category: lava\n"},
		{"null entry", "M.mtd:\n"},
		{"not a map", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDescriptors([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDescriptorsMissingFile(t *testing.T) {
	_, err := LoadDescriptors(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDescriptorTableLookup(t *testing.T) {
	table := DescriptorTable{
		"M_A[D].mtd":          {Name: "M_A[D].mtd"},
		"M_B[D]":              {Name: "M_B[D]"},
		"sub/dir/M_C[DB].mtd": {Name: "sub/dir/M_C[DB].mtd"},
	}

	tests := []struct {
		query string
		want  string
	}{
		{"M_A[D].mtd", "M_A[D].mtd"},
		{"M_B[D].mtd", "M_B[D]"},
		{`other\M_C[DB].mtd`, "sub/dir/M_C[DB].mtd"},
		{"M_A[D]", "M_A[D].mtd"},
	}

	for _, tt := range tests {
		d, ok := table.Lookup(tt.query)
		if !ok {
			t.Errorf("Lookup(%q) found nothing", tt.query)
			continue
		}
		if d.Name != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.query, d.Name, tt.want)
		}
	}

	if _, ok := table.Lookup("M_Z[D].mtd"); ok {
		t.Error("unexpected match for unknown name")
	}
	var empty DescriptorTable
	if _, ok := empty.Lookup("M_A[D].mtd"); ok {
		t.Error("nil table should find nothing")
	}
}

func TestNameStem(t *testing.T) {
	tests := []struct{ in, want string }{
		{"M_2Foliage[D][B].mtd", "M_2Foliage[D][B]"},
		{`N:\FRPG\mtd\A12_River.mtd`, "A12_River"},
		{"A12_Little River", "A12_Little River"},
		{"M[AMSN]_Skin.matxml", "M[AMSN]_Skin"},
		{"dir/P_Wall[ARSN]_m.mtd", "P_Wall[ARSN]_m"},
	}
	for _, tt := range tests {
		if got := NameStem(tt.in); got != tt.want {
			t.Errorf("NameStem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParamValueYAML(t *testing.T) {
	var v struct {
		A ParamValue `yaml:"a"`
		B ParamValue `yaml:"b"`
		C ParamValue `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("a: 3\nb: [1, 2.5]\nc: false\n"), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A.Scalar() != 3 || len(v.B) != 2 || v.B[1] != 2.5 || v.C.Scalar() != 0 {
		t.Errorf("unexpected values %+v", v)
	}
	if (ParamValue{}).Scalar() != 0 {
		t.Error("empty value should be 0")
	}
}
