package shader

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseGeneration(t *testing.T) {
	tests := []struct {
		in   string
		want Generation
	}{
		{"ds1", DS1},
		{"PTDE", DS1},
		{" ds1r ", DS1},
		{"bb", BB},
		{"Sekiro", BB},
		{"ds3", BB},
		{"er", ER},
		{"EldenRing", ER},
	}

	for _, tt := range tests {
		got, err := ParseGeneration(tt.in)
		if err != nil {
			t.Errorf("ParseGeneration(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGeneration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseGeneration("ds2"); !errors.Is(err, ErrUnknownGeneration) {
		t.Errorf("expected ErrUnknownGeneration, got %v", err)
	}
}

func TestGenerationText(t *testing.T) {
	var cfg struct {
		Game Generation `yaml:"game"`
	}
	if err := yaml.Unmarshal([]byte("game: sekiro\n"), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Game != BB {
		t.Errorf("got %v, want bb", cfg.Game)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "game: bb\n" {
		t.Errorf("marshaled %q", out)
	}

	if err := yaml.Unmarshal([]byte("game: quake\n"), &cfg); err == nil {
		t.Error("expected error for unknown game")
	}
	if Generation(7).String() != "Generation(7)" {
		t.Errorf("unexpected String() %q", Generation(7).String())
	}
}

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"standard", "water", "foliage", "ivy", "snow", "unknown"} {
		c, err := ParseCategory(name)
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", name, err)
			continue
		}
		if c.String() != name {
			t.Errorf("round trip of %q gave %q", name, c.String())
		}
	}

	if c, err := ParseCategory("Phn"); err != nil || c != CategoryStandard {
		t.Errorf("ParseCategory(Phn) = %v, %v", c, err)
	}
	if _, err := ParseCategory("lava"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCategoryOfShader(t *testing.T) {
	tests := []struct {
		shader string
		want   Category
	}{
		{"FRPG_Water_Reflect.spx", CategoryWater},
		{"FRPG_Snow_Lit.spx", CategorySnow},
		{"FRPG_Phn_Foliage.spx", CategoryFoliage},
		{"FRPG_Phn_Ivy.spx", CategoryIvy},
		{"FRPG_Phn_ColDif_Bl.spx", CategoryStandard},
		{"FRPG_Sky.spx", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		if got := CategoryOfShader(tt.shader); got != tt.want {
			t.Errorf("CategoryOfShader(%q) = %v, want %v", tt.shader, got, tt.want)
		}
	}
}
