package shader

import (
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Info summarizes what a material needs from its mesh's vertex buffers.
// Infos are built once per material and must not be modified afterwards;
// a Cache hands the same *Info to every caller.
type Info struct {
	Generation Generation
	Name       string // material name as given
	ShaderStem string

	// SamplerTypes lists sampler types in declaration order.
	SamplerTypes []string
	// SamplerUVIndices maps each sampler type to its 0-based UV channel.
	SamplerUVIndices map[string]int

	// TypeUnkX00 is written to every layout slot.
	TypeUnkX00 int

	Alpha      bool
	Edge       bool
	Spec       bool
	DetailBump bool
	Category   Category

	// HasSnowRoughness marks earliest-generation snow shaders with extra
	// bumpmaps and snow parameters.
	HasSnowRoughness bool

	// Latest generation: bracketed AMSN codes of the shader stem.
	Albedo   bool
	Metallic bool
	Sheen    bool
	Normal   bool
	V        bool

	// Latest generation: per-sampler UV scale and group index.
	SamplerUVScales map[string]mgl64.Vec2
	SamplerUVGroups map[string]int

	// Guessed is set when the info was derived from the material name alone.
	Guessed bool
}

func newInfo(gen Generation, name, stem string) *Info {
	return &Info{
		Generation:       gen,
		Name:             name,
		ShaderStem:       stem,
		SamplerUVIndices: make(map[string]int),
		Category:         CategoryStandard,
	}
}

// addSampler appends a sampler type, or moves an existing one to channel.
func (info *Info) addSampler(samplerType string, channel int) {
	if _, ok := info.SamplerUVIndices[samplerType]; !ok {
		info.SamplerTypes = append(info.SamplerTypes, samplerType)
	}
	info.SamplerUVIndices[samplerType] = channel
}

// samplerKind strips the "g_" prefix so "g_Diffuse" and "Diffuse" compare equal.
func samplerKind(samplerType string) string {
	return strings.TrimPrefix(samplerType, "g_")
}

func (info *Info) anySampler(pred func(kind string) bool) bool {
	for _, t := range info.SamplerTypes {
		if pred(samplerKind(t)) {
			return true
		}
	}
	return false
}

// windAnimated reports whether an earliest-generation material keeps wind
// animation data in channels 3 and 4. The game keys this on the material
// name, so a foliage material on a plain "Phn" shader still qualifies.
func (info *Info) windAnimated() bool {
	if info.Generation != DS1 {
		return false
	}
	if info.Category == CategoryFoliage || info.Category == CategoryIvy {
		return true
	}
	stem := NameStem(info.Name)
	return strings.Contains(stem, "Foliage") || strings.Contains(stem, "Ivy")
}

// UsedUVIndices returns the sorted set of UV channels used by the samplers,
// plus channels 3 and 4 for wind-animated materials.
func (info *Info) UsedUVIndices() []int {
	set := make(map[int]struct{}, len(info.SamplerUVIndices)+2)
	for _, ch := range info.SamplerUVIndices {
		set[ch] = struct{}{}
	}
	if info.windAnimated() {
		set[3] = struct{}{}
		set[4] = struct{}{}
	}

	used := make([]int, 0, len(set))
	for ch := range set {
		used = append(used, ch)
	}
	sort.Ints(used)
	return used
}

// SlotCount is the number of texture slots. Earliest and mid generations
// count diffuse samplers; the latest has a second slot iff channel 2 is used.
func (info *Info) SlotCount() int {
	if info.Generation == ER {
		for _, ch := range info.SamplerUVIndices {
			if ch == 2 {
				return 2
			}
		}
		return 1
	}

	n := 0
	for _, t := range info.SamplerTypes {
		if strings.HasPrefix(samplerKind(t), "Diffuse") {
			n++
		}
	}
	return n
}

// HasTangent reports whether any bumpmap (normal map) sampler is present.
func (info *Info) HasTangent() bool {
	if info.Generation == ER {
		return info.anySampler(func(kind string) bool {
			lower := strings.ToLower(kind)
			return strings.Contains(lower, "normal") || strings.Contains(lower, "bumpmap")
		})
	}
	return info.anySampler(func(kind string) bool {
		return strings.HasPrefix(kind, "Bumpmap")
	})
}

// HasBitangent reports whether the second texture slot has its own bumpmap.
func (info *Info) HasBitangent() bool {
	return info.HasTangent() && info.SlotCount() == 2
}

// HasLightmap reports whether a lightmap sampler is present.
func (info *Info) HasLightmap() bool {
	return info.anySampler(func(kind string) bool { return kind == "Lightmap" })
}

// HasDetailBumpmap reports whether a detail bumpmap sampler is present.
func (info *Info) HasDetailBumpmap() bool {
	return info.anySampler(func(kind string) bool { return kind == "DetailBumpmap" })
}

// IsWater reports whether the shader is a water shader.
func (info *Info) IsWater() bool {
	return info.Category == CategoryWater
}
