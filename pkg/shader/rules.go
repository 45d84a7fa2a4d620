package shader

import (
	"regexp"
	"strings"
)

// nameRules drives guessing an Info from a material name. The stages run in
// a fixed order:
//
//  1. bracketed letter codes add samplers at channel 0
//  2. if no code matched, the first matching fallback adds its samplers
//  3. the first matching category rule sets the category
//  4. suffix flags set Alpha, Edge, Spec and DetailBump
//  5. the multi-slot marker copies every sampler to channel 1
//  6. the lightmap marker adds a lightmap sampler at channel 2
//  7. any bumpmap adds a detail bumpmap at channel 0
type nameRules struct {
	codes      codeRule
	fallbacks  []samplerRule
	categories []categoryRule
	flags      []flagRule

	multiSlot       *regexp.Regexp
	multiSlotSuffix string

	lightmap     *regexp.Regexp
	lightmapType string

	bumpmapType       string
	detailBumpmapType string
}

// codeRule maps capture groups of a bracket pattern such as "[DSB]" to
// sampler types. Every bracket group of the name is scanned, so "[D][B]"
// yields both samplers.
type codeRule struct {
	pattern  *regexp.Regexp
	samplers []string // one per capture group
}

// match returns the sampler types selected by the name, in code order.
func (r codeRule) match(stem string) []string {
	found := make([]bool, len(r.samplers))
	for _, m := range r.pattern.FindAllStringSubmatch(stem, -1) {
		for i := range r.samplers {
			if m[i+1] != "" {
				found[i] = true
			}
		}
	}
	var out []string
	for i, ok := range found {
		if ok {
			out = append(out, r.samplers[i])
		}
	}
	return out
}

// stemMatcher matches a name stem by pattern, by exact membership, or by prefix.
type stemMatcher struct {
	pattern    *regexp.Regexp
	stems      map[string]bool
	prefixes   []string
	foldSubstr string // case-insensitive substring
}

func (m stemMatcher) match(stem string) bool {
	if m.pattern != nil && m.pattern.MatchString(stem) {
		return true
	}
	if m.stems[stem] {
		return true
	}
	for _, p := range m.prefixes {
		if strings.HasPrefix(stem, p) {
			return true
		}
	}
	return m.foldSubstr != "" && strings.Contains(strings.ToLower(stem), m.foldSubstr)
}

type samplerRule struct {
	stemMatcher
	samplers []string
}

type categoryRule struct {
	stemMatcher
	category Category
	// snowRoughness, when set, decides HasSnowRoughness for matched stems.
	snowRoughness map[string]bool
}

type flagRule struct {
	marker string
	fold   bool
	set    func(*Info)
}

func (r flagRule) match(stem string) bool {
	if r.fold {
		return strings.Contains(strings.ToLower(stem), strings.ToLower(r.marker))
	}
	return strings.Contains(stem, r.marker)
}

// apply runs every stage on info and reports whether any sampler was found.
func (rules *nameRules) apply(info *Info, stem string) bool {
	samplers := rules.codes.match(stem)
	if len(samplers) == 0 {
		for _, fb := range rules.fallbacks {
			if fb.match(stem) {
				samplers = fb.samplers
				break
			}
		}
	}
	for _, t := range samplers {
		info.addSampler(t, 0)
	}
	recognized := len(samplers) > 0

	for _, c := range rules.categories {
		if c.match(stem) {
			info.Category = c.category
			if c.snowRoughness != nil {
				info.HasSnowRoughness = c.snowRoughness[stem]
			}
			break
		}
	}

	for _, f := range rules.flags {
		if f.match(stem) {
			f.set(info)
		}
	}

	if rules.multiSlot != nil && rules.multiSlot.MatchString(stem) {
		for _, t := range append([]string(nil), info.SamplerTypes...) {
			info.addSampler(t+rules.multiSlotSuffix, 1)
		}
	}

	if rules.lightmap != nil && rules.lightmap.MatchString(stem) {
		info.addSampler(rules.lightmapType, 2)
	}

	if _, ok := info.SamplerUVIndices[rules.bumpmapType]; ok {
		// Some shaders with a bumpmap have no detail bumpmap; the name cannot
		// tell them apart, and an unused empty slot is harmless.
		info.addSampler(rules.detailBumpmapType, 0)
	}

	return recognized
}

func stemSet(stems ...string) map[string]bool {
	set := make(map[string]bool, len(stems))
	for _, s := range stems {
		set[s] = true
	}
	return set
}

func setAlpha(info *Info)      { info.Alpha = true }
func setEdge(info *Info)       { info.Edge = true }
func setSpec(info *Info)       { info.Spec = true }
func setDetailBump(info *Info) { info.DetailBump = true }

// MTD stems from the remaster that use a water shader without "[We]".
var ds1WaterStems = stemSet(
	"M_5Water[B]",
	"A10_00_Water_drainage",
	"A10_01_Water[B]",
	"A11_Water[W]",
	"A12_Little River",
	"A12_River",
	"A12_River_No reflect",
	"A12_Water",
	"A12_Water_lake",
	"A14Water[B]",
	"S[DB]_Alp_water",
	"A12_DarkRiver",
	"A12_DarkWater",
	"A12_NewWater",
	"A12_Water_boss",
)

var ds1SnowStems = stemSet(
	"M_8Snow",
	"A10_slime[D][L]",
	"A11_Snow",
	"A11_Snow[L]",
	"A11_Snow_stair",
	"A11_Snow_stair[L]",
	"A14_numa",
	"A14_numa2",
	"A15_Tar",
	"A18_ash",
	"A19_Snow",
	"A19_Snow[L]",
)

// Snow stems whose shader also has a metal mask and an extra bumpmap.
var ds1SnowMetalMaskStems = stemSet(
	"A10_slime[D][L]",
	"A11_Snow",
	"A11_Snow[L]",
	"A11_Snow_stair",
	"A11_Snow_stair[L]",
	"A14_numa",
	"A14_numa2",
	"A15_Tar",
	"A19_Snow",
	"A19_Snow[L]",
)

// Non-"[Dn]" stems that use the normal-to-alpha shader.
var ds1NormalToAlphaStems = stemSet(
	"M_Tree[D]_Edge",
)

var ds1WaterMatcher = stemMatcher{pattern: regexp.MustCompile(`\[We\]`), stems: ds1WaterStems}

var ds1NameRules = nameRules{
	codes: codeRule{
		pattern:  regexp.MustCompile(`\[(D)?(S)?(B)?(H)?\]`),
		samplers: []string{"g_Diffuse", "g_Specular", "g_Bumpmap", "g_Height"},
	},
	fallbacks: []samplerRule{
		{ // unshaded: skyboxes, mist, some trees
			stemMatcher: stemMatcher{pattern: regexp.MustCompile(`\[(Dn|N|NL|LN)\]`), stems: ds1NormalToAlphaStems},
			samplers:    []string{"g_Diffuse"},
		},
		{ // water has a bumpmap only
			stemMatcher: ds1WaterMatcher,
			samplers:    []string{"g_Bumpmap"},
		},
	},
	categories: []categoryRule{
		{stemMatcher: ds1WaterMatcher, category: CategoryWater},
		{stemMatcher: stemMatcher{prefixes: []string{"M_2Foliage"}}, category: CategoryFoliage},
		{stemMatcher: stemMatcher{prefixes: []string{"M_3Ivy"}}, category: CategoryIvy},
		{stemMatcher: stemMatcher{stems: ds1SnowStems}, category: CategorySnow, snowRoughness: ds1SnowMetalMaskStems},
	},
	flags: []flagRule{
		{marker: "_Alp", set: setAlpha},
		{marker: "_Edge", set: setEdge},
		{marker: "_Spec", set: setSpec},
		{marker: "_DetB", set: setDetailBump},
	},
	multiSlot:         regexp.MustCompile(`\[(M|ML|LM)\]`),
	multiSlotSuffix:   "_2",
	lightmap:          regexp.MustCompile(`\[(L|ML|LM)\]`),
	lightmapType:      "g_Lightmap",
	bumpmapType:       "g_Bumpmap",
	detailBumpmapType: "g_DetailBumpmap",
}

var bbNameRules = nameRules{
	codes: codeRule{
		// Albedo, Reflective, Shininess, Normal.
		pattern:  regexp.MustCompile(`\[(A)?(R)?(S)?(N)?\]`),
		samplers: []string{"g_DiffuseTexture", "g_SpecularTexture", "g_ShininessTexture", "g_BumpmapTexture"},
	},
	fallbacks: []samplerRule{
		{
			stemMatcher: stemMatcher{pattern: regexp.MustCompile(`\[Dn\]`)},
			samplers:    []string{"g_DiffuseTexture"},
		},
	},
	categories: []categoryRule{
		{stemMatcher: stemMatcher{foldSubstr: "water"}, category: CategoryWater},
	},
	flags: []flagRule{
		{marker: "_alp", fold: true, set: setAlpha},
		{marker: "_edge", fold: true, set: setEdge},
		{marker: "_spec", fold: true, set: setSpec},
		{marker: "_detb", fold: true, set: setDetailBump},
	},
	multiSlot:         regexp.MustCompile(`_m(_|$)`),
	multiSlotSuffix:   "2",
	lightmap:          regexp.MustCompile(`_l(_|$)`),
	lightmapType:      "g_Lightmap",
	bumpmapType:       "g_BumpmapTexture",
	detailBumpmapType: "g_DetailBumpmap",
}

// erAMSN matches the latest generation's bracketed texture codes, e.g. "[AMSN_V]".
var erAMSN = regexp.MustCompile(`\[(A)?(M)?(S)?(N)?(_V)?\]`)
