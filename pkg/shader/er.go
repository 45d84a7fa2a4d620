package shader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ERResolver resolves latest-generation MATBIN materials. Their samplers do
// not declare UV channels, so a metaparameter table grouping the shader's
// samplers is required.
type ERResolver struct {
	base
}

func (r *ERResolver) FromDescriptor(d *Descriptor) (*Info, error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	stem := d.ShaderStem()
	grouped, ungrouped, ok := r.opts.metaparams.groups(stem)
	if !ok {
		return nil, fmt.Errorf("%w %q (material %q)", ErrMissingMetaparam, stem, d.Name)
	}

	info := newInfo(ER, d.Name, stem)
	info.Category = d.ShaderCategory()
	info.TypeUnkX00 = r.opts.typeUnkX00
	info.SamplerUVScales = make(map[string]mgl64.Vec2)
	info.SamplerUVGroups = make(map[string]int)
	for _, s := range d.Samplers {
		info.addSampler(s.Type, 0)
	}

	switch int(d.Param("g_BlendMode", 0)) {
	case 1:
		info.Edge = true
	case 2:
		info.Alpha = true
	}
	parseAMSN(info, stem)

	for _, name := range ungrouped {
		info.SamplerUVScales[name] = mgl64.Vec2{1, 1}
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	// The first group with textures reads channel 0 and later ones read
	// channel 2; mask samplers read channel 1.
	firstFound := false
	for _, group := range names {
		samplers := grouped[group]
		index, err := parseGroupIndex(group)
		if err != nil {
			return nil, fmt.Errorf("shader %q: %w", stem, err)
		}
		scale := d.ParamVec2(fmt.Sprintf("group_%d_CommonUV-UVParam", index), mgl64.Vec2{1, 1})
		for _, s := range samplers {
			info.SamplerUVScales[s] = scale
			info.SamplerUVGroups[s] = index
		}

		hasTextures := false
		for _, s := range samplers {
			if isPrimarySampler(s) {
				hasTextures = true
				break
			}
		}

		furBlur := false
		for _, s := range samplers {
			lower := strings.ToLower(s)
			switch {
			case hasTextures && isPrimarySampler(s):
				ch := 0
				if firstFound {
					ch = 2
				}
				info.setChannel(s, ch)
				if strings.Contains(d.SamplerPath(s), "furblurnoise") {
					furBlur = true
				}
			case strings.Contains(lower, "mask"):
				info.setChannel(s, 1)
			}
		}
		// Fur blur noise groups leave channel 0 to the next textured group.
		// This matches observed files rather than a known engine rule.
		if hasTextures && !furBlur {
			firstFound = true
		}
	}

	return info, nil
}

// FromName always fails: latest-generation names carry no layout information.
func (r *ERResolver) FromName(name string) (*Info, error) {
	return nil, fmt.Errorf("%w: %q needs a MATBIN descriptor", ErrNameOnlyResolution, name)
}

func (r *ERResolver) Resolve(name string, table DescriptorTable) (*Info, error) {
	return r.resolve(r, name, table)
}

func (r *ERResolver) SkinnedLayout(info *Info) (Layout, error) {
	return erSkinnedLayout(info, r.opts.skinnedColors)
}

// setChannel updates a sampler's channel if the descriptor declares it.
func (info *Info) setChannel(samplerType string, ch int) {
	if _, ok := info.SamplerUVIndices[samplerType]; ok {
		info.SamplerUVIndices[samplerType] = ch
	}
}

func isPrimarySampler(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "albedo") ||
		strings.Contains(lower, "metallic") ||
		strings.Contains(lower, "normal")
}

// parseGroupIndex parses "group_<N>" and names with further suffixes such as
// "group_2_Blend".
func parseGroupIndex(group string) (int, error) {
	parts := strings.Split(group, "_")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGroupName, group)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGroupName, group)
	}
	return index, nil
}

// parseAMSN sets the texture code flags from the last bracketed code group
// of the stem. Stems without one keep albedo, metallic, sheen and normal.
func parseAMSN(info *Info, stem string) {
	info.Albedo, info.Metallic, info.Sheen, info.Normal, info.V = true, true, true, true, false
	matches := erAMSN.FindAllStringSubmatch(stem, -1)
	if len(matches) == 0 {
		return
	}
	m := matches[len(matches)-1]
	info.Albedo = m[1] != ""
	info.Metallic = m[2] != ""
	info.Sheen = m[3] != ""
	info.Normal = m[4] != ""
	info.V = m[5] != ""
}
