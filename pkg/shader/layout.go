package shader

import (
	"fmt"
	"strings"
)

// MaxUVChannels is the most UV channels a vertex array can carry.
const MaxUVChannels = 4

// Semantic is the meaning of a vertex attribute.
type Semantic int

const (
	SemanticPosition Semantic = iota
	SemanticBoneIndices
	SemanticBoneWeights
	SemanticNormal
	SemanticTangent
	SemanticBitangent
	SemanticColor
	SemanticUV
)

var semanticNames = [...]string{
	SemanticPosition:    "position",
	SemanticBoneIndices: "bone_indices",
	SemanticBoneWeights: "bone_weights",
	SemanticNormal:      "normal",
	SemanticTangent:     "tangent",
	SemanticBitangent:   "bitangent",
	SemanticColor:       "color",
	SemanticUV:          "uv",
}

func (s Semantic) String() string {
	if s < 0 || int(s) >= len(semanticNames) {
		return fmt.Sprintf("Semantic(%d)", int(s))
	}
	return semanticNames[s]
}

// Format is the storage format of a vertex attribute.
type Format int

const (
	FormatFloat3             Format = iota // three float32
	FormatFourBytesB                       // four uint8, engine variant B
	FormatFourBytesC                       // four uint8, engine variant C
	FormatFourShortsToFloats               // four int16 normalized to float
	FormatUV                               // one UV channel
	FormatUVPair                           // two UV channels
)

var formatNames = [...]string{
	FormatFloat3:             "float3",
	FormatFourBytesB:         "four_bytes_b",
	FormatFourBytesC:         "four_bytes_c",
	FormatFourShortsToFloats: "four_shorts_to_floats",
	FormatUV:                 "uv",
	FormatUVPair:             "uv_pair",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Slot is one vertex attribute. Index tells repeated semantics apart.
type Slot struct {
	Semantic Semantic
	Format   Format
	Index    int
	UnkX00   int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s[%d](%s)", s.Semantic, s.Index, s.Format)
}

// Layout is the ordered attribute list the engine's vertex decoder expects.
type Layout []Slot

// UVChannelCount returns the number of UV channels covered by the layout.
func (l Layout) UVChannelCount() int {
	n := 0
	for _, s := range l {
		switch s.Format {
		case FormatUV:
			n++
		case FormatUVPair:
			n += 2
		}
	}
	return n
}

// Semantics returns the semantic of every slot in order.
func (l Layout) Semantics() []Semantic {
	out := make([]Semantic, len(l))
	for i, s := range l {
		out[i] = s.Semantic
	}
	return out
}

func (l Layout) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func slot(sem Semantic, f Format) Slot {
	return Slot{Semantic: sem, Format: f}
}

// appendUVs covers count channels with as few slots as possible. An odd
// remainder takes a single UV slot first.
func appendUVs(l Layout, count int) (Layout, error) {
	if count > MaxUVChannels {
		return nil, fmt.Errorf("%w: got %d", ErrLayoutOverflow, count)
	}
	member := 0
	for count > 0 {
		if count%2 == 1 {
			l = append(l, Slot{Semantic: SemanticUV, Format: FormatUV, Index: member})
			count--
		} else {
			l = append(l, Slot{Semantic: SemanticUV, Format: FormatUVPair, Index: member})
			count -= 2
		}
		member++
	}
	return l, nil
}

func (l Layout) withUnkX00(v int) Layout {
	for i := range l {
		l[i].UnkX00 = v
	}
	return l
}

// staticLayout builds the map piece layout shared by all generations. Map
// pieces still carry bone indices for their single root bone.
func staticLayout(info *Info) (Layout, error) {
	l := Layout{
		slot(SemanticPosition, FormatFloat3),
		slot(SemanticBoneIndices, FormatFourBytesB),
		slot(SemanticNormal, FormatFourBytesC),
	}

	slots := info.SlotCount()
	if info.HasTangent() {
		l = append(l, slot(SemanticTangent, FormatFourBytesC))
	}
	if slots > 1 {
		l = append(l, slot(SemanticBitangent, FormatFourBytesC))
	}
	l = append(l, slot(SemanticColor, FormatFourBytesC))

	l, err := appendUVs(l, len(info.UsedUVIndices()))
	if err != nil {
		return nil, fmt.Errorf("static layout for %q: %w", info.Name, err)
	}
	return l.withUnkX00(info.TypeUnkX00), nil
}

// legacySkinnedLayout builds the character layout of the earliest and mid
// generations, which always carries a tangent.
func legacySkinnedLayout(info *Info) (Layout, error) {
	uvCount := len(info.UsedUVIndices())
	if uvCount != 1 && uvCount != 2 {
		return nil, fmt.Errorf("skinned layout for %q: %w: got %d", info.Name, ErrInvalidUVCount, uvCount)
	}

	l := Layout{
		slot(SemanticPosition, FormatFloat3),
		slot(SemanticBoneIndices, FormatFourBytesB),
		slot(SemanticBoneWeights, FormatFourShortsToFloats),
		slot(SemanticNormal, FormatFourBytesC),
		slot(SemanticTangent, FormatFourBytesC),
	}
	if uvCount == 2 {
		l = append(l, slot(SemanticBitangent, FormatFourBytesC))
	}
	l = append(l, slot(SemanticColor, FormatFourBytesC))

	l, err := appendUVs(l, uvCount)
	if err != nil {
		return nil, err
	}
	return l.withUnkX00(0), nil
}

// erSkinnedLayout builds the latest generation's character layout with
// colors vertex color slots.
func erSkinnedLayout(info *Info, colors int) (Layout, error) {
	l := Layout{
		slot(SemanticPosition, FormatFloat3),
		slot(SemanticNormal, FormatFourBytesB),
		slot(SemanticTangent, FormatFourBytesB),
		slot(SemanticBoneIndices, FormatFourBytesB),
		slot(SemanticBoneWeights, FormatFourBytesC),
	}
	for i := 0; i < colors; i++ {
		l = append(l, Slot{Semantic: SemanticColor, Format: FormatFourBytesC, Index: i})
	}

	l, err := appendUVs(l, len(info.UsedUVIndices()))
	if err != nil {
		return nil, fmt.Errorf("skinned layout for %q: %w", info.Name, err)
	}
	return l.withUnkX00(info.TypeUnkX00), nil
}
