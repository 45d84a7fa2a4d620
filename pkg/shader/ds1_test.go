package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestResolver(t *testing.T, gen Generation, opts ...Option) (Resolver, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	r, err := NewResolver(gen, append([]Option{WithLogger(zap.New(core))}, opts...)...)
	require.NoError(t, err)
	return r, logs
}

func TestDS1FromName(t *testing.T) {
	tests := []struct {
		name       string
		shader     string
		samplers   []string
		uv         map[string]int
		category   Category
		used       []int
		alpha      bool
		edge       bool
		snowRough  bool
		recognized bool
	}{
		{
			name:       "foliage with split bracket codes",
			shader:     "M_2Foliage[D][B].mtd",
			samplers:   []string{"g_Diffuse", "g_Bumpmap", "g_DetailBumpmap"},
			uv:         map[string]int{"g_Diffuse": 0, "g_Bumpmap": 0, "g_DetailBumpmap": 0},
			category:   CategoryFoliage,
			used:       []int{0, 3, 4},
			recognized: true,
		},
		{
			name:   "multi slot with lightmap",
			shader: "A10_Wall[DSB][ML]_Alp.mtd",
			samplers: []string{
				"g_Diffuse", "g_Specular", "g_Bumpmap",
				"g_Diffuse_2", "g_Specular_2", "g_Bumpmap_2",
				"g_Lightmap", "g_DetailBumpmap",
			},
			uv: map[string]int{
				"g_Diffuse": 0, "g_Specular": 0, "g_Bumpmap": 0,
				"g_Diffuse_2": 1, "g_Specular_2": 1, "g_Bumpmap_2": 1,
				"g_Lightmap": 2, "g_DetailBumpmap": 0,
			},
			category:   CategoryStandard,
			used:       []int{0, 1, 2},
			alpha:      true,
			recognized: true,
		},
		{
			name:       "water stem without codes",
			shader:     "A12_River.mtd",
			samplers:   []string{"g_Bumpmap", "g_DetailBumpmap"},
			uv:         map[string]int{"g_Bumpmap": 0, "g_DetailBumpmap": 0},
			category:   CategoryWater,
			used:       []int{0},
			recognized: true,
		},
		{
			name:       "water marker",
			shader:     "M_Lake[We].mtd",
			samplers:   []string{"g_Bumpmap", "g_DetailBumpmap"},
			uv:         map[string]int{"g_Bumpmap": 0, "g_DetailBumpmap": 0},
			category:   CategoryWater,
			used:       []int{0},
			recognized: true,
		},
		{
			name:       "unshaded",
			shader:     "M_Sky[Dn].mtd",
			samplers:   []string{"g_Diffuse"},
			uv:         map[string]int{"g_Diffuse": 0},
			category:   CategoryStandard,
			used:       []int{0},
			recognized: true,
		},
		{
			name:       "normal to alpha tree",
			shader:     "M_Tree[D]_Edge.mtd",
			samplers:   []string{"g_Diffuse"},
			uv:         map[string]int{"g_Diffuse": 0},
			category:   CategoryStandard,
			used:       []int{0},
			edge:       true,
			recognized: true,
		},
		{
			name:       "ivy with lightmap",
			shader:     "M_3Ivy[D][L].mtd",
			samplers:   []string{"g_Diffuse", "g_Lightmap"},
			uv:         map[string]int{"g_Diffuse": 0, "g_Lightmap": 2},
			category:   CategoryIvy,
			used:       []int{0, 2, 3, 4},
			recognized: true,
		},
		{
			name:       "snow with metal mask",
			shader:     "A10_slime[D][L].mtd",
			samplers:   []string{"g_Diffuse", "g_Lightmap"},
			uv:         map[string]int{"g_Diffuse": 0, "g_Lightmap": 2},
			category:   CategorySnow,
			used:       []int{0, 2},
			snowRough:  true,
			recognized: true,
		},
		{
			name:     "snow without codes",
			shader:   "M_8Snow.mtd",
			uv:       map[string]int{},
			category: CategorySnow,
			used:     []int{},
		},
		{
			name:     "flags are case sensitive",
			shader:   "Weird_alp_edge.mtd",
			uv:       map[string]int{},
			category: CategoryStandard,
			used:     []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logs := newTestResolver(t, DS1)

			info, err := r.FromName(tt.shader)
			require.NoError(t, err)

			assert.Equal(t, tt.samplers, info.SamplerTypes)
			assert.Equal(t, tt.uv, info.SamplerUVIndices)
			assert.Equal(t, tt.category, info.Category)
			assert.Equal(t, tt.used, info.UsedUVIndices())
			assert.Equal(t, tt.alpha, info.Alpha)
			assert.Equal(t, tt.edge, info.Edge)
			assert.Equal(t, tt.snowRough, info.HasSnowRoughness)
			assert.True(t, info.Guessed)
			assert.Equal(t, NameStem(tt.shader), info.ShaderStem)

			if tt.recognized {
				assert.Zero(t, logs.Len(), "unexpected warnings: %v", logs.All())
			} else {
				assert.Equal(t, 1, logs.FilterField(zap.String("name", tt.shader)).Len())
			}
		})
	}
}

func TestDS1FromNameFlags(t *testing.T) {
	r, _ := newTestResolver(t, DS1)
	info, err := r.FromName("M_Rock[DB]_Alp_Edge_Spec_DetB.mtd")
	require.NoError(t, err)

	assert.True(t, info.Alpha)
	assert.True(t, info.Edge)
	assert.True(t, info.Spec)
	assert.True(t, info.DetailBump)
}

func TestDS1FromNameIsDeterministic(t *testing.T) {
	r, _ := newTestResolver(t, DS1)
	a, err := r.FromName("A10_Wall[DSB][ML]_Alp.mtd")
	require.NoError(t, err)
	b, err := r.FromName("A10_Wall[DSB][ML]_Alp.mtd")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDS1FromDescriptor(t *testing.T) {
	r, _ := newTestResolver(t, DS1)
	table := loadTestDescriptors(t)

	info, err := r.FromDescriptor(table["M_Wall[D][B].mtd"])
	require.NoError(t, err)

	assert.False(t, info.Guessed)
	assert.Equal(t, "FRPG_Phn_ColDif_Bl", info.ShaderStem)
	assert.Equal(t, []string{"Diffuse", "Bumpmap"}, info.SamplerTypes)
	assert.Equal(t, map[string]int{"Diffuse": 0, "Bumpmap": 0}, info.SamplerUVIndices)
	assert.True(t, info.Alpha)
	assert.False(t, info.Edge)
	assert.False(t, info.Spec)
	assert.True(t, info.HasTangent())
	assert.False(t, info.HasBitangent())
	assert.Equal(t, 1, info.SlotCount())

	layout, err := r.StaticLayout(info)
	require.NoError(t, err)
	assert.Equal(t, []Semantic{
		SemanticPosition, SemanticBoneIndices, SemanticNormal, SemanticTangent, SemanticColor, SemanticUV,
	}, layout.Semantics())
	assert.Equal(t, Slot{Semantic: SemanticUV, Format: FormatUV, Index: 0}, layout[5])
}

func TestDS1FromDescriptorSnow(t *testing.T) {
	r, _ := newTestResolver(t, DS1)
	table := loadTestDescriptors(t)

	info, err := r.FromDescriptor(table["A11_Snow[L].mtd"])
	require.NoError(t, err)

	assert.Equal(t, CategorySnow, info.Category)
	assert.Equal(t, 0, info.SamplerUVIndices["g_Bumpmap_2"], "snow g_Bumpmap_2 reads the first channel")
	assert.Equal(t, 2, info.SamplerUVIndices["g_Lightmap"])
	assert.Equal(t, []int{0, 2}, info.UsedUVIndices())
	assert.True(t, info.HasSnowRoughness)
	assert.True(t, info.DetailBump)
	assert.True(t, info.HasLightmap())
	assert.False(t, info.HasDetailBumpmap())
}

func TestDS1FromDescriptorFoliageName(t *testing.T) {
	r, _ := newTestResolver(t, DS1)
	d := &Descriptor{
		Name:   "M_2Foliage[D][B].mtd",
		Shader: "FRPG_Phn_ColDif_Bl.spx",
		Samplers: []Sampler{
			{Type: "g_Diffuse", UVIndex: 1},
			{Type: "g_Bumpmap", UVIndex: 1},
		},
	}

	fromDesc, err := r.FromDescriptor(d)
	require.NoError(t, err)
	assert.Equal(t, CategoryStandard, fromDesc.Category)
	assert.Equal(t, []int{0, 3, 4}, fromDesc.UsedUVIndices())

	fromName, err := r.FromName(d.Name)
	require.NoError(t, err)
	assert.Equal(t, fromName.UsedUVIndices(), fromDesc.UsedUVIndices())

	descLayout, err := r.StaticLayout(fromDesc)
	require.NoError(t, err)
	nameLayout, err := r.StaticLayout(fromName)
	require.NoError(t, err)
	assert.Equal(t, nameLayout.UVChannelCount(), descLayout.UVChannelCount())

	bb, _ := newTestResolver(t, BB)
	info, err := bb.FromDescriptor(d)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, info.UsedUVIndices(), "wind channels are earliest-generation only")
}

func TestDS1FromDescriptorNil(t *testing.T) {
	r, _ := newTestResolver(t, DS1)
	_, err := r.FromDescriptor(nil)
	assert.ErrorIs(t, err, ErrNilDescriptor)
}

func TestDS1Layouts(t *testing.T) {
	r, _ := newTestResolver(t, DS1)

	foliage, err := r.FromName("M_2Foliage[D][B].mtd")
	require.NoError(t, err)
	static, err := r.StaticLayout(foliage)
	require.NoError(t, err)
	assert.Equal(t, Layout{
		{Semantic: SemanticPosition, Format: FormatFloat3},
		{Semantic: SemanticBoneIndices, Format: FormatFourBytesB},
		{Semantic: SemanticNormal, Format: FormatFourBytesC},
		{Semantic: SemanticTangent, Format: FormatFourBytesC},
		{Semantic: SemanticColor, Format: FormatFourBytesC},
		{Semantic: SemanticUV, Format: FormatUV, Index: 0},
		{Semantic: SemanticUV, Format: FormatUVPair, Index: 1},
	}, static)

	double, err := r.FromName("M_Floor[DB][M].mtd")
	require.NoError(t, err)
	assert.Equal(t, 2, double.SlotCount())
	assert.True(t, double.HasBitangent())

	skinned, err := r.SkinnedLayout(double)
	require.NoError(t, err)
	assert.Equal(t, Layout{
		{Semantic: SemanticPosition, Format: FormatFloat3},
		{Semantic: SemanticBoneIndices, Format: FormatFourBytesB},
		{Semantic: SemanticBoneWeights, Format: FormatFourShortsToFloats},
		{Semantic: SemanticNormal, Format: FormatFourBytesC},
		{Semantic: SemanticTangent, Format: FormatFourBytesC},
		{Semantic: SemanticBitangent, Format: FormatFourBytesC},
		{Semantic: SemanticColor, Format: FormatFourBytesC},
		{Semantic: SemanticUV, Format: FormatUVPair, Index: 0},
	}, skinned)

	staticDouble, err := r.StaticLayout(double)
	require.NoError(t, err)
	assert.Equal(t, []Semantic{
		SemanticPosition, SemanticBoneIndices, SemanticNormal, SemanticTangent, SemanticBitangent,
		SemanticColor, SemanticUV,
	}, staticDouble.Semantics())

	_, err = r.SkinnedLayout(foliage)
	assert.ErrorIs(t, err, ErrInvalidUVCount)

	unknown, err := r.FromName("Mystery.mtd")
	require.NoError(t, err)
	_, err = r.SkinnedLayout(unknown)
	assert.ErrorIs(t, err, ErrInvalidUVCount)

	bare, err := r.StaticLayout(unknown)
	require.NoError(t, err)
	assert.Equal(t, []Semantic{SemanticPosition, SemanticBoneIndices, SemanticNormal, SemanticColor}, bare.Semantics())
}
