package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewResolverUnknownGeneration(t *testing.T) {
	r, err := NewResolver(Generation(9))
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrUnknownGeneration)
}

func TestNewResolverGenerations(t *testing.T) {
	for _, gen := range []Generation{DS1, BB, ER} {
		r, err := NewResolver(gen, WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, gen, r.Generation())
	}
}

func TestResolveUsesDescriptorTable(t *testing.T) {
	r, logs := newTestResolver(t, DS1)
	table := loadTestDescriptors(t)

	info, err := r.Resolve(`N:\FRPG\data\Material\M_Wall[D][B].mtd`, table)
	require.NoError(t, err)
	assert.False(t, info.Guessed)
	assert.Equal(t, "FRPG_Phn_ColDif_Bl", info.ShaderStem)
	assert.Zero(t, logs.Len())
}

func TestResolveFallsBackToName(t *testing.T) {
	r, logs := newTestResolver(t, DS1)
	table := loadTestDescriptors(t)

	info, err := r.Resolve("M_Floor[DB].mtd", table)
	require.NoError(t, err)
	assert.True(t, info.Guessed)
	assert.Equal(t, []string{"g_Diffuse", "g_Bumpmap", "g_DetailBumpmap"}, info.SamplerTypes)

	entries := logs.FilterMessage("no descriptor for material, guessing shader info from name").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "M_Floor[DB].mtd", entries[0].ContextMap()["name"])
	assert.Equal(t, "ds1", entries[0].ContextMap()["generation"])

	// A nil table always guesses.
	_, err = r.Resolve("M_Floor[DB].mtd", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.Len())
}

func TestResolveERWithoutDescriptorFails(t *testing.T) {
	r, logs := newTestResolver(t, ER, WithMetaparams(loadTestMetaparams(t)))

	_, err := r.Resolve("AEG001_Wall.matbin", DescriptorTable{})
	assert.ErrorIs(t, err, ErrNameOnlyResolution)
	assert.Equal(t, 1, logs.FilterField(zap.String("name", "AEG001_Wall.matbin")).Len())

	info, err := r.Resolve("AEG001_Wall.matbin", DescriptorTable{"AEG001_Wall.matbin": amsnDescriptor()})
	require.NoError(t, err)
	assert.Equal(t, 2, info.SlotCount())
}

func TestWithSkinnedColors(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 2},
		{-3, 1},
	}

	for _, tt := range tests {
		r, _ := newTestResolver(t, ER, WithSkinnedColors(tt.in))
		layout, err := r.SkinnedLayout(newInfo(ER, "x", "x"))
		require.NoError(t, err)

		colors := 0
		for _, s := range layout {
			if s.Semantic == SemanticColor {
				colors++
			}
		}
		assert.Equal(t, tt.want, colors, "WithSkinnedColors(%d)", tt.in)
	}
}

func TestDeclaredChannel(t *testing.T) {
	for uv, want := range map[int]int{-1: 0, 0: 0, 1: 0, 2: 1, 3: 2} {
		assert.Equal(t, want, declaredChannel(Sampler{UVIndex: uv}), "uv %d", uv)
	}
}
