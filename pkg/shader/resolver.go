// Package shader derives vertex array layouts from material definitions.
//
// A Resolver turns a material descriptor, or failing that the material name,
// into an Info describing its samplers and UV channels, then builds the
// static (map piece) and skinned (character) vertex layouts the engine
// expects for it. Each engine generation has its own Resolver.
package shader

import (
	"fmt"

	"go.uber.org/zap"
)

// Resolver builds material infos and vertex layouts for one engine generation.
type Resolver interface {
	Generation() Generation

	// FromDescriptor reads samplers and parameters from a material definition.
	FromDescriptor(d *Descriptor) (*Info, error)
	// FromName guesses an Info from the material name alone. Names that
	// match no rule produce a warning and an Info without samplers.
	FromName(name string) (*Info, error)
	// Resolve uses the table's descriptor for name if there is one and
	// falls back to FromName otherwise.
	Resolve(name string, table DescriptorTable) (*Info, error)

	StaticLayout(info *Info) (Layout, error)
	SkinnedLayout(info *Info) (Layout, error)
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	log           *zap.Logger
	metaparams    MetaparamTable
	typeUnkX00    int
	skinnedColors int
}

// DefaultSkinnedColors is the number of vertex color slots in latest-generation
// character layouts.
const DefaultSkinnedColors = 2

// WithLogger sets the logger used for guess warnings. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetaparams sets the latest generation's sampler grouping table.
func WithMetaparams(table MetaparamTable) Option {
	return func(o *options) { o.metaparams = table }
}

// WithTypeUnkX00 sets the latest generation's layout slot unknown value.
func WithTypeUnkX00(v int) Option {
	return func(o *options) { o.typeUnkX00 = v }
}

// WithSkinnedColors sets the latest generation's character vertex color
// count, clamped to 1 or 2.
func WithSkinnedColors(n int) Option {
	return func(o *options) { o.skinnedColors = min(max(n, 1), 2) }
}

// NewResolver returns the resolver for gen.
func NewResolver(gen Generation, opts ...Option) (Resolver, error) {
	o := options{
		log:           zap.NewNop(),
		skinnedColors: DefaultSkinnedColors,
	}
	for _, opt := range opts {
		opt(&o)
	}
	b := base{gen: gen, opts: o, log: o.log.With(zap.Stringer("generation", gen))}

	switch gen {
	case DS1:
		return &DS1Resolver{base: b}, nil
	case BB:
		return &BBResolver{base: b}, nil
	case ER:
		return &ERResolver{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownGeneration, int(gen))
	}
}

// base holds what every generation's resolver shares.
type base struct {
	gen  Generation
	opts options
	log  *zap.Logger
}

func (b *base) Generation() Generation {
	return b.gen
}

func (b *base) StaticLayout(info *Info) (Layout, error) {
	return staticLayout(info)
}

func (b *base) resolve(r Resolver, name string, table DescriptorTable) (*Info, error) {
	if d, ok := table.Lookup(name); ok {
		return r.FromDescriptor(d)
	}
	b.log.Warn("no descriptor for material, guessing shader info from name", zap.String("name", name))
	return r.FromName(name)
}

// fromName applies rules to the name stem.
func (b *base) fromName(rules *nameRules, name string) *Info {
	stem := NameStem(name)
	info := newInfo(b.gen, name, stem)
	info.Guessed = true
	if !rules.apply(info, stem) {
		b.log.Warn("material name has no recognizable sampler codes; define it in a descriptor table",
			zap.String("name", name))
	}
	return info
}

// legacyFromDescriptor reads the fields that earliest and mid generation
// MTD descriptors have in common.
func (b *base) legacyFromDescriptor(d *Descriptor) (*Info, error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	info := newInfo(b.gen, d.Name, d.ShaderStem())
	info.Category = d.ShaderCategory()

	switch int(d.Param("g_BlendMode", 0)) {
	case 1:
		info.Edge = true
	case 2:
		info.Alpha = true
	}
	info.Spec = d.Param("g_EnvSpcSlotNo", 0) == 1
	info.DetailBump = d.Param("g_DetailBump_BumpPower", 0) > 0
	return info, nil
}

// declaredChannel converts a 1-based UV index to a channel.
func declaredChannel(s Sampler) int {
	return max(s.UVIndex-1, 0)
}
