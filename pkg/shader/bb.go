package shader

// BBResolver resolves mid-generation MTD materials. Their sampler types end
// in "Texture" and second-slot copies add a "2" suffix.
type BBResolver struct {
	base
}

func (r *BBResolver) FromDescriptor(d *Descriptor) (*Info, error) {
	info, err := r.legacyFromDescriptor(d)
	if err != nil {
		return nil, err
	}
	for _, s := range d.Samplers {
		info.addSampler(s.Type, declaredChannel(s))
	}
	return info, nil
}

func (r *BBResolver) FromName(name string) (*Info, error) {
	return r.fromName(&bbNameRules, name), nil
}

func (r *BBResolver) Resolve(name string, table DescriptorTable) (*Info, error) {
	return r.resolve(r, name, table)
}

func (r *BBResolver) SkinnedLayout(info *Info) (Layout, error) {
	return legacySkinnedLayout(info)
}
