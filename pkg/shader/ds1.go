package shader

// DS1Resolver resolves earliest-generation MTD materials.
type DS1Resolver struct {
	base
}

func (r *DS1Resolver) FromDescriptor(d *Descriptor) (*Info, error) {
	info, err := r.legacyFromDescriptor(d)
	if err != nil {
		return nil, err
	}

	for _, s := range d.Samplers {
		ch := declaredChannel(s)
		if info.Category == CategorySnow && samplerKind(s.Type) == "Bumpmap_2" {
			// Snow shaders declare channel 2 for this sampler but read channel 1.
			ch = 0
		}
		info.addSampler(s.Type, ch)
	}
	info.HasSnowRoughness = d.HasParam("g_SnowRoughness")
	return info, nil
}

func (r *DS1Resolver) FromName(name string) (*Info, error) {
	return r.fromName(&ds1NameRules, name), nil
}

func (r *DS1Resolver) Resolve(name string, table DescriptorTable) (*Info, error) {
	return r.resolve(r, name, table)
}

func (r *DS1Resolver) SkinnedLayout(info *Info) (Layout, error) {
	return legacySkinnedLayout(info)
}
