package shader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MetaparamSampler assigns a latest-generation sampler to a UV group.
// An empty GroupName means the sampler is not grouped.
type MetaparamSampler struct {
	Name      string `yaml:"name" json:"name"`
	GroupName string `yaml:"group_name" json:"group_name"`
}

// MetaparamTable maps shader stems to their sampler groupings. The game's
// MATBIN samplers do not say which UV channel they read, so this table is
// required to resolve latest-generation materials.
type MetaparamTable map[string][]MetaparamSampler

// ParseMetaparams decodes a metaparameter table from YAML or JSON.
func ParseMetaparams(data []byte) (MetaparamTable, error) {
	var table MetaparamTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse metaparams: %w", err)
	}
	return table, nil
}

// LoadMetaparams reads a metaparameter table from disk.
func LoadMetaparams(filename string) (MetaparamTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load metaparams: %w", err)
	}
	return ParseMetaparams(data)
}

// groups returns the sampler names of each non-empty group and the names of
// ungrouped samplers, both in table order.
func (t MetaparamTable) groups(stem string) (grouped map[string][]string, ungrouped []string, ok bool) {
	samplers, ok := t[stem]
	if !ok {
		return nil, nil, false
	}
	grouped = make(map[string][]string)
	for _, s := range samplers {
		if s.GroupName == "" {
			ungrouped = append(ungrouped, s.Name)
			continue
		}
		grouped[s.GroupName] = append(grouped[s.GroupName], s.Name)
	}
	return grouped, ungrouped, true
}
