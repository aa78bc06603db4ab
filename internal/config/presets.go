package config

import "sort"

// Preset is a named seed set with the bit count it was designed for.
type Preset struct {
	Description string  `yaml:"description"`
	Seeds       []int64 `yaml:"seeds"`
	Bits        int     `yaml:"bits"`
	KeyBytes    int     `yaml:"key_bytes,omitempty"`
}

var Presets = map[string]Preset{
	"demo": {
		Description: "single seed walkthrough",
		Seeds:       []int64{12345},
		Bits:        64,
	},
	"battery": {
		Description: "four large seeds through the full battery",
		Seeds:       []int64{12345, 27644437, 100000007, 999999937},
		Bits:        10000,
	},
	"compare": {
		Description: "small to large seeds side by side",
		Seeds:       []int64{1, 100, 12345, 999999, 27644437},
		Bits:        1000,
	},
	"keys": {
		Description: "key derivation at 8, 16, 32 and 64 bytes",
		Seeds:       []int64{12345678},
		Bits:        512,
		KeyBytes:    64,
	},
	"cipher": {
		Description: "encryption round trip seed",
		Seeds:       []int64{27644437},
		Bits:        256,
	},
}

// GetPreset returns the named preset, or nil when unknown.
func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	p.Seeds = append([]int64(nil), p.Seeds...)
	return &p
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's seeds and sizes into c.
func (p *Preset) Apply(c *Config) {
	c.Seeds = append([]int64(nil), p.Seeds...)
	if len(p.Seeds) > 0 {
		c.Seed = p.Seeds[0]
	}
	if p.Bits > 0 {
		c.Bits = p.Bits
	}
	if p.KeyBytes > 0 {
		c.KeyBytes = p.KeyBytes
	}
}
