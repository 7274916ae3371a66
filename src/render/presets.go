// Package render carries the video-export glue around the retrieval core:
// quality preset lookup tables and a simulated frame-processing worker.
package render

import (
	"fmt"
	"sort"
)

// Preset couples a constant-rate-factor value with an encoder speed.
type Preset struct {
	Name  string `json:"name"`
	CRF   int    `json:"crf"`
	Speed string `json:"speed"`
}

var defaultPresets = map[string]Preset{
	"draft":    {Name: "draft", CRF: 28, Speed: "ultrafast"},
	"standard": {Name: "standard", CRF: 23, Speed: "medium"},
	"high":     {Name: "high", CRF: 18, Speed: "medium"},
	"lossless": {Name: "lossless", CRF: 0, Speed: "veryslow"},
}

// Presets is a named set of quality presets.
type Presets map[string]Preset

// DefaultPresets returns the built-in quality table.
func DefaultPresets() Presets {
	out := make(Presets, len(defaultPresets))
	for name, p := range defaultPresets {
		out[name] = p
	}
	return out
}

// Lookup resolves a preset by name.
func (p Presets) Lookup(name string) (Preset, error) {
	preset, ok := p[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown quality preset %q", name)
	}
	return preset, nil
}

// Names lists the available preset names in stable order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge overlays overrides onto the set, adding or replacing by name.
func (p Presets) Merge(overrides map[string]Preset) Presets {
	merged := make(Presets, len(p)+len(overrides))
	for name, preset := range p {
		merged[name] = preset
	}
	for name, preset := range overrides {
		preset.Name = name
		merged[name] = preset
	}
	return merged
}
