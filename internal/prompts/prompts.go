// Package prompts manages named analysis instructions, with user overrides
// loaded from a YAML file.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/observon/sheetsight/internal/config"
)

// Preset is a reusable analysis instruction.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Instruction string `yaml:"instruction"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Defaults returns the built-in presets.
func Defaults() []Preset {
	return []Preset{
		{
			Name:        "insight",
			Description: "General insights and key takeaways",
			Instruction: "What are the key insights from this data?",
		},
		{
			Name:        "trends",
			Description: "Trends and time-based patterns",
			Instruction: "Describe the main trends in this data and any notable changes over time.",
		},
		{
			Name:        "quality",
			Description: "Data quality review",
			Instruction: "Review this data for quality problems: missing values, inconsistent formats, suspicious outliers, and duplicated rows.",
		},
	}
}

// DefaultPath returns the user preset file location.
func DefaultPath() string {
	return filepath.Join(config.Dir(), "prompts.yaml")
}

// Load returns the built-in presets merged with any user-defined presets from
// the given YAML file. User presets with the same name replace built-ins. A
// missing file is not an error.
func Load(path string) ([]Preset, error) {
	presets := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return presets, nil
		}
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("invalid preset file %s: %w", path, err)
	}

	byName := make(map[string]int, len(presets))
	for i, p := range presets {
		byName[p.Name] = i
	}
	for _, p := range pf.Presets {
		if p.Name == "" || p.Instruction == "" {
			return nil, fmt.Errorf("preset file %s: every preset needs a name and an instruction", path)
		}
		if i, ok := byName[p.Name]; ok {
			presets[i] = p
		} else {
			presets = append(presets, p)
		}
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// Get looks up a preset by name.
func Get(presets []Preset, name string) (*Preset, error) {
	for i := range presets {
		if presets[i].Name == name {
			return &presets[i], nil
		}
	}
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return nil, fmt.Errorf("preset %q not found — available presets: %v", name, names)
}
