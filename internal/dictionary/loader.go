package dictionary

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"gopkg.in/yaml.v3"
)

// LoadRulesFile reads an ordered rule list from a YAML file. The file is
// memory-mapped rather than slurped; deployment tables run to tens of
// thousands of entries.
//
// Expected format:
//
//	- incorrect: "मां"
//	  correct: "माँ"
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat rules file: %w", err)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap rules file: %w", err)
	}
	defer data.Unmap()

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	for i, r := range rules {
		if r.Incorrect == "" {
			return nil, fmt.Errorf("rules file %s: entry %d has empty incorrect form", path, i)
		}
	}
	return rules, nil
}
