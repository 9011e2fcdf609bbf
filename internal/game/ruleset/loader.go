package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type occupationFile struct {
	Occupations []*Occupation `yaml:"occupations"`
}

type originFile struct {
	Origins []*Origin `yaml:"origins"`
}

type accessoryFile struct {
	Prefixes []*AccessoryPrefix `yaml:"prefixes"`
}

// LoadRules reads occupations.yaml, origins.yaml, and accessories.yaml from
// dir, validates each table, and returns the assembled Rules.
//
// Precondition: dir must be a readable directory containing all three files.
// Postcondition: Returns a non-nil Rules or the first encountered error.
func LoadRules(dir string) (*Rules, error) {
	var occs occupationFile
	if err := readYAML(filepath.Join(dir, "occupations.yaml"), &occs); err != nil {
		return nil, err
	}
	var origs originFile
	if err := readYAML(filepath.Join(dir, "origins.yaml"), &origs); err != nil {
		return nil, err
	}
	var accs accessoryFile
	if err := readYAML(filepath.Join(dir, "accessories.yaml"), &accs); err != nil {
		return nil, err
	}

	if err := validateTables(occs.Occupations, origs.Origins, accs.Prefixes); err != nil {
		return nil, fmt.Errorf("LoadRules: %w", err)
	}

	return NewRules(occs.Occupations, origs.Origins, accs.Prefixes), nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("LoadRules: cannot read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("LoadRules: cannot parse %q: %w", path, err)
	}
	return nil
}

func validateTables(occs []*Occupation, origs []*Origin, prefixes []*AccessoryPrefix) error {
	var errs []error

	if len(occs) == 0 {
		errs = append(errs, errors.New("occupation table must not be empty"))
	}
	seen := map[string]bool{}
	for _, o := range occs {
		if o.Name == "" {
			errs = append(errs, errors.New("occupation name must not be empty"))
		}
		if seen[o.Name] {
			errs = append(errs, fmt.Errorf("duplicate occupation %q", o.Name))
		}
		seen[o.Name] = true
	}

	if len(origs) == 0 {
		errs = append(errs, errors.New("origin table must not be empty"))
	}
	seen = map[string]bool{}
	for _, o := range origs {
		if o.Name == "" {
			errs = append(errs, errors.New("origin name must not be empty"))
		}
		if seen[o.Name] {
			errs = append(errs, fmt.Errorf("duplicate origin %q", o.Name))
		}
		seen[o.Name] = true
	}

	seen = map[string]bool{}
	for _, p := range prefixes {
		if p.Prefix == "" {
			errs = append(errs, errors.New("accessory prefix must not be empty"))
		}
		if seen[p.Prefix] {
			errs = append(errs, fmt.Errorf("duplicate accessory prefix %q", p.Prefix))
		}
		seen[p.Prefix] = true
		if len(p.Bonuses) == 0 {
			errs = append(errs, fmt.Errorf("accessory prefix %q has no bonuses", p.Prefix))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("table validation failed: %v", errs)
	}
	return nil
}
