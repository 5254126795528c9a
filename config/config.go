// Package config holds app-wide settings, unmarshalled from Viper (flags and
// an optional peflow.yaml, see /cmd), plus loaders for the two externally
// configurable tables: sample naming conventions and the outcome-category
// normalization table.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"peflow-core/category"
	"peflow-core/resolve"
)

// Config is the root-level settings struct shared by all subcommands.
type Config struct {
	// path to the design database
	DB string `mapstructure:"db"`

	// optional YAML file overriding the built-in naming conventions
	Conventions string `mapstructure:"conventions"`

	// optional YAML file overriding the built-in category table
	Categories string `mapstructure:"categories"`

	// decimal places for fractions in emitted tables
	Precision int `mapstructure:"precision"`
}

// New returns a Config populated from Viper (config file and/or flags).
func New() (Config, error) {
	c := Config{Precision: 6}
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.Precision <= 0 {
		c.Precision = 6
	}
	return c, nil
}

type conventionsFile struct {
	Conventions []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"conventions"`
}

// LoadConventions reads a naming-conventions YAML file. An empty path means
// the built-in defaults.
func LoadConventions(path string) ([]resolve.Convention, error) {
	if path == "" {
		return resolve.Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f conventionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(f.Conventions) == 0 {
		return nil, fmt.Errorf("%s: no conventions defined", path)
	}
	out := make([]resolve.Convention, 0, len(f.Conventions))
	for _, c := range f.Conventions {
		conv, err := resolve.New(c.Name, c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, conv)
	}
	return out, nil
}

type categoriesFile struct {
	Categories map[string]string `yaml:"categories"`
}

// LoadCategories reads a category-table YAML file mapping raw quantifier
// labels onto normalized categories. An empty path means the built-in table.
// A mapping onto a name outside the category set is rejected here, so the
// engine only ever sees valid categories.
func LoadCategories(path string) (category.Table, error) {
	if path == "" {
		return category.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%s: no categories defined", path)
	}
	tbl := make(category.Table, len(f.Categories))
	for label, name := range f.Categories {
		c := category.Category(name)
		if !category.Valid(c) {
			return nil, fmt.Errorf("%s: label %q maps to unknown category %q", path, label, name)
		}
		tbl[label] = c
	}
	return tbl, nil
}
