/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"sigs.k8s.io/yaml"
)

// Format of a configuration document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from the file extension. JSON is decoded as YAML.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported configuration file extension %q", filepath.Ext(path))
	}
}

// LoadConfiguration reads, defaults and validates the configuration at path
func LoadConfiguration(path string) (*FloorplanConfiguration, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	cfg, err := DecodeConfiguration(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfiguration decodes, defaults and validates a configuration
// document. Unknown fields are rejected. apiVersion and kind may be omitted
// but must match when present.
func DecodeConfiguration(data []byte, format Format) (*FloorplanConfiguration, error) {
	cfg := &FloorplanConfiguration{}
	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("decoding TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decoding TOML: unknown fields %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}

	if cfg.APIVersion != "" && cfg.APIVersion != SchemeGroupVersion.String() {
		return nil, fmt.Errorf("unsupported apiVersion %q, expected %q", cfg.APIVersion, SchemeGroupVersion.String())
	}
	if cfg.Kind != "" && cfg.Kind != Kind {
		return nil, fmt.Errorf("unsupported kind %q, expected %q", cfg.Kind, Kind)
	}

	scheme, err := NewScheme()
	if err != nil {
		return nil, err
	}
	scheme.Default(cfg)

	if err := ValidateFloorplanConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode renders the configuration as YAML
func (c *FloorplanConfiguration) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}
