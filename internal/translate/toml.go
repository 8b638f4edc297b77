// Package translate converts TOML documents into other display formats.
package translate

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/projkit/internal/errors"
)

// TOMLToYAML converts TOML data to YAML data.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	data, err := decode(tomlData)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}

// TOMLToJSON converts TOML data to indented JSON data.
func TOMLToJSON(tomlData []byte) ([]byte, error) {
	data, err := decode(tomlData)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	return append(out, '\n'), nil
}

// YAMLToTOML converts YAML data to TOML data.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

func decode(tomlData []byte) (map[string]any, error) {
	data := map[string]any{}
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	return data, nil
}
