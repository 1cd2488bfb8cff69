package tictactoe

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML benchmark config. Settings missing from the file keep
// their DefaultConfig values.
//
//	runs: 1000
//	seed: 1337
//	workers: 4
//	strategies: [random, minimax, handicap, bayes]
//	handicap:
//	  max_depth: 1
//	  samples: 2
func LoadConfig(filename string) (Config, error) {
	conf := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return conf, errors.WithStack(err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "unable to parse %v", filename)
	}
	if !conf.IsValid() {
		return conf, errors.Errorf("invalid config in %v: %+v", filename, conf)
	}
	return conf, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(s))
}
