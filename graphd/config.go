package graphd

import (
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the query-instance driver's ambient configuration, mirroring
// the teacher's sqle.Config: nothing here reaches into the out-of-scope
// session/parser/transport layers. DefaultSpace, RequestTimeout and
// ReadOnly are read by graphd.Engine; MaxSequentialStmts is not read
// anywhere, since the validator caps a `;`-chain with its own fixed limit
// of 256 statements.
type Config struct {
	DefaultSpace       string        `yaml:"default_space"`
	MaxSequentialStmts int           `yaml:"max_sequential_statements"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ReadOnly           bool          `yaml:"read_only"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxSequentialStmts: 256,
		RequestTimeout:     30 * time.Second,
	}
}

// LoadConfig decodes a yaml document into a Config seeded with
// DefaultConfig's values, so a partial document only overrides what it
// names.
func LoadConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
