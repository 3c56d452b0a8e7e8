// Package config loads the sanitizer-strategy configuration file and
// resolves it, together with a Registry, into a binding.Binding the
// dispatcher can drive.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andersinno/database-sanitizer/binding"
	"github.com/andersinno/database-sanitizer/session"
)

// Error reports a problem with a configuration file or an unresolved
// sanitizer name. It is never raised by the core dump/binding/session
// packages, only by this external collaborator (§7).
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// mysqldumpDefaultParameters mirrors the original's
// MYSQLDUMP_DEFAULT_PARAMETERS.
var mysqldumpDefaultParameters = []string{"--single-transaction"}

// ExtraParameters carries the additional CLI arguments to append to the
// dump utility invocation, keyed by tool.
type ExtraParameters struct {
	Mysqldump []string
	PgDump    []string
}

// Config is the parsed, but not yet resolved, representation of the
// configuration document described in §6's Configuration contract.
type Config struct {
	Strategy map[string]TableStrategy
	Addons   []string
	Extra    ExtraParameters
}

// TableStrategy is either a whole-table skip_rows marker, or a
// column-to-sanitizer-name map for that table.
type TableStrategy struct {
	SkipRows bool
	Columns  map[string]*string // nil value means "leave alone"
}

// rawDocument mirrors the on-disk YAML shape before sanitizer names are
// resolved against a Registry.
type rawDocument struct {
	Strategy map[string]yaml.Node `yaml:"strategy"`
	Config   struct {
		Addons          []string `yaml:"addons"`
		ExtraParameters struct {
			Mysqldump []string `yaml:"mysqldump"`
			PgDump    []string `yaml:"pg_dump"`
		} `yaml:"extra_parameters"`
	} `yaml:"config"`
}

// Load reads and parses the configuration file at path. An empty path
// returns a zero Config, matching the original's "no config means no
// sanitization" behavior.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{Strategy: map[string]TableStrategy{}}, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Reason: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return Parse(buf)
}

// Parse decodes raw YAML bytes into a Config.
func Parse(buf []byte) (*Config, error) {
	var doc rawDocument
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &Error{Reason: fmt.Sprintf("parsing configuration: %v", err)}
	}

	strategy := map[string]TableStrategy{}
	for table, node := range doc.Strategy {
		switch node.Kind {
		case yaml.ScalarNode:
			var s string
			if err := node.Decode(&s); err != nil {
				return nil, &Error{Reason: fmt.Sprintf("table %q: %v", table, err)}
			}
			if s != "skip_rows" {
				return nil, &Error{Reason: fmt.Sprintf("table %q: scalar strategy must be \"skip_rows\", got %q", table, s)}
			}
			strategy[table] = TableStrategy{SkipRows: true}
		case yaml.MappingNode:
			var columns map[string]*string
			if err := node.Decode(&columns); err != nil {
				return nil, &Error{Reason: fmt.Sprintf("table %q: %v", table, err)}
			}
			strategy[table] = TableStrategy{Columns: columns}
		default:
			return nil, &Error{Reason: fmt.Sprintf("table %q: strategy must be \"skip_rows\" or a column map", table)}
		}
	}

	extra := ExtraParameters{
		Mysqldump: append(append([]string{}, mysqldumpDefaultParameters...), doc.Config.ExtraParameters.Mysqldump...),
		PgDump:    append([]string{}, doc.Config.ExtraParameters.PgDump...),
	}

	return &Config{
		Strategy: strategy,
		Addons:   doc.Config.Addons,
		Extra:    extra,
	}, nil
}

// Resolve builds a binding.Binding from c by resolving every bound
// sanitizer name through r, binding resolved sanitizers to secret.
func (c *Config) Resolve(r *Registry, secret *session.Secret) (*binding.Binding, error) {
	b := binding.New()

	for table, strat := range c.Strategy {
		if strat.SkipRows {
			b.SetSkipRows(table)
			continue
		}
		for column, name := range strat.Columns {
			if name == nil {
				continue // explicit "leave alone"
			}
			factory, err := r.Resolve(*name)
			if err != nil {
				return nil, &Error{Reason: fmt.Sprintf("table %q column %q: %v", table, column, err)}
			}
			b.Bind(table, column, factory(secret))
		}
	}

	return b, nil
}
