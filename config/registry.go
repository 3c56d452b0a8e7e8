package config

import (
	"fmt"

	"github.com/andersinno/database-sanitizer/dump"
	"github.com/andersinno/database-sanitizer/sanitizers"
	"github.com/andersinno/database-sanitizer/session"
)

// Factory builds a sanitizer bound to a run's session secret. Sanitizers
// that don't need the secret (Empty, ZFill, ...) are wrapped to ignore it.
type Factory func(*session.Secret) dump.Sanitizer

func constFactory(s dump.Sanitizer) Factory {
	return func(*session.Secret) dump.Sanitizer { return s }
}

// builtins is the third-phase namespace: the sanitizer library shipped
// with this repository, addressed the way database_sanitizer.sanitizers
// addressed its own built-ins.
var builtins = map[string]Factory{
	"string.empty":                 constFactory(sanitizers.Empty),
	"string.zfill":                 constFactory(sanitizers.ZFill),
	"email.example":                constFactory(sanitizers.ExampleEmail),
	"times.random_past_timestamp":  constFactory(sanitizers.RandomPastTimestamp),
	"derived.uuid4":                sanitizers.UUID4,
	"user.email":                   sanitizers.Email,
	"user.username":                sanitizers.Username,
	"user.full_name_en_gb":         sanitizers.FullNameEnGB,
	"user.given_name_en_gb":        sanitizers.GivenNameEnGB,
	"user.surname_en_gb":           sanitizers.SurnameEnGB,
}

// Registry implements the three-phase sanitizer name resolution from §4.4:
// a user top-level namespace, then addon namespaces in declared order,
// then the builtin namespace. Go has no equivalent of Python's dynamic
// module import, so the "user" and "addon" namespaces are plain maps an
// operator populates by calling RegisterUser/RegisterAddon before loading
// a configuration file.
type Registry struct {
	user   map[string]Factory
	addons []namedAddon
}

type namedAddon struct {
	name      string
	factories map[string]Factory
}

// NewRegistry returns a Registry with no user or addon namespaces
// registered; built-ins are always available.
func NewRegistry() *Registry {
	return &Registry{user: map[string]Factory{}}
}

// RegisterUser adds name to the user namespace, searched first.
func (r *Registry) RegisterUser(name string, factory Factory) {
	r.user[name] = factory
}

// RegisterAddon appends a named namespace searched after the user
// namespace and before built-ins, in the order addons are registered.
// Config.Addons is not consulted here: the search order is registration
// order only.
func (r *Registry) RegisterAddon(name string, factories map[string]Factory) {
	r.addons = append(r.addons, namedAddon{name: name, factories: factories})
}

// Resolve finds the sanitizer factory bound to name, searching the user
// namespace, then each addon namespace in order, then the built-in
// namespace. An unresolved name is a configuration error.
func (r *Registry) Resolve(name string) (Factory, error) {
	if f, ok := r.user[name]; ok {
		return f, nil
	}
	for _, addon := range r.addons {
		if f, ok := addon.factories[name]; ok {
			return f, nil
		}
	}
	if f, ok := builtins[name]; ok {
		return f, nil
	}
	return nil, &Error{Reason: fmt.Sprintf("no sanitizer named %q found in user, addon, or builtin namespaces", name)}
}
