package chain

import (
	"fmt"
	"regexp"

	"github.com/iov-one/covenant"
)

var isCodeName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`).MatchString

// Registry maps code names to contract implementations. A deployed
// contract only remembers the name of its code.
type Registry struct {
	codes map[string]covenant.Contract
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codes: make(map[string]covenant.Contract)}
}

// Register adds a contract implementation under given name.
// Panics on an invalid or duplicated name, as this is a setup error.
func (r *Registry) Register(name string, code covenant.Contract) {
	if !isCodeName(name) {
		panic(fmt.Sprintf("invalid code name: %q", name))
	}
	if _, ok := r.codes[name]; ok {
		panic(fmt.Sprintf("code %q already registered", name))
	}
	r.codes[name] = code
}

// Code returns the implementation registered under name or nil.
func (r *Registry) Code(name string) covenant.Contract {
	return r.codes[name]
}
