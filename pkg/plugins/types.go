package plugins

// Module is an opaque handle over a plugin's loaded code unit. It exposes
// the unit's declared symbols by name.
type Module interface {
	// Lookup resolves a declared symbol by name. It returns an error when
	// no symbol with that name exists.
	Lookup(symbol string) (any, error)
}

// Record describes one successfully loaded plugin. Records are created
// only when the full load sequence completes; a plugin that fails at any
// step has no record.
type Record struct {
	Name     string
	Manifest Manifest
	Module   Module
	Path     string
}

// Outcome is the result of a route registration attempt.
type Outcome int

const (
	// Registered means the plugin's registration entry point was found
	// and invoked.
	Registered Outcome = iota
	// EntryPointMissing means the module exposes no registration entry
	// point. This is informational, not a failure: the plugin simply
	// contributes no routes.
	EntryPointMissing
)

func (o Outcome) String() string {
	switch o {
	case Registered:
		return "registered"
	case EntryPointMissing:
		return "entry point missing"
	default:
		return "unknown"
	}
}
