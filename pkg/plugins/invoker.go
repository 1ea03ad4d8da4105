package plugins

import (
	"fmt"
	"strings"

	"github.com/gorilla/mux"
)

// RegistrationFunc is the signature a plugin's registration entry point
// must satisfy. The router is the shared dispatch surface the plugin may
// add route handlers to.
type RegistrationFunc = func(*mux.Router)

// registrationSymbol derives the conventional entry point name for a
// plugin: the name is lower-cased, every hyphen becomes an underscore,
// and the result is wrapped as register_<name>_routes.
func registrationSymbol(name string) string {
	return "register_" + strings.ReplaceAll(strings.ToLower(name), "-", "_") + "_routes"
}

// invokeRegistrar looks up the plugin's registration entry point on the
// module and calls it with the shared router. A missing entry point is
// not an error, only an EntryPointMissing outcome. A symbol with the
// wrong signature is an error. A panic inside the registration function
// propagates to the caller, which is responsible for containment.
func invokeRegistrar(module Module, name string, router *mux.Router) (Outcome, error) {
	symbol := registrationSymbol(name)

	sym, err := module.Lookup(symbol)
	if err != nil {
		return EntryPointMissing, nil
	}

	register, ok := sym.(RegistrationFunc)
	if !ok {
		// Shared objects expose package-level variables as pointers to
		// the variable holding them.
		if fn, isPtr := sym.(*RegistrationFunc); isPtr {
			register = *fn
		} else {
			return EntryPointMissing, fmt.Errorf("symbol %s has unexpected type %T", symbol, sym)
		}
	}

	register(router)
	return Registered, nil
}
