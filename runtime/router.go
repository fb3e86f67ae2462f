package runtime

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/iov-one/swap"
)

// Router dispatches instructions to the program registered for their
// program id.
type Router struct {
	routes map[swap.Address]swap.Program
}

var _ swap.Registry = (*Router)(nil)

// NewRouter returns a router without any program.
func NewRouter() *Router {
	return &Router{
		routes: make(map[swap.Address]swap.Program),
	}
}

// Register adds a program. Registering the same id twice panics.
func (r *Router) Register(programID swap.Address, p swap.Program) {
	if _, ok := r.routes[programID]; ok {
		panic(fmt.Sprintf("re-registering program %s", programID))
	}
	r.routes[programID] = p
}

// Route returns the program for given id or nil.
func (r *Router) Route(programID swap.Address) swap.Program {
	return r.routes[programID]
}

// ProgramIDs returns the ids of all registered programs in byte order.
func (r *Router) ProgramIDs() []swap.Address {
	ids := make([]swap.Address, 0, len(r.routes))
	for id := range r.routes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
