package spindle

import (
	"cmp"
	"slices"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/google/uuid"
)

// Info describes a running thread.
type Info struct {
	ID       uuid.UUID
	Name     string
	NativeID int
	Started  time.Time
}

type tracked interface {
	info() Info
}

// Registry keeps track of the threads that are currently running. A thread is
// added when it is spawned and removed by its own entry point once the routine
// has finished.
type Registry struct {
	threads *haxmap.Map[string, tracked]
}

func NewRegistry() *Registry {
	return &Registry{threads: haxmap.New[string, tracked]()}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func (r *Registry) add(id uuid.UUID, t tracked) {
	r.threads.Set(id.String(), t)
}

func (r *Registry) remove(id uuid.UUID) {
	r.threads.Del(id.String())
}

// Len returns the number of running threads.
func (r *Registry) Len() int {
	return int(r.threads.Len())
}

// Snapshot lists the running threads, oldest first.
func (r *Registry) Snapshot() []Info {
	infos := make([]Info, 0, r.threads.Len())
	r.threads.ForEach(func(_ string, t tracked) bool {
		infos = append(infos, t.info())
		return true
	})
	slices.SortFunc(infos, func(a, b Info) int {
		if c := a.Started.Compare(b.Started); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return infos
}
