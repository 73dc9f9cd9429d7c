package register

import "github.com/pkg/errors"

// MinId and MaxId bound the usable register file. Id 0 is reserved by
// the VM (it binds `this`/`arguments` in some assembler configurations);
// the 254-slot ceiling reflects the VM's 255-slot frame.
const (
	MinId = 1
	MaxId = 254
)

// ErrOutOfRegisters is returned by Allocate when every slot in [MinId,MaxId]
// is occupied.
var ErrOutOfRegisters = errors.New("out of registers")

// ErrRegisterConflict is returned by Assign when the requested id is
// already occupied.
var ErrRegisterConflict = errors.New("register conflict")

// Allocator is a per-function linear-scan register file: at most one
// Register may occupy a given id at any time. Each enclosing function
// constructs its own Allocator.
type Allocator struct {
	slots map[int]Register
}

// New returns an empty Allocator.
func New() *Allocator {
	return &Allocator{slots: make(map[int]Register)}
}

// Allocate claims the lowest free id in [MinId,MaxId] and returns the
// Register bound to it.
func (a *Allocator) Allocate(name, debugTag string) (Register, error) {
	for id := MinId; id <= MaxId; id++ {
		if _, occupied := a.slots[id]; !occupied {
			r := Register{Id: id, Name: name, Tag: debugTag}
			a.slots[id] = r
			return r, nil
		}
	}
	return Register{}, errors.Wrapf(ErrOutOfRegisters, "no free register for %q", name)
}

// Assign claims a specific id, failing with ErrRegisterConflict if it is
// already occupied.
func (a *Allocator) Assign(id int, name, debugTag string) (Register, error) {
	if _, occupied := a.slots[id]; occupied {
		return Register{}, errors.Wrapf(ErrRegisterConflict, "register %d already occupied", id)
	}
	r := Register{Id: id, Name: name, Tag: debugTag}
	a.slots[id] = r
	return r, nil
}

// Free releases the slot for r.Id. Freeing an already-free slot is a
// no-op.
func (a *Allocator) Free(r Register) {
	delete(a.slots, r.Id)
}

// Occupied reports whether id currently holds a Register, used by tests
// asserting register uniqueness.
func (a *Allocator) Occupied(id int) bool {
	_, ok := a.slots[id]
	return ok
}

// Len returns the number of currently held slots.
func (a *Allocator) Len() int {
	return len(a.slots)
}
