package core

import (
	"fmt"
	"math"
	"strconv"
)

// Cid identifies a node in an [Arena]. The generation distinguishes a reused
// slot from the node that previously held it when reclamation is enabled.
type Cid struct {
	index uint32
	gen   uint32
}

// NoCid is the sentinel for "no node", used as the parent of the root and as
// the absence of focus.
var NoCid = Cid{index: math.MaxUint32, gen: math.MaxUint32}

// Index returns the slot index of the node.
func (c Cid) Index() int { return int(c.index) }

// Valid reports whether c is not the NoCid sentinel.
func (c Cid) Valid() bool { return c != NoCid }

func (c Cid) String() string {
	if c == NoCid {
		return "Cid(none)"
	}
	if c.gen == 0 {
		return "Cid(" + strconv.FormatUint(uint64(c.index), 10) + ")"
	}
	return fmt.Sprintf("Cid(%d#%d)", c.index, c.gen)
}

// Iid is the caller-supplied identifier of a child. It must be unique among
// the children one parent declares in one frame. It is used for lookup only,
// never for ordering.
type Iid struct {
	Name  string
	Index int
	keyed bool
}

// ID returns an identifier for a single child named name.
func ID(name string) Iid {
	return Iid{Name: name}
}

// IDIndex returns an identifier for one of several children sharing a name,
// such as rows generated in a loop.
func IDIndex(name string, index int) Iid {
	return Iid{Name: name, Index: index, keyed: true}
}

func (i Iid) String() string {
	if i.keyed {
		return i.Name + "[" + strconv.Itoa(i.Index) + "]"
	}
	return i.Name
}

// kindID is the runtime tag of a component kind. Zero is the void tag of a
// slot that has been allocated but not yet initialised.
type kindID uint32

const voidKind kindID = 0
