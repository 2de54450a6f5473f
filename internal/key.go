package internal

// Key is a generation-tagged, stable reference into an Arena: every
// reference between nodes and links is an index/key, never a raw
// pointer or an ownership relation.
//
// Two keys compare equal only when they name the same slot at the same
// generation. Arena.Remove bumps the slot's generation before the index
// is ever handed back out by a later Insert, so a key minted before a
// Remove stays permanently stale — it will never silently start
// resolving to whatever unrelated node or link later occupies that slot.
type Key struct {
	index int
	gen   uint32
}

// NoKey means "no reference". Not Go's zero value for Key (which would
// name slot 0) — every Key field in a fresh Node or Link must be set to
// NoKey explicitly.
var NoKey = Key{index: -1}

// IsNil reports whether k is the "no reference" key.
func (k Key) IsNil() bool { return k.index < 0 }
