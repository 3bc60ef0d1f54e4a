// Package objsave flattens object trees into ordered record streams and
// rebuilds trees from them.
//
// A record's Location says where the object belongs:
//
//	> 0  equipped in wear slot Location-1
//	  0  carried at the top level (or lying on the floor)
//	< 0  nested inside a container, at depth -Location
//
// Every stream produced here lists the records for an object's contents
// immediately before the object itself. The Reconstructor depends on that
// ordering and nothing else.
package objsave

import (
	"github.com/pixil98/mudsave/internal/game"
)

// MaxBagRows is the deepest nesting level restored on load.
const MaxBagRows = 5

// Prototypes looks up object definitions. storage.Storer[*game.Object]
// satisfies it.
type Prototypes interface {
	Get(string) *game.Object
}

// Record is the persisted form of one object. String fields are nil when
// the object uses its prototype's text.
type Record struct {
	Prototype string
	Location  int

	Type       game.ObjectType
	Values     [game.NumValues]int
	ExtraFlags game.FlagSet
	WearFlags  game.FlagSet

	// Weight excludes the weight of any contents.
	Weight int
	Cost   int
	Timer  int

	Name         *string
	ShortDesc    *string
	LongDesc     *string
	DetailedDesc *string
}

// NewRecord returns a record seeded from the prototype's values, to be
// overwritten by whatever fields a reader finds. Missing fields therefore
// fall back to the prototype.
func NewRecord(protoRef string, location int, protos Prototypes) Record {
	rec := Record{Prototype: protoRef, Location: location}
	if protoRef == "" || protos == nil {
		return rec
	}
	if def := protos.Get(protoRef); def != nil {
		rec.Type = def.Type()
		rec.Values = def.Values
		rec.ExtraFlags = def.ExtraFlags
		rec.WearFlags = def.WearFlags
		rec.Weight = def.Weight
		rec.Cost = def.Cost
		rec.Timer = def.Timer
	}
	return rec
}

// EquipLocation returns the location for an object worn in slot.
func EquipLocation(slot game.WearSlot) int {
	return int(slot) + 1
}

// NestedLocation returns the location for an object at the given depth.
func NestedLocation(depth int) int {
	return -depth
}

// contentsLocation returns the location used for the contents of an object
// saved at base.
func contentsLocation(base int) int {
	return min(0, base) - 1
}

// IsEquipped reports whether the record belongs in a wear slot.
func (r Record) IsEquipped() bool {
	return r.Location > 0
}

// Slot returns the wear slot for an equipped record.
func (r Record) Slot() game.WearSlot {
	return game.WearSlot(r.Location - 1)
}

// Depth returns the nesting depth; zero for equipped and top-level records.
func (r Record) Depth() int {
	if r.Location >= 0 {
		return 0
	}
	return -r.Location
}

// Stats counts what happened to the records of one load.
type Stats struct {
	// Restored is the number of records turned back into objects.
	Restored int
	// Placeholders were created for records whose prototype is gone.
	Placeholders int
	// Spilled objects had their intended container go missing and were
	// moved to the top level.
	Spilled int
	// Redirected objects could not be equipped and were carried instead.
	Redirected int
	// Clamped records were nested deeper than MaxBagRows.
	Clamped int
}

// Fallbacks returns how many objects ended up somewhere other than where
// they were saved.
func (s Stats) Fallbacks() int {
	return s.Spilled + s.Redirected
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Restored += o.Restored
	s.Placeholders += o.Placeholders
	s.Spilled += o.Spilled
	s.Redirected += o.Redirected
	s.Clamped += o.Clamped
}
