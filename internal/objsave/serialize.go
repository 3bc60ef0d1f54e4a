package objsave

import (
	"github.com/pixil98/mudsave/internal/game"
)

// FlattenGear returns the records for everything an actor wears and
// carries: each wear slot in slot order, then the inventory.
func FlattenGear(ai *game.ActorInstance) []Record {
	f := &flattener{}
	if ai.Equipment != nil {
		for slot, oi := range ai.Equipment.Slots {
			if oi != nil {
				f.scope([]*game.ObjectInstance{oi}, EquipLocation(game.WearSlot(slot)))
			}
		}
	}
	if ai.Inventory != nil {
		f.scope(ai.Inventory.Objs, 0)
	}
	return f.out
}

// FlattenList returns the records for a list of objects at location base
// (normally 0 for an inventory or a room floor).
func FlattenList(objs []*game.ObjectInstance, base int) []Record {
	f := &flattener{}
	f.scope(objs, base)
	return f.out
}

type flattener struct {
	out []Record
}

// scope writes each object in list order, each preceded by its contents,
// then puts the live weights back the way they were.
func (f *flattener) scope(objs []*game.ObjectInstance, base int) {
	for _, oi := range objs {
		if oi == nil {
			continue
		}
		f.item(oi, base, oi.Container())
		restoreWeights(oi)
	}
}

// item emits the contents of oi one level deeper, then oi itself. By the
// time oi is emitted its contents have already taken their weight back out
// of it, so the recorded weight is the object's own.
func (f *flattener) item(oi *game.ObjectInstance, base int, stop *game.ObjectInstance) {
	for _, c := range oi.Contents {
		f.item(c, contentsLocation(base), stop)
	}

	for anc := oi.Container(); anc != nil && anc != stop; anc = anc.Container() {
		anc.Weight -= oi.Weight
	}
	f.out = append(f.out, Snapshot(oi, base))
}

// restoreWeights undoes the subtraction done by item, deepest first, adding
// each object's weight back into its direct container only.
func restoreWeights(oi *game.ObjectInstance) {
	for _, c := range oi.Contents {
		restoreWeights(c)
		oi.Weight += c.Weight
	}
}
