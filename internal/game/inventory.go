package game

import "slices"

// Inventory holds an ordered list of object instances carried by an actor
// or lying in a room.
type Inventory struct {
	Objs []*ObjectInstance
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// AddObj appends an object instance to the inventory.
func (inv *Inventory) AddObj(obj *ObjectInstance) {
	inv.Objs = append(inv.Objs, obj)
}

// RemoveObj removes an object instance by ID.
// Returns the removed instance, or nil if not found.
func (inv *Inventory) RemoveObj(instanceId string) *ObjectInstance {
	i := slices.IndexFunc(inv.Objs, func(oi *ObjectInstance) bool {
		return oi.InstanceId == instanceId
	})
	if i < 0 {
		return nil
	}
	obj := inv.Objs[i]
	inv.Objs = slices.Delete(inv.Objs, i, i+1)
	return obj
}

// Len returns the number of top-level objects.
func (inv *Inventory) Len() int {
	return len(inv.Objs)
}

// Weight returns the combined live weight of all objects.
func (inv *Inventory) Weight() int {
	w := 0
	for _, oi := range inv.Objs {
		w += oi.Weight
	}
	return w
}

// Equipment holds items equipped by a character or mobile, one per slot.
type Equipment struct {
	Slots [NumWearSlots]*ObjectInstance
}

// NewEquipment creates an empty equipment set.
func NewEquipment() *Equipment {
	return &Equipment{}
}

// IsFree reports whether slot is valid and empty.
func (eq *Equipment) IsFree(slot WearSlot) bool {
	return slot.Valid() && eq.Slots[slot] == nil
}

// Equip places an object instance in the given slot.
func (eq *Equipment) Equip(slot WearSlot, obj *ObjectInstance) error {
	if !slot.Valid() {
		return ErrInvalidSlot
	}
	if eq.Slots[slot] != nil {
		return ErrSlotOccupied
	}
	eq.Slots[slot] = obj
	return nil
}

// GetSlot returns the object instance in the given slot, or nil if empty.
func (eq *Equipment) GetSlot(slot WearSlot) *ObjectInstance {
	if !slot.Valid() {
		return nil
	}
	return eq.Slots[slot]
}

// Unequip empties slot and returns what was there.
func (eq *Equipment) Unequip(slot WearSlot) *ObjectInstance {
	if !slot.Valid() {
		return nil
	}
	obj := eq.Slots[slot]
	eq.Slots[slot] = nil
	return obj
}

// Weight returns the combined live weight of all equipped objects.
func (eq *Equipment) Weight() int {
	w := 0
	for _, oi := range eq.Slots {
		if oi != nil {
			w += oi.Weight
		}
	}
	return w
}
