package game

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

func TestActor_Forbids(t *testing.T) {
	tests := map[string]struct {
		actor Actor
		flags []int
		exp   bool
	}{
		"no restrictions": {
			actor: Actor{Class: ClassWarrior, Race: RaceHuman},
			exp:   false,
		},
		"anti class": {
			actor: Actor{Class: ClassWarrior, Race: RaceHuman},
			flags: []int{ExtraFlagAntiWarrior},
			exp:   true,
		},
		"other class": {
			actor: Actor{Class: ClassCleric, Race: RaceHuman},
			flags: []int{ExtraFlagAntiWarrior},
			exp:   false,
		},
		"anti race": {
			actor: Actor{Class: ClassThief, Race: RaceDwarf},
			flags: []int{ExtraFlagAntiDwarf},
			exp:   true,
		},
		"classless mobile": {
			actor: Actor{},
			flags: []int{ExtraFlagAntiMagicUser, ExtraFlagAntiElf},
			exp:   false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			obj := &ObjectInstance{}
			for _, f := range tt.flags {
				obj.ExtraFlags.Set(f)
			}
			testutil.AssertEqual(t, "forbids", tt.actor.Forbids(obj), tt.exp)
		})
	}
}

func TestEquipment_Equip(t *testing.T) {
	eq := NewEquipment()
	first := &ObjectInstance{InstanceId: "a"}
	second := &ObjectInstance{InstanceId: "b"}

	if err := eq.Equip(WearWield, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "occupied", eq.Equip(WearWield, second), ErrSlotOccupied, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "invalid", eq.Equip(NumWearSlots, second), ErrInvalidSlot, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "is free", eq.IsFree(WearWield), false)
	testutil.AssertEqual(t, "unequip", eq.Unequip(WearWield), first)
	testutil.AssertEqual(t, "free again", eq.IsFree(WearWield), true)
}

func TestActorInstance_CarriedWeight(t *testing.T) {
	ai := NewActorInstance()
	bag := &ObjectInstance{Type: ObjectTypeContainer, Weight: 5}
	bag.AddContent(&ObjectInstance{Weight: 4})
	ai.Inventory.AddObj(bag)
	_ = ai.Equipment.Equip(WearBody, &ObjectInstance{Weight: 10})

	testutil.AssertEqual(t, "carried", ai.CarriedWeight(), 19)
}
