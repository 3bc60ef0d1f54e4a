package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Class is an actor's profession.
type Class string

const (
	ClassMagicUser Class = "magic-user"
	ClassCleric    Class = "cleric"
	ClassThief     Class = "thief"
	ClassWarrior   Class = "warrior"
)

// antiFlag returns the extra flag that forbids this class from using an object.
func (c Class) antiFlag() (int, bool) {
	switch c {
	case ClassMagicUser:
		return ExtraFlagAntiMagicUser, true
	case ClassCleric:
		return ExtraFlagAntiCleric, true
	case ClassThief:
		return ExtraFlagAntiThief, true
	case ClassWarrior:
		return ExtraFlagAntiWarrior, true
	default:
		return 0, false
	}
}

// Melee reports whether the class fights with weapons in hand.
func (c Class) Melee() bool {
	return c == ClassWarrior || c == ClassThief
}

// Race is an actor's species.
type Race string

const (
	RaceHuman    Race = "human"
	RaceElf      Race = "elf"
	RaceDwarf    Race = "dwarf"
	RaceHalfling Race = "halfling"
)

func (r Race) antiFlag() (int, bool) {
	switch r {
	case RaceHuman:
		return ExtraFlagAntiHuman, true
	case RaceElf:
		return ExtraFlagAntiElf, true
	case RaceDwarf:
		return ExtraFlagAntiDwarf, true
	case RaceHalfling:
		return ExtraFlagAntiHalfling, true
	default:
		return 0, false
	}
}

// Actor holds properties shared between characters and mobiles.
type Actor struct {
	Class Class `json:"class,omitempty"`
	Race  Race  `json:"race,omitempty"`
	Level int   `json:"level,omitempty"`
}

// Forbids reports whether the actor's class or race may not use obj.
func (a Actor) Forbids(obj *ObjectInstance) bool {
	if bit, ok := a.Class.antiFlag(); ok && obj.ExtraFlags.Has(bit) {
		return true
	}
	if bit, ok := a.Race.antiFlag(); ok && obj.ExtraFlags.Has(bit) {
		return true
	}
	return false
}

func (a Actor) validate() error {
	el := errors.NewErrorList()
	switch a.Class {
	case "", ClassMagicUser, ClassCleric, ClassThief, ClassWarrior:
	default:
		el.Add(fmt.Errorf("unknown class %q", a.Class))
	}
	switch a.Race {
	case "", RaceHuman, RaceElf, RaceDwarf, RaceHalfling:
	default:
		el.Add(fmt.Errorf("unknown race %q", a.Race))
	}
	return el.Err()
}

// ActorInstance holds the runtime possessions of a character or mobile.
type ActorInstance struct {
	Inventory *Inventory `json:"-"`
	Equipment *Equipment `json:"-"`
}

// NewActorInstance returns an instance with empty inventory and equipment.
func NewActorInstance() ActorInstance {
	return ActorInstance{
		Inventory: NewInventory(),
		Equipment: NewEquipment(),
	}
}

// CarriedWeight returns the live weight of everything carried and worn.
func (ai *ActorInstance) CarriedWeight() int {
	return ai.Inventory.Weight() + ai.Equipment.Weight()
}

// Clear drops all possessions.
func (ai *ActorInstance) Clear() {
	ai.Inventory = NewInventory()
	ai.Equipment = NewEquipment()
}
