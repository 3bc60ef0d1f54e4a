package objsave

import (
	"context"
	"log/slog"

	"github.com/pixil98/mudsave/internal/game"
)

// CanEquip reports whether actor may wear obj in slot.
func CanEquip(actor game.Actor, obj *game.ObjectInstance, slot game.WearSlot) bool {
	if !slot.Valid() {
		return false
	}
	if actor.Forbids(obj) {
		return false
	}

	switch slot {
	case game.WearLight:
		return true
	case game.WearHold:
		if obj.WearFlags.Has(game.WearFlagHold) {
			return true
		}
		// Old saves put wielded weapons in the hold slot.
		return actor.Class.Melee() &&
			obj.Type == game.ObjectTypeWeapon &&
			obj.WearFlags.Has(game.WearFlagWield)
	default:
		flag, ok := slot.WearFlag()
		return ok && obj.WearFlags.Has(flag)
	}
}

// GearSink places rebuilt objects on an actor, falling back to the
// inventory for anything that cannot be worn where it was saved.
type GearSink struct {
	Actor  game.Actor
	Gear   *game.ActorInstance
	Logger *slog.Logger
}

func (s *GearSink) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Equip satisfies Sink.
func (s *GearSink) Equip(ctx context.Context, obj *game.ObjectInstance, slot game.WearSlot) bool {
	if !CanEquip(s.Actor, obj, slot) {
		s.logger().InfoContext(ctx, "object cannot be worn in saved slot, carrying instead", "proto", obj.Object.Id(), "slot", slot.String())
		s.Stow(obj)
		return false
	}

	if err := s.Gear.Equipment.Equip(slot, obj); err != nil {
		s.logger().ErrorContext(ctx, "duplicate equipment in save, carrying instead", "proto", obj.Object.Id(), "slot", slot.String(), "error", err)
		s.Stow(obj)
		return false
	}
	return true
}

// Stow satisfies Sink.
func (s *GearSink) Stow(obj *game.ObjectInstance) {
	s.Gear.Inventory.AddObj(obj)
}

// RoomSink places rebuilt objects on a room floor. Rooms have no wear
// slots, so equipped records land on the floor too.
type RoomSink struct {
	Room *game.RoomInstance
}

// Equip satisfies Sink.
func (s *RoomSink) Equip(_ context.Context, obj *game.ObjectInstance, _ game.WearSlot) bool {
	s.Stow(obj)
	return false
}

// Stow satisfies Sink.
func (s *RoomSink) Stow(obj *game.ObjectInstance) {
	s.Room.AddObj(obj)
}
