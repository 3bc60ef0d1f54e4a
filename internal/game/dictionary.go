package game

import (
	"fmt"

	"github.com/pixil98/mudsave/internal/storage"
)

// Dictionary holds all game definition stores. It is passed explicitly to
// anything that needs to look up prototypes.
type Dictionary struct {
	Zones   storage.Storer[*Zone]
	Rooms   storage.Storer[*Room]
	Mobiles storage.Storer[*Mobile]
	Objects storage.Storer[*Object]
}

// Resolve checks cross references between definitions.
func (d *Dictionary) Resolve() error {
	for id, room := range d.Rooms.GetAll() {
		if d.Zones.Get(room.ZoneId) == nil {
			return fmt.Errorf("room %s: zone %q not found", id, room.ZoneId)
		}
	}
	return nil
}

// NewRoomInstances creates an instance for every room definition.
func (d *Dictionary) NewRoomInstances() map[string]*RoomInstance {
	rooms := map[string]*RoomInstance{}
	for id, room := range d.Rooms.GetAll() {
		rooms[id] = NewRoomInstance(storage.NewResolvedSmartIdentifier(id, room))
	}
	return rooms
}
