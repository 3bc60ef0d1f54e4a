package game

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/mudsave/internal/storage"
)

// Room represents a location within a zone.
type Room struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ZoneId      string `json:"zone_id"`

	// Persistent rooms (player houses, storerooms) have their contents
	// snapshotted to disk and restored on boot.
	Persistent bool `json:"persistent,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if r.ZoneId == "" {
		el.Add(fmt.Errorf("zone_id is required"))
	}

	return el.Err()
}

// RoomInstance holds the mutable contents of a room.
type RoomInstance struct {
	Room storage.SmartIdentifier[*Room]

	mu      sync.RWMutex
	mobiles []*MobileInstance
	objects *Inventory
}

func NewRoomInstance(room storage.SmartIdentifier[*Room]) *RoomInstance {
	return &RoomInstance{
		Room:    room,
		objects: NewInventory(),
	}
}

// ZoneId returns the id of the zone the room belongs to.
func (ri *RoomInstance) ZoneId() string {
	if def := ri.Room.Get(); def != nil {
		return def.ZoneId
	}
	return ""
}

// AddMob places a mobile in the room.
func (ri *RoomInstance) AddMob(mi *MobileInstance) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.mobiles = append(ri.mobiles, mi)
}

// RemoveMob removes a mobile by instance id.
func (ri *RoomInstance) RemoveMob(instanceId string) *MobileInstance {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	i := slices.IndexFunc(ri.mobiles, func(mi *MobileInstance) bool {
		return mi.InstanceId == instanceId
	})
	if i < 0 {
		return nil
	}
	mi := ri.mobiles[i]
	ri.mobiles = slices.Delete(ri.mobiles, i, i+1)
	return mi
}

// Mobiles returns a copy of the mobile list.
func (ri *RoomInstance) Mobiles() []*MobileInstance {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return slices.Clone(ri.mobiles)
}

// AddObj drops an object on the floor.
func (ri *RoomInstance) AddObj(oi *ObjectInstance) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.objects.AddObj(oi)
}

// RemoveObj picks an object up off the floor.
func (ri *RoomInstance) RemoveObj(instanceId string) *ObjectInstance {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	return ri.objects.RemoveObj(instanceId)
}

// Objects returns a copy of the floor object list.
func (ri *RoomInstance) Objects() []*ObjectInstance {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return slices.Clone(ri.objects.Objs)
}

// Clear removes every mobile and object from the room.
func (ri *RoomInstance) Clear() {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.mobiles = nil
	ri.objects = NewInventory()
}
