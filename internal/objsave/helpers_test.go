package objsave

import (
	"fmt"
	"strings"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/storage"
)

type protoMap map[string]*game.Object

func (p protoMap) Get(id string) *game.Object {
	return p[id]
}

func def(typ string, weight int, wear ...int) *game.Object {
	o := &game.Object{
		Aliases:   []string{typ},
		ShortDesc: "a " + typ,
		LongDesc:  "A " + typ + " is here.",
		TypeStr:   typ,
		Weight:    weight,
		Cost:      weight * 10,
	}
	o.WearFlags.Set(game.WearFlagTake)
	for _, w := range wear {
		o.WearFlags.Set(w)
	}
	return o
}

func testProtos() protoMap {
	return protoMap{
		"torch":  def("light", 1),
		"helm":   def("armor", 4, game.WearFlagHead),
		"sword":  def("weapon", 6, game.WearFlagWield),
		"ring":   def("worn", 0, game.WearFlagFinger),
		"chest":  def("container", 10),
		"pouch":  def("container", 1),
		"quiver": def("container", 2, game.WearFlagWield),
		"coin":   def("treasure", 1),
		"gem":    def("treasure", 1),
	}
}

func spawn(protos protoMap, id string) *game.ObjectInstance {
	return game.NewObjectInstance(storage.NewResolvedSmartIdentifier(id, protos[id]))
}

func nest(parent *game.ObjectInstance, children ...*game.ObjectInstance) *game.ObjectInstance {
	for _, c := range children {
		parent.AddContent(c)
	}
	return parent
}

// describe renders an object tree as id[child,child].
func describe(oi *game.ObjectInstance) string {
	if len(oi.Contents) == 0 {
		return oi.Object.Id()
	}
	parts := make([]string, 0, len(oi.Contents))
	for _, c := range oi.Contents {
		parts = append(parts, describe(c))
	}
	return fmt.Sprintf("%s[%s]", oi.Object.Id(), strings.Join(parts, ","))
}

func describeGear(ai *game.ActorInstance) string {
	var sb strings.Builder
	for slot, oi := range ai.Equipment.Slots {
		if oi != nil {
			fmt.Fprintf(&sb, "%s=%s ", game.WearSlot(slot), describe(oi))
		}
	}
	sb.WriteString("inv:")
	for _, oi := range ai.Inventory.Objs {
		sb.WriteString(" " + describe(oi))
	}
	return sb.String()
}

// depthOf returns how deep target sits inside roots, or -1.
func depthOf(roots []*game.ObjectInstance, target *game.ObjectInstance) int {
	for _, r := range roots {
		if r == target {
			return 0
		}
		if d := depthOf(r.Contents, target); d >= 0 {
			return d + 1
		}
	}
	return -1
}

// sampleGear builds three equipped items, two top-level inventory items
// and two nested containers holding leaves.
func sampleGear(protos protoMap) game.ActorInstance {
	ai := game.NewActorInstance()
	_ = ai.Equipment.Equip(game.WearLight, spawn(protos, "torch"))
	_ = ai.Equipment.Equip(game.WearHead, spawn(protos, "helm"))
	_ = ai.Equipment.Equip(game.WearWield, spawn(protos, "sword"))

	pouch := nest(spawn(protos, "pouch"), spawn(protos, "gem"))
	chest := nest(spawn(protos, "chest"), pouch, spawn(protos, "coin"))
	ai.Inventory.AddObj(chest)
	ai.Inventory.AddObj(spawn(protos, "ring"))
	return ai
}

var warrior = game.Actor{Class: game.ClassWarrior, Race: game.RaceHuman}
