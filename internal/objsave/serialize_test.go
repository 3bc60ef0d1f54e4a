package objsave

import (
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/mudsave/internal/game"
)

func TestFlattenGear_ContainerInWieldSlot(t *testing.T) {
	protos := testProtos()
	ai := game.NewActorInstance()
	quiver := nest(spawn(protos, "quiver"), spawn(protos, "gem"))
	_ = ai.Equipment.Equip(game.WearWield, quiver)

	recs := FlattenGear(&ai)

	testutil.AssertEqual(t, "record count", len(recs), 2)
	testutil.AssertEqual(t, "first proto", recs[0].Prototype, "gem")
	testutil.AssertEqual(t, "first location", recs[0].Location, -1)
	testutil.AssertEqual(t, "second proto", recs[1].Prototype, "quiver")
	testutil.AssertEqual(t, "second location", recs[1].Location, EquipLocation(game.WearWield))
}

func TestFlattenGear_ContentsPrecedeContainer(t *testing.T) {
	protos := testProtos()
	ai := sampleGear(protos)

	recs := FlattenGear(&ai)

	var got []string
	var locs []int
	for _, r := range recs {
		got = append(got, r.Prototype)
		locs = append(locs, r.Location)
	}
	testutil.AssertEqual(t, "order", len(got), 8)
	exp := []string{"torch", "helm", "sword", "gem", "pouch", "coin", "chest", "ring"}
	expLocs := []int{1, 7, 17, -2, -1, -1, 0, 0}
	for i := range exp {
		testutil.AssertEqual(t, "proto", got[i], exp[i])
		testutil.AssertEqual(t, "location", locs[i], expLocs[i])
	}
}

func TestFlatten_WeightBookkeeping(t *testing.T) {
	bag := &game.ObjectInstance{Type: game.ObjectTypeContainer, Weight: 5}
	inner := &game.ObjectInstance{Type: game.ObjectTypeContainer, Weight: 2}
	nest(bag, &game.ObjectInstance{Weight: 1}, inner)
	nest(inner, &game.ObjectInstance{Weight: 3}, &game.ObjectInstance{Weight: 4})

	testutil.AssertEqual(t, "live before", bag.Weight, 15)

	recs := FlattenList([]*game.ObjectInstance{bag}, 0)

	weights := map[int]int{}
	for _, r := range recs {
		weights[r.Location] += r.Weight
	}
	testutil.AssertEqual(t, "depth 2 weights", weights[-2], 7)
	testutil.AssertEqual(t, "depth 1 weights", weights[-1], 3)
	testutil.AssertEqual(t, "top level weight", weights[0], 5)

	testutil.AssertEqual(t, "bag live after", bag.Weight, 15)
	testutil.AssertEqual(t, "inner live after", inner.Weight, 9)
}

func TestFlattenList_NestedScopeLeavesOuterWeight(t *testing.T) {
	outer := &game.ObjectInstance{Type: game.ObjectTypeContainer, Weight: 10}
	bag := &game.ObjectInstance{Type: game.ObjectTypeContainer, Weight: 5}
	nest(outer, bag)
	nest(bag, &game.ObjectInstance{Weight: 2})

	recs := FlattenList(outer.Contents, 0)

	testutil.AssertEqual(t, "records", len(recs), 2)
	testutil.AssertEqual(t, "bag weight", recs[1].Weight, 5)
	testutil.AssertEqual(t, "outer untouched", outer.Weight, 17)
	testutil.AssertEqual(t, "bag restored", bag.Weight, 7)
}

func TestFlattenGear_Empty(t *testing.T) {
	ai := game.NewActorInstance()
	testutil.AssertEqual(t, "records", len(FlattenGear(&ai)), 0)
}
