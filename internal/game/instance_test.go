package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/mudsave/internal/storage"
)

func newTestObj(typ ObjectType, weight int) *ObjectInstance {
	return &ObjectInstance{Type: typ, Weight: weight}
}

func TestObjectInstance_AddContentPropagatesWeight(t *testing.T) {
	outer := newTestObj(ObjectTypeContainer, 5)
	inner := newTestObj(ObjectTypeContainer, 2)
	outer.AddContent(inner)

	inner.AddContent(newTestObj(ObjectTypeOther, 3))

	testutil.AssertEqual(t, "inner weight", inner.Weight, 5)
	testutil.AssertEqual(t, "outer weight", outer.Weight, 10)
	testutil.AssertEqual(t, "outer own weight", outer.OwnWeight(), 5)
	testutil.AssertEqual(t, "inner container", inner.Container(), outer)
}

func TestObjectInstance_RemoveContent(t *testing.T) {
	outer := newTestObj(ObjectTypeContainer, 5)
	inner := newTestObj(ObjectTypeContainer, 2)
	leaf := newTestObj(ObjectTypeOther, 3)
	outer.AddContent(inner)
	inner.AddContent(leaf)

	testutil.AssertEqual(t, "removed", inner.RemoveContent(leaf), true)
	testutil.AssertEqual(t, "removed twice", inner.RemoveContent(leaf), false)
	testutil.AssertEqual(t, "inner weight", inner.Weight, 2)
	testutil.AssertEqual(t, "outer weight", outer.Weight, 7)
	if leaf.Container() != nil {
		t.Errorf("expected back reference to be cleared")
	}
}

func TestNewObjectInstance_CopiesPrototype(t *testing.T) {
	def := &Object{
		Aliases:   []string{"bag", "sack"},
		ShortDesc: "a leather bag",
		LongDesc:  "A leather bag lies here.",
		TypeStr:   "container",
		Values:    [NumValues]int{50, 0, 0, 0},
		Weight:    3,
		Cost:      10,
	}
	def.WearFlags.Set(WearFlagTake)

	oi := NewObjectInstance(storage.NewResolvedSmartIdentifier("town-bag", def))

	testutil.AssertEqual(t, "type", oi.Type, ObjectTypeContainer)
	testutil.AssertEqual(t, "name", oi.Name, "bag sack")
	testutil.AssertEqual(t, "weight", oi.Weight, 3)
	testutil.AssertEqual(t, "values", oi.Values, def.Values)
	testutil.AssertEqual(t, "take", oi.WearFlags.Has(WearFlagTake), true)
	testutil.AssertEqual(t, "storage", oi.IsStorage(), true)
	testutil.AssertEqual(t, "placeholder", oi.IsPlaceholder(), false)
	if oi.InstanceId == "" {
		t.Errorf("expected instance id to be set")
	}
}

func TestNewPlaceholder(t *testing.T) {
	oi := NewPlaceholder("gone-sword")

	testutil.AssertEqual(t, "key kept", oi.Object.Id(), "gone-sword")
	testutil.AssertEqual(t, "placeholder", oi.IsPlaceholder(), true)
	testutil.AssertEqual(t, "short desc", oi.ShortDesc, PlaceholderShortDesc)
	if oi.Prototype() != nil {
		t.Errorf("placeholder must not have a prototype")
	}
}

func TestObjectInstance_Walk(t *testing.T) {
	root := newTestObj(ObjectTypeContainer, 1)
	a := newTestObj(ObjectTypeContainer, 1)
	b := newTestObj(ObjectTypeOther, 1)
	c := newTestObj(ObjectTypeOther, 1)
	root.AddContent(a)
	a.AddContent(b)
	root.AddContent(c)

	var seen []*ObjectInstance
	root.Walk(func(oi *ObjectInstance) { seen = append(seen, oi) })

	testutil.AssertEqual(t, "count", len(seen), 4)
	testutil.AssertEqual(t, "order", seen[0] == root && seen[1] == a && seen[2] == b && seen[3] == c, true)
}
