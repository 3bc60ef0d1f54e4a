package game

import (
	"slices"

	"github.com/google/uuid"
	"github.com/pixil98/mudsave/internal/storage"
)

const (
	PlaceholderName      = "strange object"
	PlaceholderShortDesc = "a strange object"
	PlaceholderLongDesc  = "A strange object lies here, its origin long forgotten."
)

// ObjectInstance represents a single spawned instance of an Object definition.
//
// An instance exclusively owns the instances in Contents. The container
// back-reference is non-owning and only used to keep Weight current as
// contents are added and removed; it must never be followed for teardown.
type ObjectInstance struct {
	InstanceId string

	// Object references the prototype. An empty key is an ephemeral object
	// with no prototype; an unresolved key is a placeholder for a prototype
	// that no longer exists.
	Object storage.SmartIdentifier[*Object]

	Type       ObjectType
	Values     [NumValues]int
	ExtraFlags FlagSet
	WearFlags  FlagSet

	// Weight is the live weight, including everything in Contents.
	Weight int
	Cost   int
	Timer  int

	Name         string
	ShortDesc    string
	LongDesc     string
	DetailedDesc string

	Contents []*ObjectInstance

	container *ObjectInstance
}

// NewObjectInstance spawns an instance of a resolved prototype.
func NewObjectInstance(obj storage.SmartIdentifier[*Object]) *ObjectInstance {
	oi := &ObjectInstance{
		InstanceId: uuid.New().String(),
		Object:     obj,
	}
	if def := obj.Get(); def != nil {
		oi.Type = def.Type()
		oi.Values = def.Values
		oi.ExtraFlags = def.ExtraFlags
		oi.WearFlags = def.WearFlags
		oi.Weight = def.Weight
		oi.Cost = def.Cost
		oi.Timer = def.Timer
		oi.Name = def.Name()
		oi.ShortDesc = def.ShortDesc
		oi.LongDesc = def.LongDesc
		oi.DetailedDesc = def.DetailedDesc
	}
	return oi
}

// NewPlaceholder creates a generic stand-in for an object whose prototype
// could not be found. The prototype key is kept so it survives a re-save.
func NewPlaceholder(key string) *ObjectInstance {
	return &ObjectInstance{
		InstanceId: uuid.New().String(),
		Object:     storage.NewSmartIdentifier[*Object](key),
		Type:       ObjectTypeOther,
		Name:       PlaceholderName,
		ShortDesc:  PlaceholderShortDesc,
		LongDesc:   PlaceholderLongDesc,
	}
}

// Prototype returns the resolved prototype, or nil for ephemeral and
// placeholder objects.
func (oi *ObjectInstance) Prototype() *Object {
	return oi.Object.Get()
}

// IsPlaceholder reports whether the instance references a missing prototype.
func (oi *ObjectInstance) IsPlaceholder() bool {
	return oi.Object.Id() != "" && !oi.Object.IsResolved()
}

// IsStorage reports whether the instance can hold other objects.
func (oi *ObjectInstance) IsStorage() bool {
	return oi.Type.IsStorage()
}

// Container returns the object holding this one, if any.
func (oi *ObjectInstance) Container() *ObjectInstance {
	return oi.container
}

// AddContent appends child to the contents and adds its weight to this
// object and every object containing it.
func (oi *ObjectInstance) AddContent(child *ObjectInstance) {
	child.container = oi
	oi.Contents = append(oi.Contents, child)
	for c := oi; c != nil; c = c.container {
		c.Weight += child.Weight
	}
}

// RemoveContent detaches child, reversing AddContent. It reports whether
// child was found.
func (oi *ObjectInstance) RemoveContent(child *ObjectInstance) bool {
	i := slices.Index(oi.Contents, child)
	if i < 0 {
		return false
	}
	oi.Contents = slices.Delete(oi.Contents, i, i+1)
	for c := oi; c != nil; c = c.container {
		c.Weight -= child.Weight
	}
	child.container = nil
	return true
}

// OwnWeight returns the weight of the object excluding its contents.
func (oi *ObjectInstance) OwnWeight() int {
	w := oi.Weight
	for _, c := range oi.Contents {
		w -= c.Weight
	}
	return w
}

// Walk calls fn for the object and everything inside it, parents first.
func (oi *ObjectInstance) Walk(fn func(*ObjectInstance)) {
	fn(oi)
	for _, c := range oi.Contents {
		c.Walk(fn)
	}
}
