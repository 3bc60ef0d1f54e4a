package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// NumValues is the number of type-specific value slots on an object.
const NumValues = 4

// ObjectType defines the category of an object. The numeric values are
// persisted in save files and must not be reordered.
type ObjectType int

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeLight
	ObjectTypeScroll
	ObjectTypeWand
	ObjectTypeStaff
	ObjectTypeWeapon
	ObjectTypeFireWeapon
	ObjectTypeMissile
	ObjectTypeTreasure
	ObjectTypeArmor
	ObjectTypePotion
	ObjectTypeWorn
	ObjectTypeOther
	ObjectTypeTrash
	ObjectTypeTrap
	ObjectTypeContainer
	ObjectTypeNote
	ObjectTypeDrinkCon
	ObjectTypeKey
	ObjectTypeFood
	ObjectTypeMoney
	ObjectTypePen
	ObjectTypeBoat
	ObjectTypeFountain
	ObjectTypeFurniture
)

var objectTypeNames = map[string]ObjectType{
	"light":      ObjectTypeLight,
	"scroll":     ObjectTypeScroll,
	"wand":       ObjectTypeWand,
	"staff":      ObjectTypeStaff,
	"weapon":     ObjectTypeWeapon,
	"fireweapon": ObjectTypeFireWeapon,
	"missile":    ObjectTypeMissile,
	"treasure":   ObjectTypeTreasure,
	"armor":      ObjectTypeArmor,
	"potion":     ObjectTypePotion,
	"worn":       ObjectTypeWorn,
	"other":      ObjectTypeOther,
	"trash":      ObjectTypeTrash,
	"trap":       ObjectTypeTrap,
	"container":  ObjectTypeContainer,
	"note":       ObjectTypeNote,
	"drinkcon":   ObjectTypeDrinkCon,
	"key":        ObjectTypeKey,
	"food":       ObjectTypeFood,
	"money":      ObjectTypeMoney,
	"pen":        ObjectTypePen,
	"boat":       ObjectTypeBoat,
	"fountain":   ObjectTypeFountain,
	"furniture":  ObjectTypeFurniture,
}

// ParseObjectType returns the ObjectType for a name, or ObjectTypeUnknown.
func ParseObjectType(s string) ObjectType {
	return objectTypeNames[strings.ToLower(s)]
}

// IsStorage reports whether objects of this type can hold other objects.
func (t ObjectType) IsStorage() bool {
	return t == ObjectTypeContainer || t == ObjectTypeFurniture
}

// Object defines a type of object/item loaded from asset files.
// Multiple instances can be spawned from one definition.
// Object IDs follow the convention <zone>-<name> (e.g., "millbrook-sword").
type Object struct {
	// Aliases are keywords players can use to target this object (e.g., ["sword", "blade"])
	Aliases []string `json:"aliases"`

	// ShortDesc is used in action messages (e.g., "You pick up a rusty sword.")
	ShortDesc string `json:"short_desc"`

	// LongDesc is shown when the object is on the ground in a room
	// (e.g., "A rusty sword lies discarded in the corner.")
	LongDesc string `json:"long_desc"`

	// DetailedDesc is shown when a player examines the object
	DetailedDesc string `json:"detailed_desc,omitempty"`

	// TypeStr is the object type from JSON
	TypeStr string `json:"type"`

	// Values hold type specific data (e.g. capacity for containers, damage dice for weapons)
	Values [NumValues]int `json:"values,omitempty"`

	ExtraFlagNames []string `json:"extra_flags,omitempty"`
	WearFlagNames  []string `json:"wear_flags,omitempty"`

	Weight int `json:"weight"`
	Cost   int `json:"cost"`

	// RentPerDay is charged for each full day an instance spends in a rent file.
	RentPerDay int `json:"rent_per_day,omitempty"`

	// Timer is the starting decay timer for new instances; zero never decays.
	Timer int `json:"timer,omitempty"`

	ExtraFlags FlagSet `json:"-"`
	WearFlags  FlagSet `json:"-"`
}

func (o *Object) UnmarshalJSON(b []byte) error {
	type Alias Object
	if err := json.Unmarshal(b, (*Alias)(o)); err != nil {
		return err
	}

	var err error
	o.ExtraFlags, err = parseFlagNames("extra", o.ExtraFlagNames, extraFlagNames)
	if err != nil {
		return err
	}
	o.WearFlags, err = parseFlagNames("wear", o.WearFlagNames, wearFlagNames)
	if err != nil {
		return err
	}
	return nil
}

// Type returns the parsed ObjectType from TypeStr.
func (o *Object) Type() ObjectType {
	return ParseObjectType(o.TypeStr)
}

// Name returns the keyword string used for targeting.
func (o *Object) Name() string {
	return strings.Join(o.Aliases, " ")
}

// Validate satisfies storage.ValidatingSpec
func (o *Object) Validate() error {
	el := errors.NewErrorList()
	if len(o.Aliases) < 1 {
		el.Add(fmt.Errorf("object alias is required"))
	}
	if o.ShortDesc == "" {
		el.Add(fmt.Errorf("object short description is required"))
	}
	if o.TypeStr == "" {
		el.Add(fmt.Errorf("object type is required"))
	} else if o.Type() == ObjectTypeUnknown {
		el.Add(fmt.Errorf("object type %q is invalid", o.TypeStr))
	}
	if o.Weight < 0 {
		el.Add(fmt.Errorf("object weight must not be negative"))
	}
	return el.Err()
}
