package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/mudsave/internal/storage"
)

// Mobile defines a type of mobile entity loaded from asset files.
// Multiple instances can be spawned from one definition.
// Mobile IDs follow the convention <zone>-<name> (e.g., "millbrook-guard").
type Mobile struct {
	// Aliases are keywords players can use to target this mobile (e.g., ["guard", "town"])
	Aliases []string `json:"aliases"`

	// ShortDesc is used in action messages (e.g., "The town guard hits you.")
	ShortDesc string `json:"short_desc"`

	// LongDesc is shown when the mobile is in its default position in a room
	// (e.g., "A burly guard in chain mail keeps watch over the square.")
	LongDesc string `json:"long_desc"`

	Actor
}

// MatchName returns true if name matches any of this mobile's aliases (case-insensitive).
func (m *Mobile) MatchName(name string) bool {
	for _, alias := range m.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec
func (m *Mobile) Validate() error {
	el := errors.NewErrorList()
	if len(m.Aliases) < 1 {
		el.Add(fmt.Errorf("mobile alias is required"))
	}
	if m.ShortDesc == "" {
		el.Add(fmt.Errorf("mobile short description is required"))
	}
	el.Add(m.Actor.validate())
	return el.Err()
}

// MobileInstance represents a single spawned instance of a Mobile definition.
// Location is tracked by the containing structure (room).
type MobileInstance struct {
	InstanceId string
	Mobile     storage.SmartIdentifier[*Mobile]

	ActorInstance
}

// NewMobileInstance spawns an instance of a resolved mobile definition.
func NewMobileInstance(mob storage.SmartIdentifier[*Mobile]) *MobileInstance {
	return &MobileInstance{
		InstanceId:    uuid.New().String(),
		Mobile:        mob,
		ActorInstance: NewActorInstance(),
	}
}

// Actor returns the class and race of the mobile's definition.
func (mi *MobileInstance) Actor() Actor {
	if def := mi.Mobile.Get(); def != nil {
		return def.Actor
	}
	return Actor{}
}
