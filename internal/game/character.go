package game

import (
	"encoding/json"
	"strings"
)

// Character represents a player character in the game. Possessions are
// persisted separately in rent files and are not part of the profile.
type Character struct {
	// Name is the character's display name
	Name string `json:"name"`

	// Title is displayed after the character's name (e.g., "Bob the Brave")
	Title string `json:"title,omitempty"`

	Gold     int `json:"gold"`
	BankGold int `json:"bank_gold"`

	Actor
	ActorInstance
}

func (c *Character) UnmarshalJSON(b []byte) error {
	type Alias Character
	if err := json.Unmarshal(b, (*Alias)(c)); err != nil {
		return err
	}
	if c.Inventory == nil {
		c.Inventory = NewInventory()
	}
	if c.Equipment == nil {
		c.Equipment = NewEquipment()
	}
	return nil
}

func NewCharacter(name string, class Class, race Race) *Character {
	return &Character{
		Name:          name,
		Title:         "the Newbie",
		Actor:         Actor{Class: class, Race: race, Level: 1},
		ActorInstance: NewActorInstance(),
	}
}

// MatchName returns true if name matches this character's name (case-insensitive).
func (c *Character) MatchName(name string) bool {
	return strings.EqualFold(c.Name, name)
}

// Validate satisfies storage.ValidatingSpec
func (c *Character) Validate() error {
	return c.Actor.validate()
}
