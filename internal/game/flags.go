package game

import (
	"fmt"
	"strings"
)

// FlagWords is the number of 32-bit words in a FlagSet.
const FlagWords = 4

// FlagSet is a fixed-width bitset. Bit n lives in word n/32.
type FlagSet [FlagWords]uint32

// Has reports whether bit is set.
func (f FlagSet) Has(bit int) bool {
	if bit < 0 || bit >= FlagWords*32 {
		return false
	}
	return f[bit/32]&(1<<uint(bit%32)) != 0
}

// Set turns bit on. Out of range bits are ignored.
func (f *FlagSet) Set(bit int) {
	if bit < 0 || bit >= FlagWords*32 {
		return
	}
	f[bit/32] |= 1 << uint(bit%32)
}

// Clear turns bit off.
func (f *FlagSet) Clear(bit int) {
	if bit < 0 || bit >= FlagWords*32 {
		return
	}
	f[bit/32] &^= 1 << uint(bit%32)
}

// IsZero reports whether no bits are set.
func (f FlagSet) IsZero() bool {
	return f == FlagSet{}
}

// parseFlagNames builds a FlagSet from names using the given lookup table.
func parseFlagNames(kind string, names []string, table map[string]int) (FlagSet, error) {
	var fs FlagSet
	for _, n := range names {
		bit, ok := table[strings.ToLower(n)]
		if !ok {
			return FlagSet{}, fmt.Errorf("unknown %s flag %q", kind, n)
		}
		fs.Set(bit)
	}
	return fs, nil
}

// ExtraFlag bits describe behavioural properties of an object.
const (
	ExtraFlagGlow = iota
	ExtraFlagHum
	ExtraFlagNoRent
	ExtraFlagNoDonate
	ExtraFlagNoInvis
	ExtraFlagInvisible
	ExtraFlagMagic
	ExtraFlagNoDrop
	ExtraFlagBless
	ExtraFlagAntiGood
	ExtraFlagAntiEvil
	ExtraFlagAntiNeutral
	ExtraFlagAntiMagicUser
	ExtraFlagAntiCleric
	ExtraFlagAntiThief
	ExtraFlagAntiWarrior
	ExtraFlagNoSell
	ExtraFlagAntiHuman
	ExtraFlagAntiElf
	ExtraFlagAntiDwarf
	ExtraFlagAntiHalfling
)

var extraFlagNames = map[string]int{
	"glow":          ExtraFlagGlow,
	"hum":           ExtraFlagHum,
	"norent":        ExtraFlagNoRent,
	"nodonate":      ExtraFlagNoDonate,
	"noinvis":       ExtraFlagNoInvis,
	"invisible":     ExtraFlagInvisible,
	"magic":         ExtraFlagMagic,
	"nodrop":        ExtraFlagNoDrop,
	"bless":         ExtraFlagBless,
	"anti-good":     ExtraFlagAntiGood,
	"anti-evil":     ExtraFlagAntiEvil,
	"anti-neutral":  ExtraFlagAntiNeutral,
	"anti-mage":     ExtraFlagAntiMagicUser,
	"anti-cleric":   ExtraFlagAntiCleric,
	"anti-thief":    ExtraFlagAntiThief,
	"anti-warrior":  ExtraFlagAntiWarrior,
	"nosell":        ExtraFlagNoSell,
	"anti-human":    ExtraFlagAntiHuman,
	"anti-elf":      ExtraFlagAntiElf,
	"anti-dwarf":    ExtraFlagAntiDwarf,
	"anti-halfling": ExtraFlagAntiHalfling,
}

// WearFlag bits describe where an object may be worn.
const (
	WearFlagTake = iota
	WearFlagFinger
	WearFlagNeck
	WearFlagBody
	WearFlagHead
	WearFlagLegs
	WearFlagFeet
	WearFlagHands
	WearFlagArms
	WearFlagShield
	WearFlagAbout
	WearFlagWaist
	WearFlagWrist
	WearFlagWield
	WearFlagHold
)

var wearFlagNames = map[string]int{
	"take":   WearFlagTake,
	"finger": WearFlagFinger,
	"neck":   WearFlagNeck,
	"body":   WearFlagBody,
	"head":   WearFlagHead,
	"legs":   WearFlagLegs,
	"feet":   WearFlagFeet,
	"hands":  WearFlagHands,
	"arms":   WearFlagArms,
	"shield": WearFlagShield,
	"about":  WearFlagAbout,
	"waist":  WearFlagWaist,
	"wrist":  WearFlagWrist,
	"wield":  WearFlagWield,
	"hold":   WearFlagHold,
}
