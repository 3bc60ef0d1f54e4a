package game

// WearSlot is a fixed equipment position on an actor.
type WearSlot int

const (
	WearLight WearSlot = iota
	WearFingerR
	WearFingerL
	WearNeck1
	WearNeck2
	WearBody
	WearHead
	WearLegs
	WearFeet
	WearHands
	WearArms
	WearShield
	WearAbout
	WearWaist
	WearWristR
	WearWristL
	WearWield
	WearHold

	NumWearSlots
)

var wearSlotNames = [NumWearSlots]string{
	"light", "finger-r", "finger-l", "neck-1", "neck-2", "body", "head", "legs",
	"feet", "hands", "arms", "shield", "about", "waist", "wrist-r", "wrist-l",
	"wield", "hold",
}

// Valid reports whether s names a real slot.
func (s WearSlot) Valid() bool {
	return s >= 0 && s < NumWearSlots
}

func (s WearSlot) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return wearSlotNames[s]
}

// ParseWearSlot returns the slot with the given name.
func ParseWearSlot(name string) (WearSlot, bool) {
	for i, n := range wearSlotNames {
		if n == name {
			return WearSlot(i), true
		}
	}
	return NumWearSlots, false
}

// WearFlag returns the wear flag an object needs to occupy this slot.
// The light and hold slots have their own rules and report false.
func (s WearSlot) WearFlag() (int, bool) {
	switch s {
	case WearFingerR, WearFingerL:
		return WearFlagFinger, true
	case WearNeck1, WearNeck2:
		return WearFlagNeck, true
	case WearBody:
		return WearFlagBody, true
	case WearHead:
		return WearFlagHead, true
	case WearLegs:
		return WearFlagLegs, true
	case WearFeet:
		return WearFlagFeet, true
	case WearHands:
		return WearFlagHands, true
	case WearArms:
		return WearFlagArms, true
	case WearShield:
		return WearFlagShield, true
	case WearAbout:
		return WearFlagAbout, true
	case WearWaist:
		return WearFlagWaist, true
	case WearWristR, WearWristL:
		return WearFlagWrist, true
	case WearWield:
		return WearFlagWield, true
	default:
		return 0, false
	}
}
