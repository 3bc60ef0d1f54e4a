package rent

// Reason records why a rent file was written.
type Reason string

const (
	// ReasonCrash files are periodic saves of a playing character.
	ReasonCrash Reason = "crash"
	// ReasonRented files were written when the player checked out at an inn.
	ReasonRented Reason = "rented"
	// ReasonCryo files were paid for up front and are never charged.
	ReasonCryo Reason = "cryo"
	// ReasonIdle files were written when an idle player was removed.
	ReasonIdle      Reason = "idle"
	ReasonUndefined Reason = "undefined"
)

// ParseReason returns the reason named by s, or ReasonUndefined.
func ParseReason(s string) Reason {
	switch r := Reason(s); r {
	case ReasonCrash, ReasonRented, ReasonCryo, ReasonIdle:
		return r
	default:
		return ReasonUndefined
	}
}

// Voluntary reports whether the player chose to leave their belongings in
// storage. Belongings from any other file may not be where they were left.
func (r Reason) Voluntary() bool {
	return r == ReasonRented || r == ReasonCryo
}
