package game

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
	ErrSlotOccupied   = errors.New("slot is already occupied")
	ErrInvalidSlot    = errors.New("invalid wear slot")
)
