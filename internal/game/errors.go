package game

import "errors"

var (
	ErrUnknownBuilding  = errors.New("unknown building")
	ErrUnknownUpgrade   = errors.New("unknown upgrade")
	ErrUnknownTech      = errors.New("unknown tech")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrUnknownResource  = errors.New("unknown resource")
	ErrUnknownTarget    = errors.New("unknown prestige target")
	ErrLocked           = errors.New("not unlocked")
	ErrPrereqsUnmet     = errors.New("prerequisites not met")
	ErrInsufficient     = errors.New("insufficient resources")
	ErrEventActive      = errors.New("an event is already active")
	ErrEventCooldown    = errors.New("event cooldown in effect")
	ErrNoActiveEvent    = errors.New("no active event")
	ErrNotTradable      = errors.New("resource cannot be traded")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrNoPrestigePoints = errors.New("not enough prestige points")
)
