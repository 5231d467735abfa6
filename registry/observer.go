package registry

import (
	"unsafe"

	"github.com/wippyai/opaque"
)

// Event types for ownership block lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventJoined
	EventReleased
	EventDestroyed
)

// Event represents an ownership block lifecycle event. Holders is the
// holder count after the event; it is zero for EventDestroyed.
type Event struct {
	Addr    unsafe.Pointer
	Token   opaque.TypeToken
	Holders int
	Type    EventType
}

// Observer receives notifications about ownership block lifecycle
// events. Notification runs on the thread performing the operation.
type Observer interface {
	OnBlockEvent(Event)
}
