package tileswap

// EventType identifies a kind of game event.
type EventType uint8

const (
	EventLevelLoaded EventType = iota // tiles for a level are laid out and shuffled
	EventTileSwapped                  // a drag swapped two tiles
	EventLevelWon                     // the board was solved
)

func (e EventType) String() string {
	switch e {
	case EventLevelLoaded:
		return "level_loaded"
	case EventTileSwapped:
		return "tile_swapped"
	case EventLevelWon:
		return "level_won"
	default:
		return "unknown"
	}
}

// GameEvent carries what happened and where.
type GameEvent struct {
	Type  EventType
	Level int
	Grid  int
	// Swap fields (valid for EventTileSwapped): the positions exchanged.
	From, To int
	// Moves is the number of swaps made so far on this level.
	Moves int
	// HasNext reports, for EventLevelWon, whether a next level is available.
	HasNext bool
}

// EventSink is the interface for optional event integration.
// When set on a Game, events are forwarded as they happen.
type EventSink interface {
	Emit(event GameEvent)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(GameEvent)

// Emit calls f(event).
func (f EventSinkFunc) Emit(event GameEvent) {
	f(event)
}
