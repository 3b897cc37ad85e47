package game

// EventType identifies a session event.
type EventType int

const (
	EventSessionStarted EventType = iota
	EventTargetSpawned
	EventBulletFired
	EventTargetDamaged
	EventTargetDestroyed
	EventPlayerDown
	EventMash
	EventRecovered
	EventGameOver
	EventStorageError
)

var eventNames = [...]string{
	EventSessionStarted:  "session_started",
	EventTargetSpawned:   "target_spawned",
	EventBulletFired:     "bullet_fired",
	EventTargetDamaged:   "target_damaged",
	EventTargetDestroyed: "target_destroyed",
	EventPlayerDown:      "player_down",
	EventMash:            "mash",
	EventRecovered:       "recovered",
	EventGameOver:        "game_over",
	EventStorageError:    "storage_error",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// EventTypes lists every event type, for collectors that pre-register labels.
func EventTypes() []EventType {
	types := make([]EventType, len(eventNames))
	for i := range types {
		types[i] = EventType(i)
	}
	return types
}

// Event describes something that happened in a session. Only the fields
// relevant to Type are set.
type Event struct {
	Type      EventType
	Score     int   // Current score
	HighScore int   // GameOver: high score after finalizing
	HP        int   // TargetDamaged: hit-points left
	Count     int   // TargetDestroyed: fragments spawned; Mash: presses so far
	Required  int   // PlayerDown/Mash/Recovered: presses needed
	NewRecord bool  // GameOver
	Err       error // StorageError
}

// Observer receives session events synchronously, on the session's goroutine.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Notify implements Observer.
func (f ObserverFunc) Notify(e Event) { f(e) }

type multiObserver []Observer

func (m multiObserver) Notify(e Event) {
	for _, o := range m {
		o.Notify(e)
	}
}

// Observers fans events out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}
