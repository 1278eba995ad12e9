package diagram

import "fmt"

// Event names recognized by Model's listener registry (spec.md §6.2).
const (
	EventBeginUpdate = "begin-update"
	EventStartEdit   = "start-edit"
	EventExecute     = "execute"
	EventExecuted    = "executed"
	EventEndEdit     = "end-edit"
	EventEndUpdate   = "end-update"
	EventBeforeUndo  = "before-undo"
	EventUndo        = "undo"
	EventChange      = "change"
	EventNotify      = "notify"
)

// Graph/handler-level event names (spec.md §6.2), used by the interaction
// handlers (marker.go, constraint.go, connection.go, rubberband.go).
const (
	EventStart     = "start"
	EventConnect   = "connect"
	EventReset     = "reset"
	EventMark      = "mark"
	EventShow      = "show"
	EventHide      = "hide"
	EventEscape    = "escape"
	EventFireMouse = "fire-mouse-event"
	EventPan       = "pan"
	EventGesture   = "gesture"
	EventScale     = "scale"
	EventTranslate = "translate"
	EventScaleAndTranslate = "scale-and-translate"
	EventDown      = "down"
	EventUp        = "up"
	EventRoot      = "root"
)

// Event is the payload delivered to a Model listener. Which fields are
// populated depends on the event name.
type Event struct {
	Model *Model
	Edit  *UndoableEdit
	Cell  *Cell
}

type listener struct {
	id int
	fn func(Event)
}

// eventRegistry is a named-event listener source, grounded on input.go's
// handlerRegistry/CallbackHandle pattern (ordered slice of {id, fn},
// removable by id) but keyed by event name (a string) instead of a fixed
// Go type per event, since the model's event set is named data (spec.md
// §6.2) rather than nine distinct willow event structs.
type eventRegistry struct {
	listeners map[string][]listener
	nextID    int
}

// EventHandle lets a caller unregister a listener previously added with
// Model.On.
type EventHandle struct {
	name string
	id   int
	reg  *eventRegistry
}

// Remove unregisters the listener. No-op if already removed.
func (h EventHandle) Remove() {
	if h.reg == nil {
		return
	}
	ls := h.reg.listeners[h.name]
	for i, l := range ls {
		if l.id == h.id {
			h.reg.listeners[h.name] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// On registers fn to be called whenever the named event fires. Listeners
// on the same event fire in registration order (spec.md §5 "Ordering
// guarantees").
func (m *Model) On(name string, fn func(Event)) EventHandle {
	if m.listeners.listeners == nil {
		m.listeners.listeners = make(map[string][]listener)
	}
	m.listeners.nextID++
	id := m.listeners.nextID
	m.listeners.listeners[name] = append(m.listeners.listeners[name], listener{id: id, fn: fn})
	return EventHandle{name: name, id: id, reg: &m.listeners}
}

// fire dispatches ev to every listener registered for name, in
// registration order. Per spec.md §7 "Listener failure": a panicking
// listener does not prevent the others from running; once every listener
// has had a chance, the (first) panic is re-raised.
func (r *eventRegistry) fire(name string, ev Event) {
	ls := append([]listener(nil), r.listeners[name]...)
	if len(ls) == 0 {
		return
	}
	var firstPanic any
	for _, l := range ls {
		func() {
			defer func() {
				if p := recover(); p != nil && firstPanic == nil {
					firstPanic = p
				}
			}()
			l.fn(ev)
		}()
	}
	if firstPanic != nil {
		panic(fmt.Sprintf("diagram: listener for %q panicked: %v", name, firstPanic))
	}
}
