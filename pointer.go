package diagram

// NativeEvent is the host's underlying event handle, consumed the same
// way DOM's preventDefault works (spec.md §6 "Pointer source": "either a
// native-event handle the dispatcher can consume... or an explicit
// consume method").
type NativeEvent interface {
	Consume()
}

// Modifiers carries the keyboard/mouse modifier state accompanying a
// pointer event (spec.md §6).
type Modifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
	Meta  bool
}

// PointerEvent is the engine-facing representation of a single pointer
// sample: press, move, or release (spec.md §6 "Pointer source"). Client
// coordinates are in the host's widget space; the graph is responsible
// for translating them into model/view space.
type PointerEvent struct {
	ClientX, ClientY float64
	ScreenX, ScreenY float64
	Modifiers        Modifiers
	Button           int
	MultiTouch       bool

	Native NativeEvent

	consumed bool
}

// Consume marks the event as handled, both locally and on the native
// handle if one was supplied. Subsequent handlers observe Consumed()
// but cannot un-consume it (spec.md §5 "consumed is a single monotonic
// flag visible to subsequent handlers").
func (e *PointerEvent) Consume() {
	e.consumed = true
	if e.Native != nil {
		e.Native.Consume()
	}
}

// Consumed reports whether a prior handler already consumed this event.
func (e *PointerEvent) Consumed() bool { return e.consumed }

// Point returns the event's client coordinates as a Point.
func (e *PointerEvent) Point() Point { return Point{e.ClientX, e.ClientY} }
