package diagram

import "testing"

func TestOnFiresInRegistrationOrder(t *testing.T) {
	m := NewModel()
	var order []int
	m.On(EventChange, func(Event) { order = append(order, 1) })
	m.On(EventChange, func(Event) { order = append(order, 2) })
	m.On(EventChange, func(Event) { order = append(order, 3) })
	m.Update(func() {
		m.AddVertex(m.Root(), Geometry{}, "")
	})
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("order = %v, want [1 2 3]", order)
	}
}

func TestFireRunsAllListenersBeforeRepanicking(t *testing.T) {
	m := NewModel()
	ran := make([]bool, 3)
	m.On(EventChange, func(Event) { ran[0] = true; panic("boom-1") })
	m.On(EventChange, func(Event) { ran[1] = true })
	m.On(EventChange, func(Event) { ran[2] = true; panic("boom-2") })

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected the outer Update to re-panic")
		}
		for i, v := range ran {
			if !v {
				t.Fatalf("listener %d did not run before the panic propagated", i)
			}
		}
	}()
	m.Update(func() {
		m.AddVertex(m.Root(), Geometry{}, "")
	})
}

func TestEventHandleRemove(t *testing.T) {
	m := NewModel()
	calls := 0
	h := m.On(EventChange, func(Event) { calls++ })
	m.Update(func() { m.AddVertex(m.Root(), Geometry{}, "") })
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	h.Remove()
	m.Update(func() { m.AddVertex(m.Root(), Geometry{}, "") })
	if calls != 1 {
		t.Fatalf("calls after Remove = %d, want still 1", calls)
	}
}

func TestNoChangeNoNotify(t *testing.T) {
	m := NewModel()
	fired := false
	m.On(EventChange, func(Event) { fired = true })
	m.Update(func() {})
	if fired {
		t.Fatalf("expected change event to be suppressed for an empty edit")
	}
}

func TestNestedUpdateCoalescesIntoOneEdit(t *testing.T) {
	m := NewModel()
	changeCount := 0
	var lastEditSize int
	m.On(EventChange, func(e Event) {
		changeCount++
		lastEditSize = len(e.Edit.Changes)
	})
	m.Update(func() {
		m.Update(func() {
			m.AddVertex(m.Root(), Geometry{}, "")
		})
		m.AddVertex(m.Root(), Geometry{}, "")
	})
	if changeCount != 1 {
		t.Fatalf("changeCount = %d, want 1 (nested Update should coalesce)", changeCount)
	}
	if lastEditSize != 2 {
		t.Fatalf("edit size = %d, want 2", lastEditSize)
	}
}
