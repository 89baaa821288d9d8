package viewport

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestAttachDetach(t *testing.T) {
	bus := NewBus()
	c := New(DefaultConfig())

	detach := c.Attach(bus)
	if bus.Len() != 1 {
		t.Fatalf("Len() = %d after attach, want 1", bus.Len())
	}

	if !bus.Publish(Wheel{DeltaY: -100}) {
		t.Error("wheel should be consumed")
	}
	if c.Zoom() != 1.15 {
		t.Errorf("zoom = %g, want 1.15", c.Zoom())
	}
	if bus.Publish(Key{Key: "+"}) {
		t.Error("unmodified key should not be consumed")
	}

	bus.Publish(PointerDown{Button: ButtonPrimary})
	if !c.Panning() {
		t.Fatal("expected panning")
	}

	detach()
	if bus.Len() != 0 {
		t.Errorf("Len() = %d after detach, want 0", bus.Len())
	}
	if c.Panning() {
		t.Error("detach should end the pan")
	}

	bus.Publish(Wheel{DeltaY: -100})
	if c.Zoom() != 1.15 {
		t.Errorf("detached controller still receives events: zoom %g", c.Zoom())
	}

	detach()
}

func TestBusOrderAndCancel(t *testing.T) {
	bus := NewBus()
	var got []string
	r1 := bus.Subscribe(func(Event) bool { got = append(got, "a"); return false })
	bus.Subscribe(func(Event) bool { got = append(got, "b"); return true })
	bus.Subscribe(func(Event) bool { got = append(got, "c"); return false })

	if !bus.Publish(Wheel{}) {
		t.Error("expected consumed")
	}
	r1.Cancel()
	r1.Cancel()
	bus.Publish(Wheel{})

	want := []string{"a", "b", "c", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBusRegistrationIDs(t *testing.T) {
	bus := NewBus()
	type identified interface{ ID() uuid.UUID }
	a, ok := bus.Subscribe(func(Event) bool { return false }).(identified)
	if !ok {
		t.Fatal("registration has no ID")
	}
	b := bus.Subscribe(func(Event) bool { return false }).(identified)
	if a.ID() == b.ID() || a.ID() == uuid.Nil {
		t.Errorf("ids not unique: %s %s", a.ID(), b.ID())
	}
}

func TestBusConcurrentSubscribe(t *testing.T) {
	bus := NewBus()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := bus.Subscribe(func(Event) bool { return false })
			bus.Publish(Wheel{})
			reg.Cancel()
		}()
	}
	wg.Wait()
	if bus.Len() != 0 {
		t.Errorf("Len() = %d, want 0", bus.Len())
	}
}
