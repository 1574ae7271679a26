package event

import "testing"

type ping struct{ n int }
type pong struct{ s string }

func TestEventsDeliveredNextTickInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(p ping) { got = append(got, "ping") })
	Subscribe(b, func(p pong) { got = append(got, "pong:"+p.s) })

	Emit(b, ping{1})
	Emit(b, pong{"a"})
	Emit(b, ping{2})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("delivered before swap: %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	want := []string{"ping", "pong:a", "ping"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 3 {
		t.Fatalf("events redelivered: %v", got)
	}
}

func TestFlushDrainsPending(t *testing.T) {
	b := NewBus()
	n := 0
	Subscribe(b, func(p ping) {
		n += p.n
		if p.n == 1 {
			Emit(b, ping{10})
		}
	})
	Emit(b, ping{1})
	b.Flush()
	if n != 11 || b.Pending() != 0 {
		t.Fatalf("n = %d pending = %d", n, b.Pending())
	}
}
