package bus

import (
	"log/slog"
	"sync"
	"testing"
)

func testBus() *Bus {
	return New(slog.Default())
}

func TestEmitOrder(t *testing.T) {
	b := testBus()

	var got []int
	b.On("evt", func(any) { got = append(got, 1) })
	b.On("evt", func(any) { got = append(got, 2) })
	b.On("evt", func(any) { got = append(got, 3) })

	b.Emit("evt", nil)

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEmitPayload(t *testing.T) {
	b := testBus()

	var got any
	b.On("evt", func(p any) { got = p })

	b.Emit("evt", "payload")

	if got != "payload" {
		t.Errorf("payload = %v, want %q", got, "payload")
	}
}

func TestDuplicateHandlerFiresTwice(t *testing.T) {
	b := testBus()

	count := 0
	fn := func(any) { count++ }
	b.On("evt", fn)
	b.On("evt", fn)

	b.Emit("evt", nil)

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestOffRemovesOneRegistration(t *testing.T) {
	b := testBus()

	count := 0
	fn := func(any) { count++ }
	sub1 := b.On("evt", fn)
	b.On("evt", fn)

	b.Off(sub1)
	b.Emit("evt", nil)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// Removing the same handle again is a no-op.
	b.Off(sub1)
	b.Emit("evt", nil)

	if count != 2 {
		t.Errorf("count after second emit = %d, want 2", count)
	}
}

func TestEmitUnknownEvent(t *testing.T) {
	b := testBus()

	// Must not panic or block.
	b.Emit("nobody-listens", nil)
}

func TestPanicIsolation(t *testing.T) {
	b := testBus()

	var after bool
	b.On("evt", func(any) { panic("broken subscriber") })
	b.On("evt", func(any) { after = true })

	b.Emit("evt", nil)

	if !after {
		t.Error("handler after the panicking one should still run")
	}
}

func TestClear(t *testing.T) {
	b := testBus()

	count := 0
	b.On("a", func(any) { count++ })
	b.On("b", func(any) { count++ })

	b.Clear()
	b.Emit("a", nil)
	b.Emit("b", nil)

	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestConcurrentEmit(t *testing.T) {
	b := testBus()

	var mu sync.Mutex
	count := 0
	b.On("evt", func(any) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Emit("evt", nil)
		}()
	}
	wg.Wait()

	if count != 16 {
		t.Errorf("count = %d, want 16", count)
	}
}
