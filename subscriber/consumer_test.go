package subscriber

import (
	"bytes"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
)

func TestConsumer_CallbackRunsBeforeBarrier(t *testing.T) {
	var seen []string
	var c *Consumer[string]
	c = NewConsumer(func(v string) {
		if c.Completed() {
			t.Errorf("callback for %q ran after completion", v)
		}
		seen = append(seen, v)
	}, quiet())
	(&goPublisher[string]{values: []string{"a", "b", "c"}}).Subscribe(c)

	got, err := c.GetTimeout(time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(seen) != "[a b c]" || fmt.Sprint(got) != "[a b c]" {
		t.Errorf("expected [a b c] for both callback and result, got %v and %v", seen, got)
	}
}

func TestConsumer_NilCallback(t *testing.T) {
	c := NewConsumer[int](nil, quiet())
	emit[int](c, 1, 2)

	got, err := c.Get()
	if err != nil || len(got) != 2 {
		t.Errorf("expected 2 elements, got %v, %v", got, err)
	}
}

func TestConsumer_SetConsumer(t *testing.T) {
	var first, second int
	c := NewConsumer(func(int) { first++ }, quiet())
	c.OnNext(1)
	c.SetConsumer(func(int) { second++ })
	c.OnNext(2)
	c.OnComplete()

	if first != 1 || second != 1 {
		t.Errorf("expected one call each, got first=%d second=%d", first, second)
	}
}

func TestConsumer_SetConsumerWhileEmitting(t *testing.T) {
	const n = 1000
	var old, replaced atomic.Int64
	c := NewConsumer(func(int) { old.Add(1) }, quiet())
	c.OnSubscribe(&recordingSubscription{})

	go func() {
		for i := 0; i < n; i++ {
			c.OnNext(i)
		}
		c.OnComplete()
	}()
	c.SetConsumer(func(int) { replaced.Add(1) })

	if _, err := c.GetTimeout(time.Second); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if total := old.Load() + replaced.Load(); total != n {
		t.Errorf("expected every element handed to exactly one callback, got %d", total)
	}
}

func TestConsumer_DroppedElementsSkipCallback(t *testing.T) {
	calls := 0
	c := NewConsumer(func(int) { calls++ }, quiet())
	emit[int](c, 1)
	c.OnNext(2)

	if calls != 1 {
		t.Errorf("expected callback only for accepted elements, got %d calls", calls)
	}
}

func TestConsumer_FailureStillDeliversEarlierElements(t *testing.T) {
	var seen []int
	c := NewConsumer(func(v int) { seen = append(seen, v) }, quiet())
	(&goPublisher[int]{values: []int{1, 2}, err: errors.Unavailable("store")}).Subscribe(c)

	if _, err := c.GetTimeout(time.Second); !errors.IsCode(err, errors.ErrCodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE, got %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("expected the callback to see both elements, got %v", seen)
	}
}

func TestConsumer_DefaultName(t *testing.T) {
	if n := NewConsumer[int](nil, quiet()).Name(); n != "consumer" {
		t.Errorf("expected consumer, got %q", n)
	}
}

func TestOperation_AlwaysImmediate(t *testing.T) {
	s := &recordingSubscription{}
	op := NewOperation[string](quiet(), WithDemand(DemandDeferred))
	if op.Demand() != DemandImmediate {
		t.Fatalf("expected immediate demand, got %s", op.Demand())
	}
	op.OnSubscribe(s)
	if got := s.Requests(); len(got) != 1 || got[0] != Unbounded {
		t.Errorf("expected Unbounded at handshake, got %v", got)
	}
	if op.Name() != "operation" {
		t.Errorf("expected operation, got %q", op.Name())
	}
}

func TestOperation_ResultOnly(t *testing.T) {
	op := NewOperation[string](quiet())
	(&goPublisher[string]{values: []string{"ok"}}).Subscribe(op)

	v, ok, err := op.First()
	if err != nil || !ok || v != "ok" {
		t.Errorf("expected (ok, true, nil), got (%q, %v, %v)", v, ok, err)
	}
}

func TestPrinter_LogsEachElement(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, &logger.Config{Level: "info", Format: "json"}, "test")

	p := NewPrinter[string](log, WithLogger(logger.NewNop()))
	emit[string](p, "red", "green")

	if _, err := p.Get(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Count(out, `"message":"element"`) != 2 {
		t.Errorf("expected two element lines, got %q", out)
	}
	if !strings.Contains(out, `"element":"red"`) || !strings.Contains(out, `"element":"green"`) {
		t.Errorf("expected both values logged, got %q", out)
	}
	if p.Name() != "printer" {
		t.Errorf("expected printer name, got %q", p.Name())
	}
}
