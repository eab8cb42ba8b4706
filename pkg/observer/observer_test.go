package observer_test

import (
	"testing"

	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/observer"
)

func newFixture(t *testing.T) (*dom.Document, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	n := dom.NewNode("div")
	doc.Root().AppendChild(n)
	n.Resize(100, 50)
	doc.FlushLayout()
	return doc, n
}

func TestObserveDeliversInitialEntry(t *testing.T) {
	doc, n := newFixture(t)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})

	o.Observe(n)
	if !doc.NeedsLayout() {
		t.Fatal("observe should request an initial measurement")
	}
	doc.FlushLayout()

	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("batches = %v", batches)
	}
	entry := batches[0][0]
	if entry.Target != n || entry.ContentRect.Width != 100 || entry.ContentRect.Height != 50 {
		t.Fatalf("initial entry = %+v", entry)
	}
}

func TestResizeDeliversEntry(t *testing.T) {
	doc, n := newFixture(t)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})
	o.Observe(n)
	doc.FlushLayout()

	n.Resize(200, 80)
	doc.FlushLayout()
	if len(batches) != 2 {
		t.Fatalf("batches = %d", len(batches))
	}
	if rect := batches[1][0].ContentRect; rect.Width != 200 || rect.Height != 80 {
		t.Fatalf("entry rect = %+v", rect)
	}
}

func TestUnwatchedNodesAreFiltered(t *testing.T) {
	doc, watched := newFixture(t)
	other := dom.NewNode("div")
	doc.Root().AppendChild(other)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})
	o.Observe(watched)
	doc.FlushLayout()

	other.Resize(5, 5)
	doc.FlushLayout()
	if len(batches) != 1 {
		t.Fatalf("unwatched node produced a batch: %v", batches)
	}
}

func TestBatchPreservesDeliveryOrder(t *testing.T) {
	doc, first := newFixture(t)
	second := dom.NewNode("div")
	doc.Root().AppendChild(second)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})
	o.Observe(first)
	o.Observe(second)
	doc.FlushLayout() // initial entries, order of observation

	second.Resize(2, 2)
	first.Resize(1, 1)
	doc.FlushLayout()

	if len(batches) != 2 {
		t.Fatalf("batches = %d", len(batches))
	}
	initial := batches[0]
	if len(initial) != 2 || initial[0].Target != first || initial[1].Target != second {
		t.Fatalf("initial batch order = %v", initial)
	}
	resized := batches[1]
	if len(resized) != 2 || resized[0].Target != second || resized[1].Target != first {
		t.Fatalf("resized batch order = %v", resized)
	}
}

func TestObserveIsIdempotent(t *testing.T) {
	doc, n := newFixture(t)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})
	o.Observe(n)
	o.Observe(n)
	o.Observe(nil)
	doc.FlushLayout()

	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("duplicate observation produced %v", batches)
	}
	if !o.Watching(n) || len(o.Targets()) != 1 {
		t.Fatal("target registration is wrong")
	}
}

func TestUnobserveStopsDelivery(t *testing.T) {
	doc, n := newFixture(t)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})
	o.Observe(n)
	doc.FlushLayout()

	o.Unobserve(n)
	n.Resize(1, 1)
	doc.FlushLayout()
	if len(batches) != 1 {
		t.Fatalf("unobserved node still delivered: %v", batches)
	}
	if o.Watching(n) {
		t.Fatal("node still registered")
	}
}

func TestDisconnectAndReuse(t *testing.T) {
	doc, n := newFixture(t)

	var batches [][]observer.Entry
	o := observer.NewBoxObserver(doc, func(entries []observer.Entry) {
		batches = append(batches, entries)
	})
	o.Observe(n)
	doc.FlushLayout()

	o.Disconnect()
	n.Resize(1, 1)
	doc.FlushLayout()
	if len(batches) != 1 {
		t.Fatal("disconnected observer still delivered")
	}

	// Re-observation re-attaches the observer.
	o.Observe(n)
	doc.FlushLayout()
	if len(batches) != 2 {
		t.Fatal("observer did not re-attach after disconnect")
	}
}
