package tray

// ClickEvent is a pointer press anywhere on the screen. Target names the
// surface element under the pointer, if the host resolved one.
type ClickEvent struct {
	X      int
	Y      int
	Target string
}

// ClickListener receives document-level clicks.
type ClickListener func(ClickEvent)

// ClickSource hands out document-level click subscriptions. The returned
// function releases the subscription and is safe to call more than once.
type ClickSource interface {
	Subscribe(listener ClickListener) (unsubscribe func())
}

// Document is the host-side ClickSource. It is not safe for concurrent use;
// it lives on the same goroutine that processes input.
type Document struct {
	nextID    int
	listeners map[int]ClickListener
	order     []int
	attached  int
	detached  int
}

var _ ClickSource = (*Document)(nil)

// NewDocument creates an empty document with no listeners.
func NewDocument() *Document {
	return &Document{listeners: make(map[int]ClickListener)}
}

// Subscribe registers listener until the returned function is called.
func (d *Document) Subscribe(listener ClickListener) func() {
	if listener == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.listeners[id] = listener
	d.order = append(d.order, id)
	d.attached++

	released := false
	return func() {
		if released {
			return
		}
		released = true
		d.remove(id)
	}
}

func (d *Document) remove(id int) {
	if _, ok := d.listeners[id]; !ok {
		return
	}
	delete(d.listeners, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.detached++
}

// Dispatch delivers a click. The target handler, when given, runs first,
// then every listener that was subscribed when the click arrived and is
// still subscribed. Listeners added while dispatching do not see the click.
func (d *Document) Dispatch(event ClickEvent, target func()) {
	arrived := make([]int, len(d.order))
	copy(arrived, d.order)

	if target != nil {
		target()
	}

	for _, id := range arrived {
		listener, ok := d.listeners[id]
		if !ok {
			continue
		}
		listener(event)
	}
}

// Listeners returns the number of active subscriptions.
func (d *Document) Listeners() int {
	return len(d.listeners)
}

// Stats returns how many subscriptions were ever attached and detached.
func (d *Document) Stats() (attached, detached int) {
	return d.attached, d.detached
}
