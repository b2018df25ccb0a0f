package state

// Computed derives a presentation value from other cells, recomputing
// whenever any of them notifies. Adapters publish raw platform state
// into signals; a Computed layers derived state on top, such as a
// status line over a size cell and a connectivity cell.
type Computed[T any] struct {
	out     *Signal[T]
	compute func() T
	deps    *Subscriptions
	sched   Scheduler
}

// NewComputed derives a cell from compute over deps, recomputing
// synchronously on every dependency change.
func NewComputed[T any](compute func() T, deps ...Subscribable) *Computed[T] {
	return NewComputedWithScheduler(nil, compute, deps...)
}

// NewComputedWithScheduler derives a cell whose recomputes are routed
// through scheduler, typically a Queue flushed once per render pass. A
// nil scheduler recomputes synchronously.
func NewComputedWithScheduler[T any](scheduler Scheduler, compute func() T, deps ...Subscribable) *Computed[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	c := &Computed[T]{
		out:     NewSignal(compute()),
		compute: compute,
		deps:    NewSubscriptions(),
		sched:   scheduler,
	}
	for _, dep := range deps {
		c.deps.Subscribe(dep, c.invalidate)
	}
	return c
}

// SetEqualFunc configures the equality check used to suppress redundant
// recompute notifications.
func (c *Computed[T]) SetEqualFunc(fn EqualFunc[T]) {
	if c == nil {
		return
	}
	c.out.SetEqualFunc(fn)
}

// Get returns the current derived value.
func (c *Computed[T]) Get() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.out.Get()
}

// Subscribe registers a listener for change notifications.
func (c *Computed[T]) Subscribe(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.out.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
// If scheduler is nil, callbacks run synchronously.
func (c *Computed[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.out.SubscribeWithScheduler(scheduler, fn)
}

// Stop detaches from every dependency. The cell keeps its last value.
func (c *Computed[T]) Stop() {
	if c == nil {
		return
	}
	c.deps.Clear()
}

func (c *Computed[T]) recompute() {
	c.out.Set(c.compute())
}

func (c *Computed[T]) invalidate() {
	if c.sched == nil {
		c.recompute()
		return
	}
	c.sched.Schedule(c.recompute)
}
