package session

// Store tracks named parameters and notifies listeners synchronously whenever
// one of them changes. It is not safe for concurrent use.
type Store struct {
	listeners []func(name string)
}

// NewStore creates an empty parameter store
func NewStore() *Store {
	return &Store{}
}

// OnChange registers a listener called after every effective parameter write
func (s *Store) OnChange(fn func(name string)) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(name string) {
	for _, fn := range s.listeners {
		fn(name)
	}
}

// Param is a named value with a setter. Every effective write bumps the version.
type Param[T comparable] struct {
	store   *Store
	name    string
	value   T
	version uint64
}

// NewParam registers a parameter on the store with its default value
func NewParam[T comparable](store *Store, name string, value T) *Param[T] {
	return &Param[T]{
		store: store,
		name:  name,
		value: value,
	}
}

// Name returns the parameter name
func (p *Param[T]) Name() string {
	return p.name
}

// Get returns the current value
func (p *Param[T]) Get() T {
	return p.value
}

// Set stores v. Writing the current value again is a no-op.
func (p *Param[T]) Set(v T) {
	if p.value == v {
		return
	}
	p.value = v
	p.version++
	if p.store != nil {
		p.store.notify(p.name)
	}
}

// Version returns how many effective writes the parameter has seen
func (p *Param[T]) Version() uint64 {
	return p.version
}

// Derived holds a value computed from a source parameter. The value is
// re-derived only when the source changes; in between it can be overridden
// with Set and keeps the override.
type Derived[S comparable, T comparable] struct {
	store       *Store
	name        string
	source      *Param[S]
	derive      func(S) T
	value       T
	derivedFrom uint64
	synced      bool
}

// NewDerived creates a derived parameter bound to source
func NewDerived[S comparable, T comparable](store *Store, name string, source *Param[S], derive func(S) T) *Derived[S, T] {
	d := &Derived[S, T]{
		store:  store,
		name:   name,
		source: source,
		derive: derive,
	}
	d.sync()
	return d
}

// Name returns the parameter name
func (d *Derived[S, T]) Name() string {
	return d.name
}

// Get returns the held value, re-deriving first if the source moved on
func (d *Derived[S, T]) Get() T {
	d.sync()
	return d.value
}

// Set overrides the derived value until the source changes again
func (d *Derived[S, T]) Set(v T) {
	d.sync()
	if d.value == v {
		return
	}
	d.value = v
	if d.store != nil {
		d.store.notify(d.name)
	}
}

func (d *Derived[S, T]) sync() {
	if d.synced && d.derivedFrom == d.source.Version() {
		return
	}
	d.value = d.derive(d.source.Get())
	d.derivedFrom = d.source.Version()
	d.synced = true
}
