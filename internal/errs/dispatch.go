package errs

import "sync"

// Handler consumes a classified error routed by kind.
type Handler func(*ClassifiedError)

// Dispatcher routes classified errors to at most one handler per kind.
// Instances are meant to be constructor-injected; Default exists for
// wiring at the application shell.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[ErrorKind]Handler
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[ErrorKind]Handler)}
}

// Register installs the handler for a kind, replacing any previous one.
// A nil handler removes the registration.
func (d *Dispatcher) Register(kind ErrorKind, fn Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if fn == nil {
		delete(d.handlers, kind)
		return
	}
	d.handlers[kind] = fn
}

// Dispatch invokes the handler registered for the error's kind, if any,
// and always returns the error so callers can chain it into a return.
// Each error instance is dispatched at most once: layers composing over
// a boundary that already dispatched (the retry helper over the API
// client) must not fire the handler a second time. Handler panics are
// not recovered. A nil error is passed through.
func (d *Dispatcher) Dispatch(err *ClassifiedError) *ClassifiedError {
	if err == nil {
		return nil
	}
	d.mu.Lock()
	if err.dispatched {
		d.mu.Unlock()
		return err
	}
	err.dispatched = true
	fn := d.handlers[err.Kind()]
	d.mu.Unlock()
	if fn != nil {
		fn(err)
	}
	return err
}

var defaultDispatcher = NewDispatcher()

// Default returns the process-wide dispatcher used when none is injected.
func Default() *Dispatcher { return defaultDispatcher }
