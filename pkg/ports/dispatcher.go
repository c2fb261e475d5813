package ports

// Dispatcher delivers work onto the logical thread that owns the flow state.
// Asynchronous results are never applied outside of a dispatched function.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}
