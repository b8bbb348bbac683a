package models

// SessionEvent is the closed union of notifications a session emits to its
// observers. The unexported marker keeps the set closed to this package.
type SessionEvent interface {
	sessionEvent()
}

// LoadStarted fires when loadInitial or loadMore begins.
type LoadStarted struct {
	Initial bool
}

// LoadCompleted fires after a successful load, with the number of items
// appended this round and the new accumulated total.
type LoadCompleted struct {
	Appended int
	Total    int
}

// LoadFailed fires when a load surfaces an error to the caller.
type LoadFailed struct {
	Err error
}

// FiltersChanged fires after a synchronous filter or sort recompute.
type FiltersChanged struct{}

// SessionReset fires when loadInitial discards the previous accumulated set.
type SessionReset struct {
	Query string
}

func (LoadStarted) sessionEvent()    {}
func (LoadCompleted) sessionEvent()  {}
func (LoadFailed) sessionEvent()     {}
func (FiltersChanged) sessionEvent() {}
func (SessionReset) sessionEvent()   {}
