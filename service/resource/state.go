package resource

// State describes where an asynchronous load currently stands.
type State int

const (
	// StateUnknown means the URL was never requested.
	StateUnknown State = iota
	// StateLoading means the download is in flight.
	StateLoading
	// StateLoaded means the payload is available.
	StateLoaded
	// StateFailed means the download ended with an error.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
