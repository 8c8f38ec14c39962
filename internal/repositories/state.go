package repositories

// State is the loading state of a repository.
type State int

const (
	// StateIdle means no fetch is in flight and the last fetch succeeded or none has run yet.
	StateIdle State = iota
	// StateLoading means at least one fetch is in flight.
	StateLoading
	// StateFailed means no fetch is in flight and the last completed list fetch failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state as its name in JSON and YAML.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
