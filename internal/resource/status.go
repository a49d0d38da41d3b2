package resource

// Status is the status of a resource's most recent fetch attempt.
type Status int

const (
	Pending Status = iota
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
