package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is reported but does not fail a run.
	SevWarning Severity = iota + 1
	// SevError fails a run.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
