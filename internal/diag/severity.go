package diag

// Severity orders diagnostics; Bag.HasErrors looks for SevError and above.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// label is the lower-case form used by the short one-line format.
func (s Severity) label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
