package usecase

// Outcome tells the caller what an intent did. Rejections are not errors: the
// front-end shows them only as the absence of a change.
type Outcome uint8

const (
	Applied Outcome = iota
	Ignored
	RejectedDuration
	RejectedTarget
	RejectedIndex
	RejectedOverflow
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Ignored:
		return "ignored"
	case RejectedDuration:
		return "rejected_duration"
	case RejectedTarget:
		return "rejected_target"
	case RejectedIndex:
		return "rejected_index"
	case RejectedOverflow:
		return "rejected_overflow"
	default:
		return "unknown"
	}
}

// OK reports whether state changed.
func (o Outcome) OK() bool { return o == Applied }
