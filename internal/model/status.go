package model

// Status is the review state of a document.
type Status uint8

const (
	StatusPending Status = iota
	StatusApproved
	StatusRequested
	StatusRejected
	statusCount
)

var statusNames = [...]string{
	StatusPending:   "pending",
	StatusApproved:  "approved",
	StatusRequested: "requested",
	StatusRejected:  "rejected",
}

// Fails to compile when a status is added without a name.
var _ = [1]struct{}{}[len(statusNames)-int(statusCount)]

// Statuses lists every status in declaration order.
func Statuses() []Status {
	out := make([]Status, 0, statusCount)
	for s := Status(0); s < statusCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s Status) String() string { return enumName(statusNames[:], s) }

// ParseStatus converts the wire name of a status.
func ParseStatus(v string) (Status, error) {
	return parseEnum[Status]("status", statusNames[:], v)
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Unreviewed reports whether the status still waits on the firm or the client.
func (s Status) Unreviewed() bool {
	return s == StatusPending || s == StatusRequested
}
