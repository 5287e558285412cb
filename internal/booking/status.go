package booking

import "fmt"

type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCanceled  Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusConfirmed, StatusDone, StatusCanceled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusNew:       {StatusConfirmed: true, StatusCanceled: true},
	StatusConfirmed: {StatusDone: true, StatusCanceled: true},
	StatusDone:      {},
	StatusCanceled:  {},
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}
