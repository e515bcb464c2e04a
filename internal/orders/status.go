package orders

import "fmt"

// Status is an order's position in the fulfilment flow.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Actor identifies who is driving a status change.
type Actor string

const (
	ActorStaff    Actor = "staff"
	ActorCustomer Actor = "customer"
)

type transition struct {
	from  Status
	to    Status
	actor Actor
}

// validTransitions is the authoritative state machine. Staff move orders
// forward; a customer may only cancel before preparation starts.
var validTransitions = []transition{
	{StatusPlaced, StatusConfirmed, ActorStaff},
	{StatusPlaced, StatusCancelled, ActorStaff},
	{StatusPlaced, StatusCancelled, ActorCustomer},
	{StatusConfirmed, StatusPreparing, ActorStaff},
	{StatusConfirmed, StatusCancelled, ActorStaff},
	{StatusConfirmed, StatusCancelled, ActorCustomer},
	{StatusPreparing, StatusReady, ActorStaff},
	{StatusReady, StatusDelivered, ActorStaff},
}

var transitionSet = func() map[transition]struct{} {
	m := make(map[transition]struct{}, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = struct{}{}
	}
	return m
}()

// ParseStatus validates a stored status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("orders: unknown status %q", s)
}

// CanTransition reports whether the actor may move an order between the
// two statuses.
func CanTransition(from, to Status, actor Actor) error {
	if _, ok := transitionSet[transition{from, to, actor}]; ok {
		return nil
	}
	return fmt.Errorf("orders: %s may not move an order from %s to %s", actor, from, to)
}

// NextStatuses lists the statuses an actor can move to from the given one.
func NextStatuses(from Status, actor Actor) []Status {
	var out []Status
	seen := map[Status]bool{}
	for _, t := range validTransitions {
		if t.from == from && t.actor == actor && !seen[t.to] {
			out = append(out, t.to)
			seen[t.to] = true
		}
	}
	return out
}
