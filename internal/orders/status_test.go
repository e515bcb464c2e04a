package orders_test

import (
	"testing"

	"github.com/savoria-erp/savoria/internal/orders"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		from  orders.Status
		to    orders.Status
		actor orders.Actor
		ok    bool
	}{
		{"staff confirms", orders.StatusPlaced, orders.StatusConfirmed, orders.ActorStaff, true},
		{"staff starts prep", orders.StatusConfirmed, orders.StatusPreparing, orders.ActorStaff, true},
		{"staff marks ready", orders.StatusPreparing, orders.StatusReady, orders.ActorStaff, true},
		{"staff delivers", orders.StatusReady, orders.StatusDelivered, orders.ActorStaff, true},
		{"staff cancels confirmed", orders.StatusConfirmed, orders.StatusCancelled, orders.ActorStaff, true},
		{"customer cancels placed", orders.StatusPlaced, orders.StatusCancelled, orders.ActorCustomer, true},
		{"customer cancels confirmed", orders.StatusConfirmed, orders.StatusCancelled, orders.ActorCustomer, true},
		{"customer cannot cancel preparing", orders.StatusPreparing, orders.StatusCancelled, orders.ActorCustomer, false},
		{"customer cannot confirm", orders.StatusPlaced, orders.StatusConfirmed, orders.ActorCustomer, false},
		{"no skipping ahead", orders.StatusPlaced, orders.StatusReady, orders.ActorStaff, false},
		{"no going back", orders.StatusReady, orders.StatusPreparing, orders.ActorStaff, false},
		{"delivered is terminal", orders.StatusDelivered, orders.StatusCancelled, orders.ActorStaff, false},
		{"cancelled is terminal", orders.StatusCancelled, orders.StatusConfirmed, orders.ActorStaff, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := orders.CanTransition(tc.from, tc.to, tc.actor)
			if tc.ok && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected %s %s->%s to be rejected", tc.actor, tc.from, tc.to)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"placed", "confirmed", "preparing", "ready", "delivered", "cancelled"} {
		if _, err := orders.ParseStatus(s); err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
	}
	if _, err := orders.ParseStatus("teleported"); err == nil {
		t.Fatalf("expected an unknown status to fail parsing")
	}
}

func TestNextStatuses(t *testing.T) {
	got := orders.NextStatuses(orders.StatusPlaced, orders.ActorStaff)
	if len(got) != 2 || got[0] != orders.StatusConfirmed || got[1] != orders.StatusCancelled {
		t.Fatalf("unexpected staff options from placed: %v", got)
	}
	got = orders.NextStatuses(orders.StatusPlaced, orders.ActorCustomer)
	if len(got) != 1 || got[0] != orders.StatusCancelled {
		t.Fatalf("unexpected customer options from placed: %v", got)
	}
	if got := orders.NextStatuses(orders.StatusDelivered, orders.ActorStaff); len(got) != 0 {
		t.Fatalf("expected no options from delivered, got %v", got)
	}
}
