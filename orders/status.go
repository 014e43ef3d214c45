package orders

// Status is one step in an order's fulfillment machine. Delivery and
// pickup orders walk separate linear sequences with no branching and no
// back-transitions.
type Status string

const (
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusDelivering     Status = "delivering"
	StatusDelivered      Status = "delivered"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusPickedUp       Status = "picked_up"
)

// InitialStatus is where every placed order starts, for both types.
const InitialStatus = StatusConfirmed

var deliverySequence = []Status{
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivering,
	StatusDelivered,
}

var pickupSequence = []Status{
	StatusConfirmed,
	StatusPreparing,
	StatusReadyForPickup,
	StatusPickedUp,
}

// Sequence returns the status progression for the given type.
func Sequence(t OrderType) []Status {
	if t == TypePickup {
		return pickupSequence
	}
	return deliverySequence
}

// MaxStep is the 1-based index of the terminal status.
func MaxStep(t OrderType) int {
	return len(Sequence(t))
}

// StepFor maps a status to its 1-based step. Unknown statuses degrade
// to step 1 rather than failing.
func StepFor(s Status, t OrderType) int {
	for i, known := range Sequence(t) {
		if known == s {
			return i + 1
		}
	}
	return 1
}

// StatusForStep maps a 1-based step back to its status. Out-of-range
// steps degrade to the initial status.
func StatusForStep(step int, t OrderType) Status {
	seq := Sequence(t)
	if step < 1 || step > len(seq) {
		return InitialStatus
	}
	return seq[step-1]
}

// Next returns the status one step further along, or false when the
// order is already at its terminal status.
func Next(s Status, t OrderType) (Status, bool) {
	step := StepFor(s, t)
	if step >= MaxStep(t) {
		return s, false
	}
	return StatusForStep(step+1, t), true
}

// TerminalFor reports whether the status completes an order of the
// given type.
func (s Status) TerminalFor(t OrderType) bool {
	seq := Sequence(t)
	return s == seq[len(seq)-1]
}

// Label is the human-readable form shown in tracking views.
func (s Status) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusPreparing:
		return "Preparing"
	case StatusReady:
		return "Ready"
	case StatusReadyForPickup:
		return "Ready for Pickup"
	case StatusDelivering:
		return "On the Way"
	case StatusDelivered:
		return "Delivered"
	case StatusPickedUp:
		return "Picked Up"
	default:
		return "Processing"
	}
}

// EstimatedTime is the display string for a (status, type) pair. The
// mapping is total: unknown statuses fall back to the initial estimate.
func EstimatedTime(s Status, t OrderType) string {
	if t == TypePickup {
		switch s {
		case StatusConfirmed:
			return "20-30 minutes"
		case StatusPreparing:
			return "10-20 minutes"
		case StatusReadyForPickup:
			return "Ready for pickup"
		case StatusPickedUp:
			return "Picked up"
		default:
			return "20-30 minutes"
		}
	}

	switch s {
	case StatusConfirmed:
		return "35-45 minutes"
	case StatusPreparing:
		return "25-35 minutes"
	case StatusReady:
		return "15-20 minutes"
	case StatusDelivering:
		return "5-10 minutes"
	case StatusDelivered:
		return "Delivered"
	default:
		return "35-45 minutes"
	}
}
