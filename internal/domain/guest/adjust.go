package guest

type EventKind int

const (
	SetAdults EventKind = iota
	SetChildren
	SetBabies
)

type Event struct {
	Kind  EventKind
	Value int
}

// Adjust is the guest picker controller: it applies one event and returns a
// count that always satisfies Validate for l. When the requested side would
// overflow capacity, the other side gives way down to its floor
// (one adult, zero children).
func Adjust(state Count, l Limits, ev Event) Count {
	capacity := l.EffectiveCapacity()
	next := state

	switch ev.Kind {
	case SetAdults:
		next.Adults = clamp(ev.Value, 1, min(l.MaxAdults, capacity))
		next.Children = clamp(next.Children, 0, l.MaxChildren)
		if next.Occupants() > capacity {
			next.Children = max(0, capacity-next.Adults)
		}
	case SetChildren:
		next.Children = clamp(ev.Value, 0, min(l.MaxChildren, capacity-1))
		next.Adults = clamp(next.Adults, 1, min(l.MaxAdults, capacity))
		if next.Occupants() > capacity {
			next.Adults = max(1, capacity-next.Children)
		}
	case SetBabies:
		next.Babies = clamp(ev.Value, 0, MaxBabies)
		// The limits may belong to a newly picked room type; children give way first.
		next.Adults = clamp(next.Adults, 1, min(l.MaxAdults, capacity))
		next.Children = clamp(next.Children, 0, min(l.MaxChildren, capacity-next.Adults))
	}

	next.Babies = clamp(next.Babies, 0, MaxBabies)
	return next
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
