package starframe

// ColliderPair is an unordered pair of collider handles, normalized so
// the pair built from (a, b) equals the one built from (b, a). Mirrors
// feather/trigger.go's pairKey, generalized from a pointer-identity
// comparison (ptrA < ptrB via unsafe.Pointer) to a handle comparison,
// since *RigidBody pointers don't exist here — colliders are addressed
// by generational ColliderKey.
type ColliderPair struct {
	A, B ColliderKey
}

func makeColliderPair(a, b ColliderKey) ColliderPair {
	if less(b.h, a.h) {
		a, b = b, a
	}
	return ColliderPair{A: a, B: b}
}

func less(a, b Handle) bool {
	if a.slot != b.slot {
		return a.slot < b.slot
	}
	return a.generation < b.generation
}

// TickReport summarizes the contact and sleep/wake transitions one Tick
// produced, as plain data. feather/trigger.go instead dispatched through
// registered listeners carrying *RigidBody payloads; this follows the
// design notes' own recommendation ("a cleaner design passes contact
// events out of tick as data and lets the caller route them") and drops
// the listener/buffer/Event-interface machinery accordingly.
type TickReport struct {
	CollisionsStarted, CollisionsPersisted, CollisionsEnded []ColliderPair
	TriggersStarted, TriggersPersisted, TriggersEnded        []ColliderPair
	Slept, Woke                                              []BodyKey
}

// eventTracker holds the pair/sleep bookkeeping that has to survive
// between ticks for Enter/Stay/Exit to be distinguishable. Adapted from
// feather/trigger.go's Events{previousActivePairs, currentActivePairs,
// sleepStates}.
type eventTracker struct {
	previousActive map[ColliderPair]bool
	currentActive  map[ColliderPair]bool
	sleepStates    map[BodyKey]bool
}

func newEventTracker() eventTracker {
	return eventTracker{
		previousActive: make(map[ColliderPair]bool),
		currentActive:  make(map[ColliderPair]bool),
		sleepStates:    make(map[BodyKey]bool),
	}
}

// recordActive marks pair as having produced at least one contact this
// tick. Mirrors Events.recordCollisions's currentActivePairs[pair] = true.
func (e *eventTracker) recordActive(pair ColliderPair) {
	e.currentActive[pair] = true
}

// forgetCollider drops every previous-tick pair mentioning key, called
// when a collider is removed so a stale pair can't fire a phantom Exit
// against a now-meaningless handle. Mirrors World.RemoveBody's
// previousActivePairs cleanup.
func (e *eventTracker) forgetCollider(key ColliderKey) {
	for pair := range e.previousActive {
		if pair.A == key || pair.B == key {
			delete(e.previousActive, pair)
		}
	}
}

func (e *eventTracker) forgetBody(key BodyKey) {
	delete(e.sleepStates, key)
}

// flushPairs classifies this tick's active pairs against last tick's
// into start/persist/end, split into collision vs. trigger buckets by
// isTrigger, then rotates the active-pair buffers for next tick.
// Mirrors Events.processCollisionEvents, generalized from hardcoded
// Enter/Stay/Exit event structs to plain slice buckets.
func (e *eventTracker) flushPairs(isTrigger func(ColliderPair) bool) (startedC, persistedC, endedC, startedT, persistedT, endedT []ColliderPair) {
	for pair := range e.currentActive {
		trig := isTrigger(pair)
		switch {
		case e.previousActive[pair] && trig:
			persistedT = append(persistedT, pair)
		case e.previousActive[pair]:
			persistedC = append(persistedC, pair)
		case trig:
			startedT = append(startedT, pair)
		default:
			startedC = append(startedC, pair)
		}
	}
	for pair := range e.previousActive {
		if e.currentActive[pair] {
			continue
		}
		if isTrigger(pair) {
			endedT = append(endedT, pair)
		} else {
			endedC = append(endedC, pair)
		}
	}

	e.previousActive, e.currentActive = e.currentActive, e.previousActive
	clear(e.currentActive)
	return
}

// flushSleep reports which of bodies changed sleep state since the last
// call, treating the first observation of a body as a baseline rather
// than an event. Mirrors Events.processSleepEvents.
func (e *eventTracker) flushSleep(bodies []BodyKey, isSleeping func(BodyKey) bool) (slept, woke []BodyKey) {
	for _, b := range bodies {
		now := isSleeping(b)
		prev, tracked := e.sleepStates[b]
		if !tracked {
			e.sleepStates[b] = now
			continue
		}
		if !prev && now {
			slept = append(slept, b)
			e.sleepStates[b] = true
		} else if prev && !now {
			woke = append(woke, b)
			e.sleepStates[b] = false
		}
	}
	return
}
