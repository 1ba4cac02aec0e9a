package starframe

import (
	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/island"
	"github.com/starframe/starframe/mathf"
	"github.com/starframe/starframe/narrowphase"
	"github.com/starframe/starframe/query"
	"github.com/starframe/starframe/solver"
	"github.com/starframe/starframe/spatial"
)

// colliderEntry is one collider and the body it rides on. A collider
// carries no local offset of its own, so its world pose is always just
// its body's Pose.
type colliderEntry struct {
	shape collider.Collider
	body  BodyKey
}

// constraintEntry is a user-added two-body constraint. ownedAnchor is
// set when bodyA or bodyB is a hidden static body Physics inserted for
// AddWorldAttachment, so RemoveConstraint can free it too.
type constraintEntry struct {
	c            solver.Constraint
	bodyA, bodyB BodyKey
	ownedAnchor  *BodyKey
}

type ropeEntry struct {
	rope   *solver.Rope
	bodies []BodyKey
}

// CastHit is the nearest collider QueryRay found along a ray, and the
// ray parameter t at which it was hit.
type CastHit struct {
	Collider ColliderKey
	T        float64
}

// Physics is the simulation façade: generational arenas of bodies,
// colliders, constraints and ropes, a broad-phase grid, and the
// sub-stepped solver pipeline Tick drives across them. Grounded on
// feather/world.go's World{Bodies, Gravity, Substeps, SpatialGrid,
// Workers, Events}/Step(dt), generalized from a flat body slice to
// arenas so callers get stable handles across add/remove, per
// spec.md §4.7/§6.
type Physics struct {
	params Params

	bodies      arena[*solver.Body]
	colliders   arena[colliderEntry]
	constraints arena[constraintEntry]
	ropes       arena[ropeEntry]

	grid        *spatial.Grid
	gridHandles map[int]ColliderKey

	events      eventTracker
	lastIslands [][]BodyKey
}

// New builds an empty Physics world configured by params.
func New(params Params) *Physics {
	return &Physics{
		params:      params,
		grid:        spatial.NewGrid(params.GridBaseCellSize, params.GridLevels, params.GridGrowthFactor),
		gridHandles: make(map[int]ColliderKey),
		events:      newEventTracker(),
	}
}

// AddBody inserts body into the world and returns its handle.
func (p *Physics) AddBody(body *solver.Body) BodyKey {
	return BodyKey{h: p.bodies.insert(body)}
}

// RemoveBody removes body. Colliders, constraints and ropes still
// referencing it are left to the caller to remove first; Tick skips
// any entry whose body handle has gone stale.
func (p *Physics) RemoveBody(key BodyKey) bool {
	ok := p.bodies.remove(key.h)
	if ok {
		p.events.forgetBody(key)
	}
	return ok
}

// Body resolves key to its body, if key is still live.
func (p *Physics) Body(key BodyKey) (*solver.Body, bool) {
	return p.bodies.get(key.h)
}

// AddCollider attaches shape to body. Reports ok=false if body is not
// a live handle.
func (p *Physics) AddCollider(body BodyKey, shape collider.Collider) (ColliderKey, bool) {
	if _, ok := p.bodies.get(body.h); !ok {
		return ColliderKey{}, false
	}
	h := p.colliders.insert(colliderEntry{shape: shape, body: body})
	return ColliderKey{h: h}, true
}

// Collider resolves key to its shape and owning body, if key is live.
func (p *Physics) Collider(key ColliderKey) (collider.Collider, BodyKey, bool) {
	entry, ok := p.colliders.get(key.h)
	if !ok {
		return collider.Collider{}, BodyKey{}, false
	}
	return entry.shape, entry.body, true
}

// RemoveCollider detaches a collider, clearing any pair history that
// mentions it so a stale pair can't fire a phantom Exit event next
// tick.
func (p *Physics) RemoveCollider(key ColliderKey) bool {
	ok := p.colliders.remove(key.h)
	if ok {
		p.events.forgetCollider(key)
	}
	return ok
}

// AddConstraint links bodyA's and bodyB's local anchors by a min/max
// world-space distance range, going slack outside that window.
// Min == Max == 0 gives a rigid pin. See AddWorldAttachment for the
// single-body case spec.md §3 calls out for mouse-grab-style use.
func (p *Physics) AddConstraint(bodyA, bodyB BodyKey, localAnchorA, localAnchorB mathf.Vec2, min, max, compliance float64) (ConstraintKey, bool) {
	a, ok := p.bodies.get(bodyA.h)
	if !ok {
		return ConstraintKey{}, false
	}
	b, ok := p.bodies.get(bodyB.h)
	if !ok {
		return ConstraintKey{}, false
	}
	dc := solver.NewDistanceConstraint(a, b, localAnchorA, localAnchorB, min, max, compliance)
	h := p.constraints.insert(constraintEntry{c: dc, bodyA: bodyA, bodyB: bodyB})
	return ConstraintKey{h: h}, true
}

// AddWorldAttachment pins body's local anchor to a fixed world-space
// point. Realized as a distance constraint against a hidden static
// body planted at worldPoint and inserted into the same body arena as
// any other body, since the solver and island-builder both operate
// uniformly over body handles rather than special-casing a one-body
// link.
func (p *Physics) AddWorldAttachment(body BodyKey, localAnchor, worldPoint mathf.Vec2, compliance float64) (ConstraintKey, bool) {
	b, ok := p.bodies.get(body.h)
	if !ok {
		return ConstraintKey{}, false
	}
	anchor := solver.NewStaticBody(mathf.NewPose(worldPoint, mathf.Identity2()))
	anchorKey := BodyKey{h: p.bodies.insert(anchor)}
	dc := solver.NewDistanceConstraint(anchor, b, mathf.Zero2(), localAnchor, 0, 0, compliance)
	h := p.constraints.insert(constraintEntry{c: dc, bodyA: anchorKey, bodyB: body, ownedAnchor: &anchorKey})
	return ConstraintKey{h: h}, true
}

// RemoveConstraint detaches a constraint, freeing its hidden anchor
// body too if it was an AddWorldAttachment.
func (p *Physics) RemoveConstraint(key ConstraintKey) bool {
	entry, ok := p.constraints.get(key.h)
	if !ok {
		return false
	}
	p.constraints.remove(key.h)
	if entry.ownedAnchor != nil {
		p.bodies.remove(entry.ownedAnchor.h)
	}
	return true
}

// AddRope links bodies end to end with distance-constraint segments of
// the given rest length, each allowed to stretch up to maxStretch past
// that length (0 is inextensible), softened by compliance, with
// bendDamping resisting sharp curling between every pair of bodies two
// segments apart. bodies must already exist (e.g. via AddBody): a rope
// holds handles to bodies the caller owns, rather than hidden particles
// of its own, per spec.md §3.
func (p *Physics) AddRope(bodies []BodyKey, segmentLength, maxStretch, compliance, bendDamping float64) (RopeKey, bool) {
	solverBodies := make([]*solver.Body, len(bodies))
	for i, k := range bodies {
		b, ok := p.bodies.get(k.h)
		if !ok {
			return RopeKey{}, false
		}
		solverBodies[i] = b
	}
	rope := solver.NewRope(solverBodies, segmentLength, maxStretch, compliance, bendDamping)
	h := p.ropes.insert(ropeEntry{rope: rope, bodies: append([]BodyKey(nil), bodies...)})
	return RopeKey{h: h}, true
}

// RemoveRope detaches a rope. Its bodies are left in the world; only
// the segment constraints linking them go away.
func (p *Physics) RemoveRope(key RopeKey) bool {
	return p.ropes.remove(key.h)
}

// Tick advances the simulation by dt seconds, sub-stepped per
// p.params. forces is sampled once per body this tick (not once per
// sub-step, mirroring feather/actor.RigidBody.AddForce's
// accumulate-then-clear-on-first-predict semantics) before broad
// phase, narrow phase, island-building and the sub-stepped solve run.
// A nil forces is treated as NoForces. Mirrors feather/world.go's
// Step(dt), generalized from one flat body slice and a single
// constraint kind to arenas partitioned into islands and solved with
// contacts, attachments, ropes and user constraints kept in their own
// categories.
func (p *Physics) Tick(dt float64, forces ForceField) TickReport {
	if forces == nil {
		forces = NoForces
	}

	numSlots := p.bodies.slotCount()
	bodySlots := make([]*solver.Body, numSlots)
	bodyKeyBySlot := make([]BodyKey, numSlots)
	p.bodies.each(func(h Handle, b *solver.Body) {
		bodySlots[h.slot] = b
		bodyKeyBySlot[h.slot] = BodyKey{h: h}
		if f := forces.Force(BodyKey{h: h}, b); f != mathf.Zero2() {
			b.AddForce(f)
		}
	})

	isAnchor := func(slot int) bool {
		b := bodySlots[slot]
		return b == nil || b.IsAnchor()
	}

	p.rebuildGrid()

	links := make([]island.Link, 0)
	type contactLink struct {
		pair         ColliderPair
		cc           *solver.ContactConstraint
		slotA, slotB int
	}
	var contactLinks []contactLink

	for _, gp := range p.grid.Pairs() {
		keyA, okA := p.gridHandles[gp.A]
		keyB, okB := p.gridHandles[gp.B]
		if !okA || !okB {
			continue
		}
		entryA, okA := p.colliders.get(keyA.h)
		entryB, okB := p.colliders.get(keyB.h)
		if !okA || !okB || entryA.body == entryB.body {
			continue
		}
		if !collider.CanCollideWith(entryA.shape, entryB.shape) {
			continue
		}
		bodyA, okA := p.bodies.get(entryA.body.h)
		bodyB, okB := p.bodies.get(entryB.body.h)
		if !okA || !okB {
			continue
		}

		result := narrowphase.Intersect([2]mathf.Pose{bodyA.Pose, bodyB.Pose}, [2]collider.Collider{entryA.shape, entryB.shape})
		if result.IsZero() {
			continue
		}

		pair := makeColliderPair(keyA, keyB)
		p.events.recordActive(pair)

		if entryA.shape.Kind == collider.Trigger || entryB.shape.Kind == collider.Trigger {
			continue
		}

		slotA, slotB := entryA.body.h.slot, entryB.body.h.slot
		cc := solver.NewContactConstraint(bodyA, bodyB, result.Contacts())
		contactLinks = append(contactLinks, contactLink{pair: pair, cc: cc, slotA: slotA, slotB: slotB})
		links = append(links, island.Link{A: slotA, B: slotB})
	}

	p.constraints.each(func(_ Handle, entry constraintEntry) {
		if _, ok := p.bodies.get(entry.bodyA.h); !ok {
			return
		}
		if _, ok := p.bodies.get(entry.bodyB.h); !ok {
			return
		}
		links = append(links, island.Link{A: entry.bodyA.h.slot, B: entry.bodyB.h.slot})
	})

	p.ropes.each(func(_ Handle, entry ropeEntry) {
		for _, k := range entry.bodies {
			if bodyKeyBySlot[k.h.slot] != k {
				return
			}
		}
		for i := 0; i+1 < len(entry.bodies); i++ {
			links = append(links, island.Link{A: entry.bodies[i].h.slot, B: entry.bodies[i+1].h.slot})
		}
	})

	rawIslands := island.Build(numSlots, isAnchor, links)

	islandOf := make(map[int]int, numSlots)
	solverIslands := make([]*solver.Island, len(rawIslands))
	lastIslands := make([][]BodyKey, len(rawIslands))
	for i, isl := range rawIslands {
		bodies := make([]*solver.Body, 0, len(isl.Bodies))
		keys := make([]BodyKey, 0, len(isl.Bodies))
		for _, slot := range isl.Bodies {
			b := bodySlots[slot]
			if b == nil {
				continue
			}
			bodies = append(bodies, b)
			keys = append(keys, bodyKeyBySlot[slot])
			if !b.IsAnchor() {
				islandOf[slot] = i
			}
		}
		solverIslands[i] = &solver.Island{Bodies: bodies}
		lastIslands[i] = keys
	}
	p.lastIslands = lastIslands

	islandFor := func(slotA, slotB int) (int, bool) {
		if idx, ok := islandOf[slotA]; ok {
			return idx, true
		}
		if idx, ok := islandOf[slotB]; ok {
			return idx, true
		}
		return 0, false
	}

	for _, cl := range contactLinks {
		if idx, ok := islandFor(cl.slotA, cl.slotB); ok {
			solverIslands[idx].Contacts = append(solverIslands[idx].Contacts, cl.cc)
		}
	}

	p.constraints.each(func(_ Handle, entry constraintEntry) {
		if bodyKeyBySlot[entry.bodyA.h.slot] != entry.bodyA || bodyKeyBySlot[entry.bodyB.h.slot] != entry.bodyB {
			return
		}
		idx, ok := islandFor(entry.bodyA.h.slot, entry.bodyB.h.slot)
		if !ok {
			return
		}
		if dc, isDist := entry.c.(*solver.DistanceConstraint); isDist {
			solverIslands[idx].Attachments = append(solverIslands[idx].Attachments, dc)
		} else {
			solverIslands[idx].User = append(solverIslands[idx].User, entry.c)
		}
	})

	p.ropes.each(func(_ Handle, entry ropeEntry) {
		for _, k := range entry.bodies {
			if bodyKeyBySlot[k.h.slot] != k {
				return
			}
		}
		var idx int
		var ok bool
		for _, k := range entry.bodies {
			if idx, ok = islandOf[k.h.slot]; ok {
				break
			}
		}
		if !ok {
			return
		}
		solverIslands[idx].Ropes = append(solverIslands[idx].Ropes, entry.rope)
	})

	sp := solver.Params{
		Gravity:          p.params.Gravity,
		Substeps:         p.params.Substeps,
		Iterations:       p.params.Iterations,
		SleepVelocityEps: p.params.SleepVelocityEps,
		SleepTime:        p.params.SleepTime,
	}
	task(p.params.Workers, solverIslands, func(isl *solver.Island) {
		solver.Tick(isl, dt, sp)
		solver.UpdateSleep(isl, dt, sp)
	})

	isTrigger := func(pair ColliderPair) bool {
		entryA, okA := p.colliders.get(pair.A.h)
		entryB, okB := p.colliders.get(pair.B.h)
		if !okA || !okB {
			return false
		}
		return entryA.shape.Kind == collider.Trigger || entryB.shape.Kind == collider.Trigger
	}
	startedC, persistedC, endedC, startedT, persistedT, endedT := p.events.flushPairs(isTrigger)

	sleepKeys := make([]BodyKey, 0, numSlots)
	for slot, b := range bodySlots {
		if b != nil {
			sleepKeys = append(sleepKeys, bodyKeyBySlot[slot])
		}
	}
	slept, woke := p.events.flushSleep(sleepKeys, func(k BodyKey) bool {
		b, ok := p.bodies.get(k.h)
		return ok && b.Sleeping
	})

	return TickReport{
		CollisionsStarted:   startedC,
		CollisionsPersisted: persistedC,
		CollisionsEnded:     endedC,
		TriggersStarted:     startedT,
		TriggersPersisted:   persistedT,
		TriggersEnded:       endedT,
		Slept:               slept,
		Woke:                woke,
	}
}

// rebuildGrid repopulates the broad-phase grid from every live
// collider's current world AABB, replacing last tick's contents.
func (p *Physics) rebuildGrid() {
	p.grid.Clear()
	for k := range p.gridHandles {
		delete(p.gridHandles, k)
	}
	p.colliders.each(func(h Handle, entry colliderEntry) {
		body, ok := p.bodies.get(entry.body.h)
		if !ok {
			return
		}
		min, max := collider.WorldAABB(body.Pose, entry.shape)
		p.grid.Insert(h.slot, spatial.AABB{Min: min, Max: max})
		p.gridHandles[h.slot] = ColliderKey{h: h}
	})
}

// Islands reports the most recent Tick's island partition as groups of
// body handles, for debug visualization per spec.md §6.
func (p *Physics) Islands() [][]BodyKey {
	return p.lastIslands
}

// QueryPoint returns every live collider whose shape contains point in
// world space, narrowed first by the broad-phase grid populated during
// the last Tick.
func (p *Physics) QueryPoint(point mathf.Vec2) []ColliderKey {
	box := spatial.AABB{Min: point, Max: point}
	var out []ColliderKey
	for _, g := range p.grid.Query(box) {
		key, ok := p.gridHandles[g]
		if !ok {
			continue
		}
		entry, ok := p.colliders.get(key.h)
		if !ok {
			continue
		}
		body, ok := p.bodies.get(entry.body.h)
		if !ok {
			continue
		}
		if query.PointCollider(point, body.Pose, entry.shape) {
			out = append(out, key)
		}
	}
	return out
}

// QueryAABB returns every live collider whose world AABB overlaps box.
func (p *Physics) QueryAABB(box spatial.AABB) []ColliderKey {
	var out []ColliderKey
	for _, g := range p.grid.Query(box) {
		key, ok := p.gridHandles[g]
		if !ok {
			continue
		}
		entry, ok := p.colliders.get(key.h)
		if !ok {
			continue
		}
		body, ok := p.bodies.get(entry.body.h)
		if !ok {
			continue
		}
		min, max := collider.WorldAABB(body.Pose, entry.shape)
		if box.Overlaps(spatial.AABB{Min: min, Max: max}) {
			out = append(out, key)
		}
	}
	return out
}

// QueryRay casts ray up to maxT and returns the nearest collider it
// hits, if any.
func (p *Physics) QueryRay(ray mathf.Ray, maxT float64) (CastHit, bool) {
	end := ray.PointAtT(maxT)
	box := spatial.AABB{
		Min: mathf.Vec2{min(ray.Start[0], end[0]), min(ray.Start[1], end[1])},
		Max: mathf.Vec2{max(ray.Start[0], end[0]), max(ray.Start[1], end[1])},
	}

	var best CastHit
	found := false
	for _, g := range p.grid.Query(box) {
		key, ok := p.gridHandles[g]
		if !ok {
			continue
		}
		entry, ok := p.colliders.get(key.h)
		if !ok {
			continue
		}
		body, ok := p.bodies.get(entry.body.h)
		if !ok {
			continue
		}
		t, hit := query.RayCollider(ray, body.Pose, entry.shape)
		if !hit || t > maxT || t < 0 {
			continue
		}
		if !found || t < best.T {
			best = CastHit{Collider: key, T: t}
			found = true
		}
	}
	return best, found
}
