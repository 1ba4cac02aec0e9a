// Package graphsync bridges a starframe.Physics world to a graph.Graph
// scene: it keeps body handles in step with pose nodes and translates
// a tick's contact events into Event values naming the bound collider
// nodes; it writes no graph edges itself.
// Grounded on spec.md §4.8: "the sync component holds a map
// BodyKey ↔ WeakNodeRef<Pose>, and after each tick writes bodies'
// poses into the pose layer. Contact events carry the counterpart
// body's handle and, via the reverse map, fan out to per-collider
// event sinks (nodes connected one-way from the collider node)."
//
// Physics itself never imports graph: spec.md §9's own design note
// observes that passing contact events out of tick as plain data and
// letting the caller route them keeps the graph out of the physics
// package entirely. graphsync is that caller-side routing step.
package graphsync

import (
	"github.com/starframe/starframe"
	"github.com/starframe/starframe/graph"
	"github.com/starframe/starframe/mathf"
)

// Phase distinguishes the three transitions a tracked pair can report
// in one tick, mirroring starframe's Started/Persisted/Ended split
// across TickReport's six slices.
type Phase int

const (
	Started Phase = iota
	Persisted
	Ended
)

// Event is one contact or trigger transition translated from a
// TickReport into graph terms: the graph nodes bound (via
// BindCollider) to each side's collider. Events skip any pair where
// either side was never bound — a collider a caller never registered
// with Sync has no graph presence to route to.
type Event struct {
	Phase                Phase
	Trigger              bool
	NodeA, NodeB         graph.Key
	ColliderA, ColliderB starframe.ColliderKey
}

// Sync holds the bookkeeping that has to survive between ticks: which
// graph pose node backs which body, and which graph node a collider's
// events should fan out to.
type Sync struct {
	bodyToPose map[starframe.BodyKey]graph.WeakNodeRef[mathf.Pose]

	colliderNode map[starframe.ColliderKey]graph.Key
	nodeCollider map[graph.Key]starframe.ColliderKey
}

// New builds an empty Sync.
func New() *Sync {
	return &Sync{
		bodyToPose:   make(map[starframe.BodyKey]graph.WeakNodeRef[mathf.Pose]),
		colliderNode: make(map[starframe.ColliderKey]graph.Key),
		nodeCollider: make(map[graph.Key]starframe.ColliderKey),
	}
}

// BindBody associates body with the graph node holding its pose, so
// WriteBack can push the physics pose into it after each tick.
func (s *Sync) BindBody(body starframe.BodyKey, poseNode graph.NodeRef[mathf.Pose]) {
	s.bodyToPose[body] = poseNode.Downgrade()
}

// UnbindBody drops body's pose binding. Call this alongside
// Physics.RemoveBody so WriteBack stops chasing a handle that no
// longer resolves.
func (s *Sync) UnbindBody(body starframe.BodyKey) {
	delete(s.bodyToPose, body)
}

// BindCollider associates collider with a graph node, so RouteEvents
// can name that node in any Event mentioning collider. The caller
// connects whatever event-sink node it wants one-way from node itself
// with graph.ConnectOneway; Sync only needs node's identity to label
// events, not the sink's type.
func (s *Sync) BindCollider(collider starframe.ColliderKey, node graph.Key) {
	s.colliderNode[collider] = node
	s.nodeCollider[node] = collider
}

// UnbindCollider drops collider's node binding. Call this alongside
// Physics.RemoveCollider.
func (s *Sync) UnbindCollider(collider starframe.ColliderKey) {
	if node, ok := s.colliderNode[collider]; ok {
		delete(s.nodeCollider, node)
	}
	delete(s.colliderNode, collider)
}

// ColliderNode resolves a bound collider to its graph node key.
func (s *Sync) ColliderNode(collider starframe.ColliderKey) (graph.Key, bool) {
	k, ok := s.colliderNode[collider]
	return k, ok
}

// ColliderAt resolves a graph node back to the collider bound to it,
// the reverse direction RouteEvents doesn't need but scene code
// chasing an edge the other way does.
func (s *Sync) ColliderAt(node graph.Key) (starframe.ColliderKey, bool) {
	k, ok := s.nodeCollider[node]
	return k, ok
}

// WriteBack pushes every bound body's current pose into its graph
// node. Call once after Physics.Tick returns, per spec.md §4.8. A body
// whose handle has gone stale, or whose pose node has been deleted,
// is unbound rather than left to fail silently every future tick.
func (s *Sync) WriteBack(phys *starframe.Physics, poses *graph.Layer[mathf.Pose]) {
	for body, ref := range s.bodyToPose {
		b, ok := phys.Body(body)
		if !ok {
			delete(s.bodyToPose, body)
			continue
		}
		node, ok := ref.Upgrade(poses)
		if !ok {
			delete(s.bodyToPose, body)
			continue
		}
		node.Set(b.Pose)
	}
}

// RouteEvents translates report's six pair lists into Events naming
// the graph nodes bound to each collider.
func (s *Sync) RouteEvents(report starframe.TickReport) []Event {
	var out []Event
	add := func(pairs []starframe.ColliderPair, phase Phase, trigger bool) {
		for _, pair := range pairs {
			nodeA, okA := s.colliderNode[pair.A]
			nodeB, okB := s.colliderNode[pair.B]
			if !okA || !okB {
				continue
			}
			out = append(out, Event{
				Phase: phase, Trigger: trigger,
				NodeA: nodeA, NodeB: nodeB,
				ColliderA: pair.A, ColliderB: pair.B,
			})
		}
	}
	add(report.CollisionsStarted, Started, false)
	add(report.CollisionsPersisted, Persisted, false)
	add(report.CollisionsEnded, Ended, false)
	add(report.TriggersStarted, Started, true)
	add(report.TriggersPersisted, Persisted, true)
	add(report.TriggersEnded, Ended, true)
	return out
}
