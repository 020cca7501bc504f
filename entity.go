package scrollscape

// Entity binds a Motion to the node it writes. Create one with Scene.Attach.
type Entity struct {
	node   *Node
	motion Motion
	handle *Handle
	last   Pose
	ticks  uint64

	onDetach func(*Entity)
}

// Node returns the node the entity writes to.
func (e *Entity) Node() *Node {
	return e.node
}

// Motion returns the entity's motion.
func (e *Entity) Motion() Motion {
	return e.motion
}

// LastPose returns the pose written on the entity's most recent tick.
func (e *Entity) LastPose() Pose {
	return e.last
}

// Ticks returns how many ticks the entity has written a pose on.
func (e *Entity) Ticks() uint64 {
	return e.ticks
}

// Detach stops the entity. After Detach returns the entity receives no more
// ticks and writes nothing. Detaching twice is a no-op.
func (e *Entity) Detach() {
	if e.handle.Detached() {
		return
	}
	e.handle.Detach()
	if e.onDetach != nil {
		e.onDetach(e)
	}
}

// Detached reports whether the entity has been detached.
func (e *Entity) Detached() bool {
	return e.handle.Detached()
}

// update computes and writes one pose. An entity whose node was disposed
// detaches itself instead of writing.
func (e *Entity) update(t Tick) {
	if e.node.IsDisposed() {
		e.Detach()
		return
	}
	p := e.motion.Pose(t)
	e.node.ApplyPose(p)
	e.last = p
	e.ticks++
}
