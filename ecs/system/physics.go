package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypePlayerGround
	collisionTypeEnemy
	collisionTypeEnemyHit
	collisionTypePowerUp
	collisionTypeGoal
)

// Shape filter categories.
const (
	categorySolid uint = 1 << iota
	categoryPlayer
	categoryEnemy
	categoryTrigger
)

const (
	groundGraceFrames = 6
	ledgeCheckDepth   = 6.0
	boundsThickness   = 2.0
)

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	owners   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]*contactState

	// overlaps collects sensor pairs seen during the current step.
	overlaps    []ecs.OverlapEvent
	overlapSeen map[[2]ecs.Entity]struct{}
}

type bodyInfo struct {
	kind        component.BodyKind
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	hitShape    *cp.Shape
	shapes      []*cp.Shape
	static      bool
	kinematic   bool
	disabled    bool
}

type contactState struct {
	grounded    bool
	groundGrace int
	wall        int
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:       newSpace(),
		entities:    make(map[ecs.Entity]*bodyInfo),
		owners:      make(map[*cp.Shape]ecs.Entity),
		contacts:    make(map[ecs.Entity]*contactState),
		overlapSeen: make(map[[2]ecs.Entity]struct{}),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.syncKinematic(w)
	ps.resetContacts(w)

	ps.overlaps = ps.overlaps[:0]
	clear(ps.overlapSeen)
	ps.space.Step(1.0 / common.TPS)

	ps.syncTransforms(w)
	ps.flushContacts(w)
	ps.checkLedges(w)
	ps.emitOverlaps(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, ct := range []cp.CollisionType{collisionTypePlayer, collisionTypeEnemy} {
		wall := ps.space.NewCollisionHandler(ct, collisionTypeSolid)
		wall.UserData = ps
		wall.PreSolveFunc = bodyContactPreSolve
	}

	ground := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	ground.UserData = ps
	ground.PreSolveFunc = groundSensorPreSolve

	for _, ct := range []cp.CollisionType{collisionTypeEnemyHit, collisionTypePowerUp, collisionTypeGoal} {
		overlap := ps.space.NewCollisionHandler(collisionTypePlayer, ct)
		overlap.UserData = ps
		overlap.PreSolveFunc = overlapPreSolve
	}

	ps.handlersReady = true
}

// bodyContactPreSolve records wall contacts, and ground contacts for bodies
// without a dedicated ground sensor.
func bodyContactPreSolve(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	ent, isA := sys.owners[shapeA]
	if !isA {
		var okB bool
		ent, okB = sys.owners[shapeB]
		if !okB {
			return true
		}
	}
	st := sys.contactState(ent)

	n := arb.Normal()
	if !isA {
		n = n.Neg()
	}
	switch {
	case n.X < -0.5:
		st.wall = component.WallLeft
	case n.X > 0.5:
		st.wall = component.WallRight
	}

	if info := sys.entities[ent]; info != nil && info.groundShape == nil && n.Y > 0.5 {
		st.grounded = true
		st.groundGrace = groundGraceFrames
	}
	return true
}

func groundSensorPreSolve(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	ent, isA := sys.owners[shapeA]
	if !isA {
		var okB bool
		ent, okB = sys.owners[shapeB]
		if !okB {
			return true
		}
	}

	n := arb.Normal()
	if !isA {
		n = n.Neg()
	}
	// Only count contacts whose normal points down into the ground.
	if n.Y <= 0.5 {
		return true
	}
	st := sys.contactState(ent)
	st.grounded = true
	st.groundGrace = groundGraceFrames
	return true
}

func overlapPreSolve(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := sys.owners[shapeA]
	b, okB := sys.owners[shapeB]
	if !okA || !okB || a == b {
		return true
	}
	infoA, infoB := sys.entities[a], sys.entities[b]
	if infoA == nil || infoB == nil || infoA.disabled || infoB.disabled {
		return true
	}
	if infoA.kind != component.BodyKindPlayer {
		a, b = b, a
		infoA, infoB = infoB, infoA
	}

	key := [2]ecs.Entity{a, b}
	if _, seen := sys.overlapSeen[key]; seen {
		return true
	}
	sys.overlapSeen[key] = struct{}{}
	sys.overlaps = append(sys.overlaps, ecs.OverlapEvent{A: a, B: b, KindA: infoA.kind, KindB: infoB.kind})
	return true
}

func (ps *PhysicsSystem) contactState(e ecs.Entity) *contactState {
	st := ps.contacts[e]
	if st == nil {
		st = &contactState{}
		ps.contacts[e] = st
	}
	return st
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	if ps.space == nil {
		return
	}

	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			gravity := 1.0
			if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
				gravity = gs.Scale
			}
			info = ps.createBodyInfo(e, *transform, *bodyComp, gravity)
			if info == nil {
				return
			}
			ps.entities[e] = info
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape

		if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok && enemy.Defeated && !info.disabled {
			ps.disable(info)
		}
	})
}

// disable stops a body from producing overlaps while leaving it resting on
// the ground.
func (ps *PhysicsSystem) disable(info *bodyInfo) {
	info.disabled = true
	if info.hitShape != nil {
		info.hitShape.SetFilter(cp.SHAPE_FILTER_NONE)
	}
	if info.body != nil && !info.static {
		info.body.SetVelocity(0, info.body.Velocity().Y)
	}
}

func filterFor(kind component.BodyKind) cp.ShapeFilter {
	switch kind {
	case component.BodyKindPlayer:
		return cp.NewShapeFilter(cp.NO_GROUP, categoryPlayer, categorySolid|categoryEnemy|categoryTrigger)
	case component.BodyKindEnemy:
		return cp.NewShapeFilter(cp.NO_GROUP, categoryEnemy, categorySolid)
	case component.BodyKindPowerUp, component.BodyKindGoal:
		return cp.NewShapeFilter(cp.NO_GROUP, categoryTrigger, categoryPlayer)
	default:
		return cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES)
	}
}

func collisionTypeFor(kind component.BodyKind) cp.CollisionType {
	switch kind {
	case component.BodyKindPlayer:
		return collisionTypePlayer
	case component.BodyKindEnemy:
		return collisionTypeEnemy
	case component.BodyKindPowerUp:
		return collisionTypePowerUp
	case component.BodyKindGoal:
		return collisionTypeGoal
	default:
		return collisionTypeSolid
	}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform component.Transform, bodyComp component.PhysicsBody, gravityScale float64) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = common.TileSize, common.TileSize
	}
	kind := bodyComp.Kind
	if kind == 0 {
		kind = component.BodyKindSolid
	}

	topLeftX, topLeftY := transform.X, transform.Y
	if !bodyComp.AlignTopLeft {
		topLeftX -= width / 2
		topLeftY -= height / 2
	}
	center := cp.Vector{X: topLeftX + width/2, Y: topLeftY + height/2}
	sensor := kind == component.BodyKindPowerUp || kind == component.BodyKindGoal

	info := &bodyInfo{kind: kind, static: bodyComp.Static, kinematic: bodyComp.Kinematic}

	var body *cp.Body
	var shape *cp.Shape
	switch {
	case bodyComp.Static:
		body = ps.space.StaticBody
		bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + width, T: topLeftY + height}
		shape = cp.NewBox2(body, bb, 0)
	case bodyComp.Kinematic:
		body = cp.NewKinematicBody()
		body.SetPosition(center)
		ps.space.AddBody(body)
		shape = cp.NewBox(body, width, height, 0)
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Infinite moment keeps actors upright.
		body = cp.NewBody(mass, cp.INFINITY)
		body.SetPosition(center)
		if gravityScale != 1 {
			scale := gravityScale
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
				cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
			})
		}
		ps.space.AddBody(body)
		shape = cp.NewBox(body, width, height, 0)
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeFor(kind))
	shape.SetFilter(filterFor(kind))
	shape.SetSensor(sensor)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}
	ps.owners[shape] = e

	switch kind {
	case component.BodyKindPlayer:
		ground := createGroundSensor(body, width, height)
		ps.space.AddShape(ground)
		info.groundShape = ground
		info.shapes = append(info.shapes, ground)
		ps.owners[ground] = e
	case component.BodyKindEnemy:
		hit := cp.NewBox(body, width, height, 0)
		hit.SetSensor(true)
		hit.SetCollisionType(collisionTypeEnemyHit)
		hit.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryEnemy, categoryPlayer))
		ps.space.AddShape(hit)
		info.hitShape = hit
		info.shapes = append(info.shapes, hit)
		ps.owners[hit] = e
	}

	return info
}

func createGroundSensor(body *cp.Body, width, height float64) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	ground := cp.NewBox2(body, groundBB, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypePlayerGround)
	ground.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryPlayer, categorySolid))
	return ground
}

// syncWorldBounds walls off the left, right and top edges of the level. The
// bottom stays open so falling out of the world is possible.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.space == nil || w == nil {
		return
	}
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := [][2]cp.Vector{
		{{X: 0, Y: -worldH}, {X: worldW, Y: -worldH}},
		{{X: 0, Y: -worldH}, {X: 0, Y: worldH * 2}},
		{{X: worldW, Y: -worldH}, {X: worldW, Y: worldH * 2}},
	}

	info := &bodyInfo{kind: component.BodyKindSolid, static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], boundsThickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filterFor(component.BodyKindSolid))
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

// syncKinematic moves kinematic bodies to their transform so tweened sensors
// follow the sprite.
func (ps *PhysicsSystem) syncKinematic(w *ecs.World) {
	for e, info := range ps.entities {
		if !info.kinematic || info.body == nil {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		x, y := t.X, t.Y
		if bodyComp.AlignTopLeft {
			x += bodyComp.Width / 2
			y += bodyComp.Height / 2
		}
		info.body.SetPosition(cp.Vector{X: x, Y: y})
	}
}

func (ps *PhysicsSystem) resetContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.ContactsComponent.Kind(), func(e ecs.Entity, c *component.Contacts) {
		seen[e] = struct{}{}
		st := ps.contactState(e)
		st.groundGrace = c.GroundGrace
		if st.groundGrace > 0 {
			st.groundGrace--
		}
		st.grounded = false
		st.wall = component.WallNone
	})
	for e := range ps.contacts {
		if _, ok := seen[e]; !ok {
			delete(ps.contacts, e)
		}
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, st := range ps.contacts {
		c, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
		if !ok {
			continue
		}
		c.Grounded = st.grounded
		c.GroundGrace = st.groundGrace
		c.Wall = st.wall
	}
}

// checkLedges flags grounded walkers whose leading edge has no solid below.
func (ps *PhysicsSystem) checkLedges(w *ecs.World) {
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)
	ecs.ForEach2(w, component.ContactsComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, c *component.Contacts, bodyComp *component.PhysicsBody) {
		c.Ledge = false
		if bodyComp.Body == nil || !c.Grounded || bodyComp.Kind != component.BodyKindEnemy {
			return
		}
		vx := bodyComp.Body.Velocity().X
		if vx == 0 {
			return
		}
		pos := bodyComp.Body.Position()
		foot := cp.Vector{
			X: pos.X + common.Sign(vx)*(bodyComp.Width/2+2),
			Y: pos.Y + bodyComp.Height/2 + ledgeCheckDepth,
		}
		hit := ps.space.PointQueryNearest(foot, 0, filter)
		c.Ledge = hit == nil || hit.Shape == nil
	})
}

func (ps *PhysicsSystem) emitOverlaps(w *ecs.World) {
	for _, ov := range ps.overlaps {
		if !ecs.IsAlive(w, ov.A) || !ecs.IsAlive(w, ov.B) {
			continue
		}
		w.Events().Push(ecs.Event{Type: ecs.EventOverlap, Data: ov})
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static || bodyComp.Kinematic {
			return
		}
		pos := bodyComp.Body.Position()
		if bodyComp.AlignTopLeft {
			transform.X = pos.X - bodyComp.Width/2.0
			transform.Y = pos.Y - bodyComp.Height/2.0
		} else {
			transform.X = pos.X
			transform.Y = pos.Y
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		ps.removeInfo(info)
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}

func (ps *PhysicsSystem) removeInfo(info *bodyInfo) {
	for _, shape := range info.shapes {
		if shape == nil || ps.space == nil {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.owners, shape)
	}
	if info.body != nil && !info.static && ps.space != nil {
		ps.space.RemoveBody(info.body)
	}
}

// Reset drops every body so a fresh world can be simulated.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = newSpace()
	ps.handlersReady = false
	clear(ps.entities)
	clear(ps.owners)
	clear(ps.contacts)
	ps.overlaps = ps.overlaps[:0]
	clear(ps.overlapSeen)
}
