package ultraspin

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/justindarc/ultraspin/transition"
)

// nodeIDCounter is a plain counter (no atomic, the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout box in the parent's coordinate space, in pixels.
	Left, Top     float64
	Width, Height float64
	// Origin is the transform origin relative to the box's top-left corner.
	// nil means the box centre.
	Origin *Vec2

	// Pose. Transform is applied about the origin and is what keyframe
	// animations write.
	Transform transition.Matrix
	Alpha     float64
	Visible   bool
	Blur      float64 // px

	// Renderable false hides the node's own content; children still draw.
	Renderable bool

	// Displacement and scale written by auxiliary processes, applied on top
	// of the pose.
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64

	// Computed (unexported, updated during traversal)
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite)
	Image     *ebiten.Image
	BlendMode BlendMode
	Color     Color

	// Mesh fields (NodeTypeMesh)
	Vertices         []ebiten.Vertex
	Indices          []uint16
	MeshImage        *ebiten.Image
	transformedVerts []ebiten.Vertex // preallocated transform buffer

	// Particle fields (NodeTypeParticleEmitter)
	Emitter *ParticleEmitter

	// Filters run over the rendered subtree, after the blur implied by Blur.
	Filters    []Filter
	blurFilter *BlurFilter

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Transform = transition.Identity
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = Color{1, 1, 1, 1}
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a group node with no visual output.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that draws img stretched over its layout box.
// The box starts at the image's natural size. A nil img draws a solid
// rectangle of the node's Color.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	if img != nil {
		b := img.Bounds()
		n.Width = float64(b.Dx())
		n.Height = float64(b.Dy())
	}
	return n
}

// NewRect creates a solid rectangle of the given size and color.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewSprite(name, nil)
	n.Width, n.Height = w, h
	n.Color = c
	return n
}

// NewMesh creates a mesh node. Vertex positions are in the node's box space.
// A nil img draws with WhitePixel.
func NewMesh(name string, img *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Vertices: vertices, Indices: indices, MeshImage: img}
	nodeDefaults(n)
	if img == nil {
		n.MeshImage = WhitePixel
	}
	return n
}

// NewParticleEmitter creates a node with a particle emitter. Particles are
// simulated in the node's box space.
func NewParticleEmitter(name string, cfg EmitterConfig) *Node {
	n := &Node{Name: name, Type: NodeTypeParticleEmitter}
	nodeDefaults(n)
	n.Emitter = newParticleEmitter(cfg)
	return n
}

// --- Pose ---

// State returns the node's current pose.
func (n *Node) State() transition.State {
	return transition.State{
		Transform: n.Transform,
		Opacity:   n.Alpha,
		Visible:   n.Visible,
		Blur:      n.Blur,
	}
}

// ApplyState writes a resolved pose onto the node.
func (n *Node) ApplyState(s transition.State) {
	n.Transform = s.Transform
	n.Alpha = s.Opacity
	n.Visible = s.Visible
	n.Blur = s.Blur
	n.transformDirty = true
}

// ApplyKeyframe assigns the properties k names to the node, leaving the rest
// untouched.
func (n *Node) ApplyKeyframe(k transition.Keyframe) {
	n.ApplyState(n.State().Apply(k))
}

// ApplyPlacement moves the node's layout box to the placement and, when
// the placement names one, sets its transform origin.
func (n *Node) ApplyPlacement(p *transition.Placement) {
	if p == nil {
		return
	}
	n.Left, n.Top = p.Left, p.Top
	if p.Origin != nil {
		n.Origin = &Vec2{X: p.Origin.X, Y: p.Origin.Y}
	}
	n.transformDirty = true
}

// origin returns the transform origin in box space.
func (n *Node) origin() (float64, float64) {
	if n.Origin != nil {
		return n.Origin.X, n.Origin.Y
	}
	return n.Width / 2, n.Height / 2
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. If child already has a
// parent, it is removed from that parent first. Panics if child is nil or if
// child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// PrependChild inserts child before every existing child.
func (n *Node) PrependChild(child *Node) {
	n.AddChildAt(child, 0)
}

// AddChildAt inserts child at the given index. Panics on nil child, a cycle
// or an index out of range.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("ultraspin: cannot add nil child")
	}
	if n.disposed || child.disposed {
		panic("ultraspin: cannot add a disposed node")
	}
	if isAncestor(child, n) {
		panic("ultraspin: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("ultraspin: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		index = min(index, len(n.children))
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node. Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("ultraspin: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent. No-op if the node has
// no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildByName returns the first direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetZIndex sets the node's draw order among its siblings. Higher values
// draw on top; ties keep insertion order.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// MarkDirty flags the node's transform for recomputation.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// Dispose detaches the node and releases its subtree. A disposed node must
// not be reused.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Filters = nil
	n.blurFilter = nil
	n.Image = nil
	n.MeshImage = nil
	n.transformedVerts = nil
	n.Emitter = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
