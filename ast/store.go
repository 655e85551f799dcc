/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"fmt"
	"sort"

	"devt.de/krotik/common/errorutil"

	"github.com/mlangtools/mparse/lexer"
)

/*
Store is the dual store ("NodeIdMapCollection" in spec.md sec. 3.5): the pair
of maps holding AST and Context nodes plus the child/parent indices that
link them. A Store belongs exclusively to one parse - two parses must never
share one (spec.md sec. 5).

Ids are plain integers rather than direct references for two reasons a
single tree of pointers cannot give cheaply: a Context is promoted to an AST
node *in place* (same id, same links), and checkpoint rollback deletes a
contiguous id range without walking the tree.
*/
type Store struct {
	idCounter int

	astById     map[int]*Node
	contextById map[int]*Context

	childIdsByParentId map[int][]int
	parentIdByChildId  map[int]int

	leafIds map[int]bool

	idsByKind map[Kind]map[int]bool

	rootId    int
	hasRootId bool
}

/*
NewStore creates an empty dual store.
*/
func NewStore() *Store {
	return &Store{
		astById:            make(map[int]*Node),
		contextById:        make(map[int]*Context),
		childIdsByParentId: make(map[int][]int),
		parentIdByChildId:  make(map[int]int),
		leafIds:            make(map[int]bool),
		idsByKind:          make(map[Kind]map[int]bool),
	}
}

/*
IdCounter returns the number of ids allocated so far. Used by the parser to
take and restore checkpoints.
*/
func (s *Store) IdCounter() int {
	return s.idCounter
}

/*
AllocId returns the next monotonically increasing node id.
*/
func (s *Store) AllocId() int {
	s.idCounter++
	return s.idCounter
}

/*
RootId returns the id of the parse's root node, if one has been set.
*/
func (s *Store) RootId() (int, bool) {
	return s.rootId, s.hasRootId
}

/*
SetRootId records which node is the root of the parse.
*/
func (s *Store) SetRootId(id int) {
	s.rootId = id
	s.hasRootId = true
}

func (s *Store) indexKind(kind Kind, id int) {
	set, ok := s.idsByKind[kind]
	if !ok {
		set = make(map[int]bool)
		s.idsByKind[kind] = set
	}
	set[id] = true
}

func (s *Store) unindexKind(kind Kind, id int) {
	if set, ok := s.idsByKind[kind]; ok {
		delete(set, id)
	}
}

func (s *Store) link(parentId int, hasParent bool, attributeIndex, childId int) {
	s.parentIdByChildId[childId] = parentId
	if !hasParent {
		delete(s.parentIdByChildId, childId)
		return
	}

	ids := s.childIdsByParentId[parentId]

	// Insert in attributeIndex order: a binary search for the position, then
	// a slice insert. Most callers append at the tail, so the insert copies
	// nothing in the common case and only shifts elements for out-of-order
	// speculative rebuilds.
	pos := sort.Search(len(ids), func(i int) bool {
		if ast, ok := s.astById[ids[i]]; ok {
			return ast.AttributeIndex >= attributeIndex
		}
		if ctx, ok := s.contextById[ids[i]]; ok {
			return ctx.AttributeIndex >= attributeIndex
		}
		return false
	})

	ids = append(ids, 0)
	copy(ids[pos+1:], ids[pos:])
	ids[pos] = childId
	s.childIdsByParentId[parentId] = ids
}

func (s *Store) unlink(parentId int, childId int) {
	ids := s.childIdsByParentId[parentId]
	for i, id := range ids {
		if id == childId {
			s.childIdsByParentId[parentId] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

/*
OpenContext allocates and stores a new Context node at the tip of the
production currently being read (spec.md sec. 4.1).
*/
func (s *Store) OpenContext(kind Kind, parentId int, hasParent bool, attributeIndex int, tokenIndex int) *Context {
	id := s.AllocId()
	ctx := &Context{
		Id:              id,
		Kind:            kind,
		TokenIndexStart: tokenIndex,
		ParentId:        parentId,
		HasParent:       hasParent,
		AttributeIndex:  attributeIndex,
	}
	s.contextById[id] = ctx
	s.indexKind(kind, id)

	if hasParent {
		s.link(parentId, true, attributeIndex, id)
		if parentCtx, ok := s.contextById[parentId]; ok {
			parentCtx.AttributeCounter++
		}
	}

	return ctx
}

/*
PromoteContext replaces a Context node with a fully-formed AST node carrying
the same id and the same parent/child links (spec.md sec. 4.1). Promotion is
atomic with respect to readers of the store: at no point does the id exist
in neither map nor in both.
*/
func (s *Store) PromoteContext(id int, tokenRange TokenRange, isLeaf bool, token *lexer.Token) *Node {
	ctx, ok := s.contextById[id]
	errorutil.AssertTrue(ok, fmt.Sprintf("promoteContext: id %d is not an open context", id))

	node := &Node{
		Id:             id,
		Kind:           ctx.Kind,
		ParentId:       ctx.ParentId,
		HasParent:      ctx.HasParent,
		AttributeIndex: ctx.AttributeIndex,
		TokenRange:     tokenRange,
		IsLeaf:         isLeaf,
		Token:          token,
		Attributes:     ctx.Attributes,
	}

	delete(s.contextById, id)
	s.unindexKind(ctx.Kind, id)

	s.astById[id] = node
	s.indexKind(node.Kind, id)

	if isLeaf {
		s.leafIds[id] = true
	}
	ctx.IsClosed = true

	return node
}

/*
DeleteContext removes a context node from the store, unlinking it from its
parent.
*/
func (s *Store) DeleteContext(id int) {
	ctx, ok := s.contextById[id]
	if !ok {
		return
	}
	if ctx.HasParent {
		s.unlink(ctx.ParentId, id)
	}
	delete(s.contextById, id)
	s.unindexKind(ctx.Kind, id)
	delete(s.parentIdByChildId, id)
	delete(s.childIdsByParentId, id)
}

/*
DeleteAst removes an AST node from the store. When parentAlsoDoomed is true
the parent-side unlink is skipped, because the caller is already deleting
the whole subtree top-down and the parent's child list will be discarded
with it.
*/
func (s *Store) DeleteAst(id int, parentAlsoDoomed bool) {
	node, ok := s.astById[id]
	if !ok {
		return
	}
	if node.HasParent && !parentAlsoDoomed {
		s.unlink(node.ParentId, id)
	}
	delete(s.astById, id)
	s.unindexKind(node.Kind, id)
	delete(s.leafIds, id)
	delete(s.parentIdByChildId, id)
	delete(s.childIdsByParentId, id)
}

/*
Reparent moves an already-linked id (AST or Context) to sit under a
different parent at a new attribute index. Used when a postfix or infix
production (field access, invoke, binary operators) discovers only after
reading its left operand that the operand needs to become a child of a node
that doesn't exist yet - the operand was necessarily linked to its
grandparent first, since ids are linked at allocation time.
*/
func (s *Store) Reparent(id int, newParentId int, newAttributeIndex int) {
	if oldParentId, ok := s.parentIdByChildId[id]; ok {
		s.unlink(oldParentId, id)
	}

	if n, ok := s.astById[id]; ok {
		n.ParentId = newParentId
		n.HasParent = true
		n.AttributeIndex = newAttributeIndex
	} else if c, ok := s.contextById[id]; ok {
		c.ParentId = newParentId
		c.HasParent = true
		c.AttributeIndex = newAttributeIndex
	}

	s.link(newParentId, true, newAttributeIndex, id)
}

/*
SetAttribute attaches production-specific scalar data to the node at id,
e.g. the operator kind of an ArithmeticExpression. Works on both halves of
the store: an attribute set on a still-open Context survives promotion.
*/
func (s *Store) SetAttribute(id int, key string, value interface{}) {
	if node, ok := s.astById[id]; ok {
		if node.Attributes == nil {
			node.Attributes = make(map[string]interface{})
		}
		node.Attributes[key] = value
		return
	}
	if ctx, ok := s.contextById[id]; ok {
		if ctx.Attributes == nil {
			ctx.Attributes = make(map[string]interface{})
		}
		ctx.Attributes[key] = value
	}
}

/*
GetXor returns the XorNode for an id, in whichever half of the store it
currently lives.
*/
func (s *Store) GetXor(id int) (XorNode, bool) {
	if n, ok := s.astById[id]; ok {
		return AstXor(n), true
	}
	if c, ok := s.contextById[id]; ok {
		return ContextXor(c), true
	}
	return XorNode{}, false
}

/*
GetAst returns the AST node for an id, if it has been promoted.
*/
func (s *Store) GetAst(id int) (*Node, bool) {
	n, ok := s.astById[id]
	return n, ok
}

/*
GetContext returns the Context node for an id, if it is still open.
*/
func (s *Store) GetContext(id int) (*Context, bool) {
	c, ok := s.contextById[id]
	return c, ok
}

/*
ChildIds returns the ordered child ids of a parent, in attributeIndex order.
*/
func (s *Store) ChildIds(parentId int) []int {
	return s.childIdsByParentId[parentId]
}

/*
ParentId returns the parent id of a child, if any. This is a back-index only
- it does not imply ownership (spec.md sec. 9).
*/
func (s *Store) ParentId(childId int) (int, bool) {
	id, ok := s.parentIdByChildId[childId]
	return id, ok
}

/*
ChildAtIndex returns the i-th child of a parent as a XorNode.
*/
func (s *Store) ChildAtIndex(parentId int, i int) (XorNode, bool) {
	ids := s.childIdsByParentId[parentId]
	if i < 0 || i >= len(ids) {
		return XorNode{}, false
	}
	return s.GetXor(ids[i])
}

/*
NthChildAstChecked returns the i-th child of a parent as an AST node, only if
it has been promoted and its kind is one of expectedKinds (or expectedKinds
is empty).
*/
func (s *Store) NthChildAstChecked(parentId int, i int, expectedKinds ...Kind) (*Node, bool) {
	x, ok := s.ChildAtIndex(parentId, i)
	if !ok || x.Variant != VariantAst {
		return nil, false
	}
	if len(expectedKinds) > 0 && !kindIn(x.AstNode.Kind, expectedKinds) {
		return nil, false
	}
	return x.AstNode, true
}

/*
NthChildXorChecked returns the i-th child of a parent as a XorNode, only if
its kind is one of expectedKinds (or expectedKinds is empty).
*/
func (s *Store) NthChildXorChecked(parentId int, i int, expectedKinds ...Kind) (XorNode, bool) {
	x, ok := s.ChildAtIndex(parentId, i)
	if !ok {
		return XorNode{}, false
	}
	if len(expectedKinds) > 0 && !kindIn(x.Kind(), expectedKinds) {
		return XorNode{}, false
	}
	return x, true
}

func kindIn(k Kind, kinds []Kind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

/*
IterArrayWrapper yields each element of a variadic production (an
ArrayWrapper context/node created for comma-separated lists) uniformly for
both AST and Context variants - a wrapper may still be open (a trailing
element mid-parse) when this is called.
*/
func (s *Store) IterArrayWrapper(wrapperId int) []XorNode {
	var out []XorNode
	for _, id := range s.ChildIds(wrapperId) {
		if x, ok := s.GetXor(id); ok {
			out = append(out, x)
		}
	}
	return out
}

/*
LeafIds returns every id promoted as a leaf AST node, sorted ascending -
since ids are allocated depth-first and monotonically, this is also their
left-to-right source order. Used by package inspect's active node locator to
binary-search for the leaf under a cursor position.
*/
func (s *Store) LeafIds() []int {
	ids := make([]int, 0, len(s.leafIds))
	for id := range s.leafIds {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

/*
IdsByKind returns every id currently tagged with the given kind, across both
AST and Context nodes.
*/
func (s *Store) IdsByKind(kind Kind) []int {
	set := s.idsByKind[kind]
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

/*
RestoreTo deletes every id strictly greater than maxId from both stores, in
descending id order so that children are always removed before their
parents (spec.md sec. 4.2.2, 8). This is the mechanism checkpoint/restore
relies on to avoid deep-copying the store: because id allocation is
depth-first and monotone, "every id > k" is exactly "everything allocated
since the checkpoint was taken".
*/
func (s *Store) RestoreTo(maxId int) {
	doomed := make([]int, 0)
	for id := range s.astById {
		if id > maxId {
			doomed = append(doomed, id)
		}
	}
	for id := range s.contextById {
		if id > maxId {
			doomed = append(doomed, id)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(doomed)))

	for _, id := range doomed {
		if _, ok := s.astById[id]; ok {
			s.DeleteAst(id, true)
		} else if _, ok := s.contextById[id]; ok {
			s.DeleteContext(id)
		}
	}

	s.idCounter = maxId
}
