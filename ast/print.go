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
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
)

/*
Print renders the subtree rooted at id as an indented tree, the same shape
the teacher's ASTNode.levelString produces for its own AST dump. Context
nodes are marked with a trailing "(open)" so a reader can see at a glance
how far a partial parse got.
*/
func (s *Store) Print(id int) string {
	var buf bytes.Buffer
	s.printLevel(id, 0, &buf)
	return buf.String()
}

func (s *Store) printLevel(id int, indent int, buf *bytes.Buffer) {
	buf.WriteString(stringutil.GenerateRollingString(" ", indent*2))

	x, ok := s.GetXor(id)
	if !ok {
		fmt.Fprintf(buf, "<missing id %d>\n", id)
		return
	}

	switch x.Variant {
	case VariantAst:
		n := x.AstNode
		if n.IsLeaf && n.Token != nil {
			fmt.Fprintf(buf, "%s: %q\n", n.Kind, n.Token.Data)
		} else {
			fmt.Fprintf(buf, "%s\n", n.Kind)
		}
	case VariantContext:
		fmt.Fprintf(buf, "%s (open)\n", x.CtxNode.Kind)
	}

	for _, childId := range s.ChildIds(id) {
		s.printLevel(childId, indent+1, buf)
	}
}
