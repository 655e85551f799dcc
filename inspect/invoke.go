/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package inspect

import (
	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/ident"
	"github.com/mlangtools/mparse/types"
)

/*
InvokeInspection is the signature-help answer of spec.md sec. 4.6: the
callee's inferred type, which argument slot the cursor sits in, how many
argument slots are present so far, and whether the callee name itself
resolves in scope.
*/
type InvokeInspection struct {
	InvokeExpressionId        int
	FunctionType              *types.Type
	ActiveArgumentOrdinal     int
	NumberOfArgumentsProvided int
	IsNameInLocalScope        bool
}

/*
TryInvokeExpression finds the nearest InvokeExpression enclosing active's
leaf and computes its signature-help shape (spec.md sec. 4.6). The active
argument is the slot whose subtree the cursor falls within - equivalently,
spec.md's "count commas strictly left of the cursor" - since every argument
before the cursor's one contributes exactly one preceding comma.
*/
func TryInvokeExpression(store *ast.Store, inf *types.Inferencer, resolver *Resolver, active *ActiveNode) (*InvokeInspection, bool) {
	var invokeXor ast.XorNode
	found := false
	for _, x := range active.Ancestry {
		if x.Kind() == ast.KindInvokeExpression {
			invokeXor = x
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	calleeXor, ok := store.ChildAtIndex(invokeXor.Id(), 0)
	if !ok {
		return nil, false
	}

	var functionType *types.Type
	if inf != nil {
		functionType = inf.TryScopeType(calleeXor.Id())
	}

	var argIds []int
	if argsWrapper, ok := store.ChildAtIndex(invokeXor.Id(), 1); ok {
		argIds = store.ChildIds(argsWrapper.Id())
	}

	cursorStart := active.Leaf.TokenRangeStart()
	ordinal := 0
	for i, argId := range argIds {
		x, ok := store.GetXor(argId)
		if !ok {
			continue
		}
		if x.TokenRangeStart() <= cursorStart {
			ordinal = i
		}
	}

	isNameInScope := false
	if calleeXor.Variant == ast.VariantAst && calleeXor.AstNode.Kind == ast.KindIdentifier && calleeXor.AstNode.Token != nil {
		name := ident.NormalizeIdentifier(calleeXor.AstNode.Token.Data)
		if resolver != nil {
			if _, ok := resolver.Lookup(calleeXor.Id(), name); ok {
				isNameInScope = true
			}
		}
	}

	return &InvokeInspection{
		InvokeExpressionId:        invokeXor.Id(),
		FunctionType:              functionType,
		ActiveArgumentOrdinal:     ordinal,
		NumberOfArgumentsProvided: len(argIds),
		IsNameInLocalScope:        isNameInScope,
	}, true
}
