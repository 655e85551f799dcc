/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package types

/*
operatorKey indexes the binary-operator result tables by (leftKind,
operator, rightKind), matching spec.md sec. 4.5's "each defined by a table
keyed by (leftKind, operator, rightKind) yielding a result type or none when
ill-typed".
*/
type operatorKey struct {
	Left     PrimitiveKind
	Operator string
	Right    PrimitiveKind
}

var arithmeticTable = map[operatorKey]PrimitiveKind{}
var relationalResult = Logical
var equalityResult = Logical
var logicalTable = map[operatorKey]PrimitiveKind{}

func init() {
	numericOps := []string{"+", "-", "*", "/"}
	for _, op := range numericOps {
		arithmeticTable[operatorKey{Number, op, Number}] = Number
	}
	arithmeticTable[operatorKey{Text, "&", Text}] = Text
	arithmeticTable[operatorKey{List, "&", List}] = List
	arithmeticTable[operatorKey{Record, "&", Record}] = Record
	arithmeticTable[operatorKey{Table, "&", Table}] = Table
	arithmeticTable[operatorKey{Date, "+", Duration}] = DateTime
	arithmeticTable[operatorKey{DateTime, "+", Duration}] = DateTime
	arithmeticTable[operatorKey{Date, "-", Duration}] = DateTime
	arithmeticTable[operatorKey{Date, "-", Date}] = Duration
	arithmeticTable[operatorKey{DateTime, "-", DateTime}] = Duration

	for _, op := range []string{"and", "or"} {
		logicalTable[operatorKey{Logical, op, Logical}] = Logical
	}
}

/*
ArithmeticResult looks up the result primitive kind of an arithmetic
operator (+, -, *, /, &) applied to two primitive kinds. ok is false when
the combination is ill-typed (the table's implicit `none`).
*/
func ArithmeticResult(left PrimitiveKind, op string, right PrimitiveKind) (PrimitiveKind, bool) {
	k, ok := arithmeticTable[operatorKey{left, op, right}]
	return k, ok
}

/*
RelationalResult returns the fixed result kind (logical) of a relational
comparison (<, <=, >, >=) between two orderable primitive kinds, or false
if the combination can't be compared.
*/
func RelationalResult(left PrimitiveKind, right PrimitiveKind) (PrimitiveKind, bool) {
	if !comparable(left) || !comparable(right) {
		return None, false
	}
	if left != right {
		return None, false
	}
	return relationalResult, true
}

func comparable(k PrimitiveKind) bool {
	switch k {
	case Number, Text, Date, DateTime, DateTimeZone, Duration, Time:
		return true
	}
	return false
}

/*
EqualityResult returns the fixed result kind (logical) of an equality
comparison (=, <>). Unlike relational comparisons, equality is defined
between any two primitive kinds in M (comparing across kinds is always
false, never an error), so EqualityResult never reports ill-typed.
*/
func EqualityResult() PrimitiveKind {
	return equalityResult
}

/*
LogicalResult looks up the result of a logical operator (and, or) applied to
two primitive kinds.
*/
func LogicalResult(left PrimitiveKind, op string, right PrimitiveKind) (PrimitiveKind, bool) {
	k, ok := logicalTable[operatorKey{left, op, right}]
	return k, ok
}
