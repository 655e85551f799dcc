/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package result holds the two generic outcome shapes spec.md sec. 6.2 asks
for: a plain two-state Result used by the parser's top-level entry points,
and a three-state PartialResult used by the lexer, which - unlike the
parser - never has a "whatever got built so far" value to fall back on when
it hits a bad byte, so it needs a state between clean success and outright
failure.
*/
package result

/*
Kind discriminates a Result/PartialResult without a type switch.
*/
type Kind int

const (
	KindOk Kind = iota
	KindMixed
	KindErr
)

/*
Result is a plain Ok/Err sum, used by the parser's TryParseDocument and
TryParseExpression entry points (spec.md sec. 6.2's "the parser stays
two-valued").
*/
type Result[T any] struct {
	kind  Kind
	value T
	err   error
}

/*
Ok wraps a successful value.
*/
func Ok[T any](v T) Result[T] {
	return Result[T]{kind: KindOk, value: v}
}

/*
Err wraps a terminal failure.
*/
func Err[T any](err error) Result[T] {
	return Result[T]{kind: KindErr, err: err}
}

/*
IsOk reports whether this is a successful result.
*/
func (r Result[T]) IsOk() bool { return r.kind == KindOk }

/*
Value returns the wrapped value and whether this result was Ok.
*/
func (r Result[T]) Value() (T, bool) { return r.value, r.kind == KindOk }

/*
Err returns the wrapped error, if any.
*/
func (r Result[T]) Err() error { return r.err }

/*
PartialResult is a three-way Ok/Mixed/Err sum (spec.md sec. 6.2), used by
the lexer's TryTokenize: Mixed carries both the tokens produced before the
failure and the error that stopped it, so a caller can still run
inspection queries against a truncated token stream.
*/
type PartialResult[T any] struct {
	kind  Kind
	value T
	err   error
}

/*
PartialOk wraps a clean, complete value.
*/
func PartialOk[T any](v T) PartialResult[T] {
	return PartialResult[T]{kind: KindOk, value: v}
}

/*
PartialMixed wraps a partial value alongside the error that cut it short.
*/
func PartialMixed[T any](v T, err error) PartialResult[T] {
	return PartialResult[T]{kind: KindMixed, value: v, err: err}
}

/*
PartialErr wraps a terminal failure with no usable partial value.
*/
func PartialErr[T any](err error) PartialResult[T] {
	return PartialResult[T]{kind: KindErr, err: err}
}

/*
Kind reports which of the three states this result holds.
*/
func (r PartialResult[T]) Kind() Kind { return r.kind }

/*
Value returns the wrapped value (populated for both Ok and Mixed) and
whether a usable value is present at all.
*/
func (r PartialResult[T]) Value() (T, bool) {
	return r.value, r.kind == KindOk || r.kind == KindMixed
}

/*
Err returns the wrapped error, present for both Mixed and Err.
*/
func (r PartialResult[T]) Err() error { return r.err }
