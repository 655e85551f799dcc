/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"devt.de/krotik/common/datautil"
)

/*
errorTrail keeps a bounded trailing window of the most recent parse errors a
speculative attempt produced, the same RingBuffer-backed shape the teacher's
LABuffer uses for look-ahead (parser/helper.go) - here the thing being
buffered is recent failures instead of recent tokens. Only the last few
errors are useful once an attempt is abandoned; keeping the whole history
would grow without bound across a deeply backtracking parse.
*/
type errorTrail struct {
	buf *datautil.RingBuffer
}

func newErrorTrail(capacity int) *errorTrail {
	if capacity < 1 {
		capacity = 1
	}
	return &errorTrail{buf: datautil.NewRingBuffer(capacity)}
}

func (t *errorTrail) record(err *Error) {
	t.buf.Add(err)
}

func (t *errorTrail) recent() []*Error {
	out := make([]*Error, 0, t.buf.Size())
	for i := 0; i < t.buf.Size(); i++ {
		if e, ok := t.buf.Get(i).(*Error); ok {
			out = append(out, e)
		}
	}
	return out
}

/*
deepestError picks the single most informative error out of a set of failed
attempts: the one whose token position is furthest into the input. A parser
that got further before failing generally diagnosed a more specific problem
than one that failed immediately (spec.md sec. 4.2.3's "deeper attempt wins"
disambiguation rule, applied here to error reporting instead of tree depth).
Errors at the same position resolve to the one listed first; nil entries are
skipped.
*/
func deepestError(errs ...*Error) *Error {
	var best *Error
	for _, e := range errs {
		if e != nil && (best == nil || e.Token.PositionStart.CodeUnit > best.Token.PositionStart.CodeUnit) {
			best = e
		}
	}
	return best
}
