package mlang

import (
	"fmt"

	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/inspect"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/locale"
	"github.com/mlangtools/mparse/parser"
	"github.com/mlangtools/mparse/trace"
	"github.com/mlangtools/mparse/types"
)

/*
Document is the public façade's single glue object: a parsed (possibly
partial) M formula plus the inspection collaborators - a scope resolver and
a type inferencer - that the editor-facing query methods below delegate to.
It corresponds to no single component in spec.md sec. 2's table; it exists
only because a complete repo needs something a caller constructs once and
then queries repeatedly, instead of wiring ast.Store/inspect.Resolver/
types.Inferencer together by hand at every call site.
*/
type Document struct {
	Name     string
	Snapshot *lexer.Snapshot
	Store    *ast.Store
	RootId   int
	HasRoot  bool
	ParseErr error

	resolver   *inspect.Resolver
	inferencer *types.Inferencer
}

/*
Parse lexes and parses source under the given name (e.g. a file path, used
only for diagnostics) per the Settings' entry point, and wraps the result
in a Document ready for inspection queries. A parse failure does not
prevent a Document from being returned - per spec.md sec. 7, a partial dual
store still answers scope/type queries for the prefix that parsed; ParseErr
carries the failure for callers that care.
*/
func Parse(name, source string, settings Settings) (*Document, error) {
	lexOutcome := lexer.TryTokenize(name, source)
	snap, hasTokens := lexOutcome.Value()
	if !hasTokens {
		return nil, lexOutcome.Err()
	}

	var result parser.Result
	switch settings.ParserEntryPoint {
	case EntryPointExpression:
		result = parser.ParseExpressionWithBehavior(snap, settings.CancellationToken, settings.TraceManager, settings.Disambiguation)
	default:
		result = parser.ParseDocumentWithBehavior(snap, settings.CancellationToken, settings.TraceManager, settings.Disambiguation)
	}

	resolver := inspect.NewResolver(result.Store)
	doc := &Document{
		Name:       name,
		Snapshot:   snap,
		Store:      result.Store,
		RootId:     result.RootId,
		HasRoot:    result.HasRoot,
		ParseErr:   result.Err,
		resolver:   resolver,
		inferencer: types.NewInferencer(result.Store, resolver),
	}
	return doc, nil
}

/*
Ok reports whether the parse completed cleanly to end-of-input. Callers may
still query a Document that is not Ok - the partial tree is exactly what
spec.md sec. 7 says inspection must tolerate.
*/
func (d *Document) Ok() bool {
	return d.ParseErr == nil
}

/*
ActiveNodeAt locates the cursor's active leaf and ancestry (spec.md sec.
4.3).
*/
func (d *Document) ActiveNodeAt(cursor lexer.Position) (*inspect.ActiveNode, bool) {
	return inspect.TryFromPosition(d.Store, cursor)
}

/*
ScopeAt returns the lexical scope visible at nodeId (spec.md sec. 4.4),
memoized in the Document's resolver for the lifetime of the parse.
*/
func (d *Document) ScopeAt(nodeId int) inspect.Scope {
	return d.resolver.TryNodeScope(nodeId)
}

/*
TypeOf infers the static type of nodeId (spec.md sec. 4.5), memoized in the
Document's inferencer.
*/
func (d *Document) TypeOf(nodeId int) *types.Type {
	return d.inferencer.TryScopeType(nodeId)
}

/*
InvokeAt computes signature-help for the invoke-expression enclosing the
cursor's active node, if any (spec.md sec. 4.6).
*/
func (d *Document) InvokeAt(cursor lexer.Position) (*inspect.InvokeInspection, bool) {
	active, ok := d.ActiveNodeAt(cursor)
	if !ok {
		return nil, false
	}
	return inspect.TryInvokeExpression(d.Store, d.inferencer, d.resolver, active)
}

/*
AutocompleteAt assembles autocomplete suggestions visible at the cursor
(spec.md sec. 4.7).
*/
func (d *Document) AutocompleteAt(cursor lexer.Position) ([]inspect.Suggestion, bool) {
	active, ok := d.ActiveNodeAt(cursor)
	if !ok {
		return nil, false
	}
	return inspect.Autocomplete(d.resolver, active), true
}

/*
LocalizedParseError renders d.ParseErr as an end-user facing string in loc,
per spec.md sec. 7's "user-visible message construction is delegated to the
localization collaborator, keyed by error tag and parametrized by token
text and positions". Returns "" if the parse was Ok. Errors outside the
parser's own taxonomy (invariant or cancellation errors) fall back to their
Error() text, since locale only carries templates for the parse-error tags
of spec.md sec. 4.2.6.
*/
func (d *Document) LocalizedParseError(loc locale.Locale) string {
	if d.ParseErr == nil {
		return ""
	}
	pe, ok := d.ParseErr.(*parser.Error)
	if !ok {
		return d.ParseErr.Error()
	}
	return locale.Message(loc, pe.Reason.String(), locale.Params{
		"found":    pe.Token.Kind,
		"want":     pe.Expected,
		"sequence": pe.SequenceKind,
		"position": fmt.Sprintf("line %d, col %d", pe.Token.PositionStart.LineNumber, pe.Token.PositionStart.LineCodeUnit),
	})
}

/*
Trace emits a single no-argument trace span around fn, tagged with phase
and task, using mgr. Hosts that don't care about tracing pass
trace.NoOpManager() (the Settings default) and pay nothing.
*/
func Trace(mgr trace.Manager, phase trace.Phase, task string, fn func()) {
	tr := mgr.Entry(phase, task, nil)
	fn()
	tr.Exit(nil)
}
