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
Command mlang is a thin CLI over the mlang façade, adapted from the
teacher's subcommand-dispatch cli.ecal entry point: a single binary that
picks a subcommand off os.Args[1] the same way, but over "tokens", "parse",
and "inspect" instead of ECAL's "console"/"run"/"debug". It owns no
persisted state of its own (spec.md sec. 6.6) - every subcommand reads a
file, prints an answer, and exits.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	mlang "github.com/mlangtools/mparse"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/mlog"
	"github.com/mlangtools/mparse/trace"
	"github.com/mlangtools/mparse/types"
)

func main() {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	flag.Usage = func() {
		fmt.Println(fmt.Sprintf("Usage of %s <command>", os.Args[0]))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    tokens <file>             Print the token snapshot for a source file")
		fmt.Println("    parse <file>              Parse a source file and print the AST/Context tree")
		fmt.Println("    inspect <file> <L>:<C>    Parse a file and print scope/type/invoke info at line:col")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "tokens":
		err = runTokens(args[1:])
	case "parse":
		err = runParse(args[1:])
	case "inspect":
		err = runInspect(args[1:])
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Println(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func readSource(args []string) (name, source string, err error) {
	if len(args) < 1 {
		return "", "", fmt.Errorf("expected a source file path")
	}
	name = args[0]
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", err
	}
	return name, string(data), nil
}

func runTokens(args []string) error {
	name, source, err := readSource(args)
	if err != nil {
		return err
	}
	snap, err := lexer.Tokenize(name, source)
	if err != nil {
		return err
	}
	for i := 0; i < snap.Len(); i++ {
		tok := snap.At(i)
		fmt.Printf("%4d  %-28s %q\n", i, tok.Kind, tok.Data)
	}
	return nil
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	traceFlag := fs.Bool("trace", false, "log parse/lex phase entry and exit via mlog's standard logger")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, source, err := readSource(fs.Args())
	if err != nil {
		return err
	}

	settings := mlang.DefaultSettings()
	if *traceFlag {
		logger, _ := mlog.NewLevelLogger(nil, "debug")
		settings.TraceManager = trace.ReportManager(mlog.AsTraceCallback(logger))
	}

	doc, err := mlang.Parse(name, source, settings)
	if err != nil {
		return err
	}
	if !doc.Ok() {
		fmt.Println(fmt.Sprintf("parse error: %s", doc.LocalizedParseError(settings.Locale)))
	}
	if doc.HasRoot {
		fmt.Print(doc.Store.Print(doc.RootId))
	}
	return nil
}

func runInspect(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: inspect <file> <line>:<col>")
	}
	name, source, err := readSource(args[:1])
	if err != nil {
		return err
	}
	var line, col int
	if _, err := fmt.Sscanf(args[1], "%d:%d", &line, &col); err != nil {
		return fmt.Errorf("invalid cursor %q, want <line>:<col>", args[1])
	}
	cursor := lexer.Position{LineNumber: line, LineCodeUnit: col}

	doc, err := mlang.Parse(name, source, mlang.DefaultSettings())
	if err != nil {
		return err
	}

	active, ok := doc.ActiveNodeAt(cursor)
	if !ok {
		fmt.Println("cursor is out of bounds")
		return nil
	}
	fmt.Println(fmt.Sprintf("active leaf: %s (classification %s)", active.Leaf.Kind(), active.Classification))

	scope := doc.ScopeAt(active.Leaf.Id())
	fmt.Println(fmt.Sprintf("scope (%d names):", len(scope)))
	for ident, item := range scope {
		fmt.Println(fmt.Sprintf("  %s: %v", ident, item.Kind))
	}

	t := doc.TypeOf(active.Leaf.Id())
	fmt.Println(fmt.Sprintf("type: %s", types.NameOf(t)))

	if inv, ok := doc.InvokeAt(cursor); ok {
		fmt.Println(fmt.Sprintf("invoke: arg %d of %d, function type %s",
			inv.ActiveArgumentOrdinal, inv.NumberOfArgumentsProvided, types.NameOf(inv.FunctionType)))
	}

	if suggestions, ok := doc.AutocompleteAt(cursor); ok {
		fmt.Println("autocomplete:")
		for _, s := range suggestions {
			fmt.Println(fmt.Sprintf("  %s", s.Text))
		}
	}

	return nil
}
