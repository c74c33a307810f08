// Package immutabletasks provides a linter that reports in-place writes to
// elements of a []core.Task.
//
// Task list operations in internal/core return a new list and never modify
// their input. Code outside that package must go through those operations
// instead of editing a loaded list directly:
//
//	tasks[i].Done = true                 // Bad: mutates the caller's list
//	tasks, err = core.MarkDone(tasks, id) // Good
//
// Writes inside internal/core itself are allowed. The linter respects
// //nolint and //nolint:immutabletasks comments.
package immutabletasks

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/astutil"
)

const (
	name          = "immutabletasks"
	corePkgSuffix = "internal/core"
)

// Analyzer is the immutabletasks analyzer.
var Analyzer = &analysis.Analyzer{
	Name: name,
	Doc:  "checks for in-place writes to []core.Task elements outside internal/core",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	if isCorePath(pass.Pkg.Path()) {
		return nil, nil
	}

	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch stmt := n.(type) {
			case *ast.AssignStmt:
				if stmt.Tok == token.DEFINE {
					return true
				}
				for _, lhs := range stmt.Lhs {
					check(pass, lhs)
				}
			case *ast.IncDecStmt:
				check(pass, stmt.X)
			}
			return true
		})
	}

	return nil, nil
}

// check reports expr when it is tasks[i] or tasks[i].Field.
func check(pass *analysis.Pass, expr ast.Expr) {
	target := astutil.Unparen(expr)
	if sel, ok := target.(*ast.SelectorExpr); ok {
		target = astutil.Unparen(sel.X)
	}

	index, ok := target.(*ast.IndexExpr)
	if !ok {
		return
	}

	if !isTaskSlice(pass.TypesInfo.TypeOf(index.X)) {
		return
	}

	if hasNolintComment(pass, expr) {
		return
	}

	pass.Reportf(expr.Pos(), "in-place write to a []core.Task element; use the core list operations instead")
}

// isTaskSlice reports whether t is a slice of the Task type declared in internal/core.
func isTaskSlice(t types.Type) bool {
	if t == nil {
		return false
	}

	slice, ok := t.Underlying().(*types.Slice)
	if !ok {
		return false
	}

	// Go 1.21 has no *types.Alias; alias types already resolve to their target.
	named, ok := slice.Elem().(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	return obj.Name() == "Task" && obj.Pkg() != nil && isCorePath(obj.Pkg().Path())
}

func isCorePath(path string) bool {
	return path == corePkgSuffix || strings.HasSuffix(path, "/"+corePkgSuffix)
}

// hasNolintComment checks if there's a nolint comment on the same or the previous line.
// Supports both general //nolint and specific //nolint:immutabletasks.
func hasNolintComment(pass *analysis.Pass, node ast.Node) bool {
	pos := pass.Fset.Position(node.Pos())

	var astFile *ast.File
	for _, f := range pass.Files {
		if pass.Fset.Position(f.Pos()).Filename == pos.Filename {
			astFile = f
			break
		}
	}

	if astFile == nil {
		return false
	}

	for _, cg := range astFile.Comments {
		for _, comment := range cg.List {
			commentPos := pass.Fset.Position(comment.Pos())
			if commentPos.Line != pos.Line && commentPos.Line != pos.Line-1 {
				continue
			}

			text := comment.Text
			if strings.Contains(text, "nolint") &&
				(!strings.Contains(text, ":") || strings.Contains(text, name)) {
				return true
			}
		}
	}

	return false
}
