// Package walk traverses goja syntax trees and dispatches nodes to handlers registered by kind.
//
// The walk is a depth-first pre-order traversal driven by reflection over the exported fields of the
// goja ast types, so node types added to goja are traversed without changes here. Children are
// visited in field declaration order and sequences in element order, which matches source order.
package walk

import (
	"reflect"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
)

// Kind names a node type, for example CallExpression or StringLiteral.
type Kind string

// HandlerFunc is called for every node of the kind it is registered for.
// parent is the nearest enclosing node, nil for the root.
type HandlerFunc func(node, parent ast.Node)

// Handlers maps node kinds to the handler invoked for them.
type Handlers map[Kind]HandlerFunc

// PanicHandler observes a handler panic. The walk continues with the node's children.
type PanicHandler func(kind Kind, path Locations, recovered any)

// Option configures a walk.
type Option func(*config)

type config struct {
	onPanic PanicHandler
}

// WithPanicHandler registers a function that observes recovered handler panics.
func WithPanicHandler(fn PanicHandler) Option {
	return func(c *config) {
		c.onPanic = fn
	}
}

var (
	astPkgPath  = reflect.TypeOf(ast.Program{}).PkgPath()
	idxType     = reflect.TypeOf(file.Idx(0))
	skipFields  = map[string]struct{}{"DeclarationList": {}}
	nodeIfcType = reflect.TypeOf((*ast.Node)(nil)).Elem()
)

// KindOf returns the kind of node.
func KindOf(node ast.Node) Kind {
	if node == nil {
		return ""
	}

	t := reflect.TypeOf(node)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return Kind(t.Name())
}

// Walk visits every node reachable from root and calls the handler registered for its kind before
// descending into its children. root is usually an *ast.Program but any node or slice of nodes works.
func Walk(root any, handlers Handlers, opts ...Option) {
	if root == nil {
		return
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	w := &walker{handlers: handlers, config: cfg}
	w.visit(reflect.ValueOf(root), nil, nil)
}

type walker struct {
	handlers Handlers
	config   *config
}

func (w *walker) visit(v reflect.Value, parent ast.Node, path Locations) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		w.visit(v.Elem(), parent, path)
	case reflect.Ptr:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct || !isASTType(v.Type().Elem()) {
			return
		}
		w.visitStruct(v, parent, path)
	case reflect.Struct:
		if !isASTType(v.Type()) {
			return
		}
		if !v.CanAddr() {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			v = ptr.Elem()
		}
		w.visitStruct(v.Addr(), parent, path)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			w.visit(v.Index(i), parent, path.withIndex(i))
		}
	default:
		// scalars carry no children
	}
}

func (w *walker) visitStruct(ptr reflect.Value, parent ast.Node, path Locations) {
	if ptr.Type().Implements(nodeIfcType) {
		node, _ := ptr.Interface().(ast.Node)
		w.dispatch(node, parent, path)
		parent = node
	}

	v := ptr.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type == idxType {
			continue
		}
		if _, skip := skipFields[field.Name]; skip {
			continue
		}

		w.visit(v.Field(i), parent, path.withField(field.Name))
	}
}

func (w *walker) dispatch(node, parent ast.Node, path Locations) {
	kind := KindOf(node)

	handler, ok := w.handlers[kind]
	if !ok || handler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil && w.config.onPanic != nil {
			w.config.onPanic(kind, path, r)
		}
	}()

	handler(node, parent)
}

func isASTType(t reflect.Type) bool {
	return t.PkgPath() == astPkgPath
}
