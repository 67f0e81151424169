package rules

import (
	"github.com/addonreview/cachelint/validation"
	"github.com/addonreview/cachelint/walk"
	"github.com/dop251/goja/ast"
)

var (
	ajaxHelpers = map[string]bool{"$": true, "jQuery": true}
	ajaxMethods = map[string]bool{"get": true, "post": true, "ajax": true}
)

type MissingCacheSegmentRule struct{}

func (r *MissingCacheSegmentRule) ID() string       { return validation.RuleMissingCacheSegment }
func (r *MissingCacheSegmentRule) Category() string { return CategoryCaching }
func (r *MissingCacheSegmentRule) Description() string {
	return "Requests to the platform domains made with fetch or the jQuery AJAX helpers must include the /cache/ path segment. Requests without it bypass the platform cache layer and hit the application servers directly, which is rejected during addon review."
}
func (r *MissingCacheSegmentRule) Summary() string {
	return "Platform requests must go through the /cache/ path segment."
}
func (r *MissingCacheSegmentRule) Link() string {
	return "https://github.com/addonreview/cachelint/blob/main/README.md#missing-cache-segment"
}
func (r *MissingCacheSegmentRule) DefaultSeverity() validation.Severity {
	return validation.SeverityBlocker
}
func (r *MissingCacheSegmentRule) Kinds() []walk.Kind {
	return []walk.Kind{"CallExpression"}
}

func (r *MissingCacheSegmentRule) GoodExample() string {
	return `fetch("https://shop.myshoptet.com/cache/api/orders");
$.get("https://shop.myshoptet.com/cache/products");`
}

func (r *MissingCacheSegmentRule) BadExample() string {
	return `fetch("https://shop.myshoptet.com/api/orders");
$.post("https://shop.myshoptet.com/action/cart");`
}

func (r *MissingCacheSegmentRule) Rationale() string {
	return "Uncached requests from storefront scripts multiply the load on shop servers with every visitor. Only literal URLs are checked; URLs built at runtime and $.ajax settings objects are not evaluated."
}

func (r *MissingCacheSegmentRule) Check(rc *Context, node, _ ast.Node) {
	call, ok := node.(*ast.CallExpression)
	if !ok || len(call.ArgumentList) == 0 {
		return
	}

	method, ok := callStyle(call.Callee)
	if !ok {
		return
	}

	arg := call.ArgumentList[0]
	rawURL, ok := staticString(arg)
	if !ok {
		return
	}

	// Lowering folds concatenations and inlines constants into plain strings, so the literal
	// must also be present in the text as written.
	if rc.Unit.Lowered() {
		lit, ok := rc.Unit.LiteralAt(arg)
		if !ok {
			return
		}
		if written, ok := lit.Value(); !ok || written != rawURL {
			return
		}
	}

	host, violates := rc.Pattern.Violates(rawURL)
	if !violates {
		return
	}

	rc.Report(r, arg, map[string]string{
		DataMethod:  method,
		DataURL:     rawURL,
		DataHost:    host,
		DataSegment: rc.Pattern.Segment(),
	})
}

// callStyle names a fetch or jQuery AJAX helper callee as written, for example "fetch" or "$.get".
func callStyle(callee ast.Expression) (string, bool) {
	switch c := callee.(type) {
	case *ast.Identifier:
		if c.Name == "fetch" {
			return "fetch", true
		}
	case *ast.DotExpression:
		helper, ok := c.Left.(*ast.Identifier)
		if !ok || !ajaxHelpers[helper.Name.String()] {
			return "", false
		}
		method := c.Identifier.Name.String()
		if ajaxMethods[method] {
			return helper.Name.String() + "." + method, true
		}
	}
	return "", false
}

// staticString returns the text of a string literal or of a template literal without substitutions.
func staticString(expr ast.Expression) (string, bool) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return e.Value.String(), true
	case *ast.TemplateLiteral:
		if e.Tag != nil || len(e.Expressions) > 0 || len(e.Elements) != 1 || !e.Elements[0].Valid {
			return "", false
		}
		return e.Elements[0].Parsed.String(), true
	}
	return "", false
}
