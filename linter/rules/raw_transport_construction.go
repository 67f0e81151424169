package rules

import (
	"strings"

	"github.com/addonreview/cachelint/validation"
	"github.com/addonreview/cachelint/walk"
	"github.com/dop251/goja/ast"
)

const rawTransport = "XMLHttpRequest"

type RawTransportConstructionRule struct{}

func (r *RawTransportConstructionRule) ID() string {
	return validation.RuleRawTransportConstruction
}

func (r *RawTransportConstructionRule) Description() string {
	return "Direct construction of XMLHttpRequest is reported for manual review. The target URL is passed later through open(), so the linter cannot tell whether platform requests carry the /cache/ segment."
}

func (r *RawTransportConstructionRule) Summary() string {
	return "XMLHttpRequest usage must be checked for the /cache/ segment by hand."
}

func (r *RawTransportConstructionRule) Category() string {
	return CategoryTransport
}

func (r *RawTransportConstructionRule) DefaultSeverity() validation.Severity {
	return validation.SeverityRecommend
}

func (r *RawTransportConstructionRule) Link() string {
	return "https://github.com/addonreview/cachelint/blob/main/README.md#raw-transport-construction"
}

func (r *RawTransportConstructionRule) Kinds() []walk.Kind {
	return []walk.Kind{"NewExpression"}
}

func (r *RawTransportConstructionRule) GoodExample() string {
	return `fetch("https://shop.myshoptet.com/cache/api/orders");`
}

func (r *RawTransportConstructionRule) BadExample() string {
	return `const xhr = new XMLHttpRequest();
xhr.open("GET", "https://shop.myshoptet.com/api/orders");`
}

func (r *RawTransportConstructionRule) Rationale() string {
	return "Prefer fetch or the jQuery helpers with literal URLs so requests can be verified automatically."
}

func (r *RawTransportConstructionRule) Check(rc *Context, node, _ ast.Node) {
	expr, ok := node.(*ast.NewExpression)
	if !ok {
		return
	}

	callee, ok := expr.Callee.(*ast.Identifier)
	if !ok || callee.Name != rawTransport {
		return
	}

	rc.Report(r, expr, map[string]string{
		DataConstructor: rawTransport,
		DataSegment:     rc.Pattern.Segment(),
		DataDomains:     strings.Join(rc.Pattern.Domains(), ", "),
	})
}
