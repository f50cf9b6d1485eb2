package analyzer

import (
	"github.com/tanep3/Tsuchinoko/internal/ast"
	"github.com/tanep3/Tsuchinoko/internal/ir"
	"github.com/tanep3/Tsuchinoko/internal/symbols"
)

func (a *Analyzer) matchFunctionDef(n *ast.FunctionDef, scope symbols.ScopeID) *ir.FunctionDef {
	fnScope := a.tree.New(scope, symbols.ScopeFunction)
	fd := ir.NewFunctionDef(n.Name, scope, n.Token.Line)
	fd.ReturnType = a.parseAnnot(n.ReturnType)
	fd.IsMethod = n.IsMethod
	fd.ReceiverOf = n.ReceiverName

	for _, p := range n.Params {
		pt := a.parseAnnot(p.TypeAnnot)
		fd.Params = append(fd.Params, ir.Param{Name: p.Name, Type: pt})
		a.table.Declare(&symbols.Binding{Name: p.Name, Scope: fnScope, Type: pt, IsParameter: true})
	}

	fd.Body = a.matchBlock(n.Body, fnScope)

	qualified := n.Name
	if n.IsMethod {
		qualified = n.ReceiverName + "." + n.Name
	}
	a.funcs[qualified] = fd
	if a.callGraph[qualified] == nil {
		a.callGraph[qualified] = make(map[string]bool)
	}
	// Build the call graph from the same exhaustive walker the
	// post-effect-pass call-site marker uses (callsites.go), so a
	// MethodCall edge or a call buried in a nested expression is never
	// visible to one and invisible to the other (spec §4.3 "transitively
	// calls another may_raise function").
	walkCallSites(fd.Body, func(name string, _ ir.Node) {
		a.callGraph[qualified][name] = true
	})
	return fd
}

func (a *Analyzer) matchClassDef(n *ast.ClassDef, scope symbols.ScopeID) *ir.ClassDef {
	cd := a.classes[n.Name]
	if cd == nil {
		cd = ir.NewClassDef(n.Name, scope, n.Token.Line)
		a.classes[n.Name] = cd
	}
	cd.IsDataclass = n.IsDataclass
	for _, f := range n.Fields {
		cd.Fields = append(cd.Fields, ir.Field{Name: f.Name, Type: a.parseAnnot(f.TypeAnnot)})
	}
	classScope := a.tree.New(scope, symbols.ScopeClass)
	for _, m := range n.Methods {
		m.IsMethod = true
		m.ReceiverName = n.Name
		cd.Methods = append(cd.Methods, a.matchFunctionDef(m, classScope))
	}
	for _, p := range n.Properties {
		p.Getter.IsMethod = true
		p.Getter.ReceiverName = n.Name
		cd.Methods = append(cd.Methods, a.matchFunctionDef(p.Getter, classScope))
		if p.Setter != nil {
			p.Setter.IsMethod = true
			p.Setter.ReceiverName = n.Name
			cd.Methods = append(cd.Methods, a.matchFunctionDef(p.Setter, classScope))
		}
	}
	return cd
}
