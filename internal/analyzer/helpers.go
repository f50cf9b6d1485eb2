package analyzer

import "github.com/tanep3/Tsuchinoko/internal/typesystem"

func unitType() typesystem.Type { return typesystem.Unit }

func (a *Analyzer) knownClasses() map[string]bool {
	known := make(map[string]bool, len(a.classes))
	for name := range a.classes {
		known[name] = true
	}
	return known
}

func (a *Analyzer) parseAnnot(raw string) typesystem.Type {
	return typesystem.ParseAnnotation(raw, a.knownClasses())
}
