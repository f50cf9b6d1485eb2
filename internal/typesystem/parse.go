package typesystem

import "strings"

// ParseAnnotation turns the raw annotation text captured by the parser
// (e.g. "list[int]", "Optional[str]", "Dict[str, int]") into a Type. known
// resolves a bare class name to TStruct only if it was declared; otherwise
// an unrecognized bare name is treated as Any so unresolved names don't
// silently become a wrong concrete type (spec §3 invariant: "every IR
// node's type is either concrete or explicitly Any; no unknown").
func ParseAnnotation(raw string, knownClasses map[string]bool) Type {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Any
	}
	switch raw {
	case "int":
		return Int
	case "float":
		return Float
	case "str":
		return Str
	case "bool":
		return Bool
	case "None":
		return Unit
	case "Any", "object":
		return Any
	}

	if inner, ok := bracketed(raw, "Optional"); ok {
		return TOption{Inner: ParseAnnotation(inner, knownClasses)}
	}
	if inner, ok := bracketed(raw, "list"); ok {
		return TList{Elem: ParseAnnotation(inner, knownClasses)}
	}
	if inner, ok := bracketed(raw, "List"); ok {
		return TList{Elem: ParseAnnotation(inner, knownClasses)}
	}
	if inner, ok := bracketed(raw, "set"); ok {
		return TSet{Elem: ParseAnnotation(inner, knownClasses)}
	}
	if inner, ok := bracketed(raw, "Set"); ok {
		return TSet{Elem: ParseAnnotation(inner, knownClasses)}
	}
	if inner, ok := bracketed(raw, "dict"); ok {
		k, v := splitTop(inner)
		return TDict{Key: ParseAnnotation(k, knownClasses), Value: ParseAnnotation(v, knownClasses)}
	}
	if inner, ok := bracketed(raw, "Dict"); ok {
		k, v := splitTop(inner)
		return TDict{Key: ParseAnnotation(k, knownClasses), Value: ParseAnnotation(v, knownClasses)}
	}
	if inner, ok := bracketed(raw, "tuple"); ok {
		parts := splitAllTop(inner)
		elems := make([]Type, len(parts))
		for i, p := range parts {
			elems[i] = ParseAnnotation(p, knownClasses)
		}
		return TTuple{Elems: elems}
	}

	if knownClasses[raw] {
		return TStruct{Name: raw}
	}
	return Any
}

func bracketed(raw, prefix string) (string, bool) {
	if !strings.HasPrefix(raw, prefix+"[") || !strings.HasSuffix(raw, "]") {
		return "", false
	}
	return raw[len(prefix)+1 : len(raw)-1], true
}

func splitTop(s string) (string, string) {
	parts := splitAllTop(s)
	if len(parts) != 2 {
		return s, "Any"
	}
	return parts[0], parts[1]
}

func splitAllTop(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, ch := range s {
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}
