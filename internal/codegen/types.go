package codegen

import (
	"fmt"
	"strings"

	"github.com/tanep3/Tsuchinoko/internal/typesystem"
)

// rustType implements spec §4.4's container mapping: list[T] -> Vec<T>,
// dict[K,V] -> HashMap<K,V>, set[T] -> HashSet<T>, tuple[...] -> tuple,
// Optional[T] -> Option<T>, Any -> the runtime tagged value from the
// bridge client crate.
func rustType(t typesystem.Type) string {
	switch v := t.(type) {
	case typesystem.TUnit:
		return "()"
	case typesystem.TBool:
		return "bool"
	case typesystem.TInt:
		return "i64"
	case typesystem.TFloat:
		return "f64"
	case typesystem.TStr:
		return "String"
	case typesystem.TAny:
		return "tnk_bridge::Value"
	case typesystem.TList:
		return "Vec<" + rustType(v.Elem) + ">"
	case typesystem.TSet:
		return "std::collections::HashSet<" + rustType(v.Elem) + ">"
	case typesystem.TDict:
		return fmt.Sprintf("std::collections::HashMap<%s, %s>", rustType(v.Key), rustType(v.Value))
	case typesystem.TTuple:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = rustType(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case typesystem.TOption:
		return "Option<" + rustType(v.Inner) + ">"
	case typesystem.TStruct:
		return v.Name
	case typesystem.TCallable:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = rustType(p)
		}
		return fmt.Sprintf("Box<dyn Fn(%s) -> %s>", strings.Join(params, ", "), rustType(v.Ret))
	}
	return "tnk_bridge::Value"
}

// rustParamType applies the parameter-site borrowing rule (spec §4.4): str
// always becomes &str, with no check of whether the parameter is retained;
// list, dict and set parameters become shared references, or &mut
// references when mutated is true.
func rustParamType(t typesystem.Type, mutated bool) string {
	if _, ok := t.(typesystem.TStr); ok {
		return "&str"
	}
	switch t.(type) {
	case typesystem.TList, typesystem.TDict, typesystem.TSet:
		if mutated {
			return "&mut " + rustType(t)
		}
		return "&" + rustType(t)
	}
	return rustType(t)
}

// resultType wraps t in the result-carrying return shape for a may_raise
// function (spec §4.4 "functions marked may_raise return a result type").
func resultType(t typesystem.Type) string {
	return fmt.Sprintf("Result<%s, tnk_bridge::TnkError>", rustType(t))
}
