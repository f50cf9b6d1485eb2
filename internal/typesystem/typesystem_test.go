package typesystem

import "testing"

func TestTypeStringForms(t *testing.T) {
	cases := []struct {
		ty   Type
		want string
	}{
		{Int, "Int"},
		{TList{Elem: Str}, "List[Str]"},
		{TDict{Key: Str, Value: Int}, "Dict[Str, Int]"},
		{TOption{Inner: Int}, "Option[Int]"},
		{TTuple{Elems: []Type{Int, Str}}, "Tuple[Int, Str]"},
		{TStruct{Name: "Point"}, "Point"},
		{TCallable{Params: []Type{Int, Int}, Ret: Bool}, "(Int, Int) -> Bool"},
	}
	for _, c := range cases {
		if got := c.ty.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestTypeEqual(t *testing.T) {
	if !(TList{Elem: Int}).Equal(TList{Elem: Int}) {
		t.Error("expected List[Int] to equal List[Int]")
	}
	if (TList{Elem: Int}).Equal(TList{Elem: Str}) {
		t.Error("did not expect List[Int] to equal List[Str]")
	}
	if (TDict{Key: Str, Value: Int}).Equal(TDict{Key: Str, Value: Str}) {
		t.Error("did not expect Dict[Str,Int] to equal Dict[Str,Str]")
	}
	if !Any.Equal(TAny{}) {
		t.Error("expected Any to equal TAny{}")
	}
}

func TestIsAny(t *testing.T) {
	if !IsAny(Any) {
		t.Error("expected IsAny(Any) to be true")
	}
	if IsAny(Int) {
		t.Error("did not expect IsAny(Int) to be true")
	}
}

func TestParseAnnotationPrimitives(t *testing.T) {
	cases := map[string]Type{
		"int":    Int,
		"float":  Float,
		"str":    Str,
		"bool":   Bool,
		"None":   Unit,
		"Any":    Any,
		"object": Any,
		"":       Any,
	}
	for raw, want := range cases {
		if got := ParseAnnotation(raw, nil); !got.Equal(want) {
			t.Errorf("ParseAnnotation(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseAnnotationContainers(t *testing.T) {
	got := ParseAnnotation("list[int]", nil)
	want := TList{Elem: Int}
	if !got.Equal(want) {
		t.Errorf("ParseAnnotation(list[int]) = %s, want %s", got, want)
	}

	got = ParseAnnotation("Dict[str, int]", nil)
	wantDict := TDict{Key: Str, Value: Int}
	if !got.Equal(wantDict) {
		t.Errorf("ParseAnnotation(Dict[str, int]) = %s, want %s", got, wantDict)
	}

	got = ParseAnnotation("Optional[str]", nil)
	wantOpt := TOption{Inner: Str}
	if !got.Equal(wantOpt) {
		t.Errorf("ParseAnnotation(Optional[str]) = %s, want %s", got, wantOpt)
	}

	got = ParseAnnotation("tuple[int, str, bool]", nil)
	wantTuple := TTuple{Elems: []Type{Int, Str, Bool}}
	if !got.Equal(wantTuple) {
		t.Errorf("ParseAnnotation(tuple[int, str, bool]) = %s, want %s", got, wantTuple)
	}
}

func TestParseAnnotationNestedContainers(t *testing.T) {
	got := ParseAnnotation("dict[str, list[int]]", nil)
	want := TDict{Key: Str, Value: TList{Elem: Int}}
	if !got.Equal(want) {
		t.Errorf("ParseAnnotation(dict[str, list[int]]) = %s, want %s", got, want)
	}
}

func TestParseAnnotationKnownAndUnknownClasses(t *testing.T) {
	known := map[string]bool{"Point": true}
	if got := ParseAnnotation("Point", known); !got.Equal(TStruct{Name: "Point"}) {
		t.Errorf("ParseAnnotation(Point) = %s, want Point", got)
	}
	if got := ParseAnnotation("Unknown", known); !got.Equal(Any) {
		t.Errorf("ParseAnnotation(Unknown) = %s, want Any", got)
	}
}

func TestJoin(t *testing.T) {
	if got := Join(Int, Int); !got.Equal(Int) {
		t.Errorf("Join(Int, Int) = %s, want Int", got)
	}
	if got := Join(TOption{Inner: Int}, Int); !got.Equal(TOption{Inner: Int}) {
		t.Errorf("Join(Option[Int], Int) = %s, want Option[Int]", got)
	}
	if got := Join(Int, TOption{Inner: Int}); !got.Equal(TOption{Inner: Int}) {
		t.Errorf("Join(Int, Option[Int]) = %s, want Option[Int]", got)
	}
	if got := Join(Int, Str); !got.Equal(Any) {
		t.Errorf("Join(Int, Str) = %s, want Any", got)
	}
	if got := Join(nil, Int); !got.Equal(Int) {
		t.Errorf("Join(nil, Int) = %s, want Int", got)
	}
}

func TestUnify(t *testing.T) {
	if err := Unify(Int, Int); err != nil {
		t.Errorf("Unify(Int, Int) = %v, want nil", err)
	}
	if err := Unify(Any, Str); err != nil {
		t.Errorf("Unify(Any, Str) = %v, want nil", err)
	}
	if err := Unify(Str, Any); err != nil {
		t.Errorf("Unify(Str, Any) = %v, want nil", err)
	}
	err := Unify(Int, Str)
	if err == nil {
		t.Fatal("expected mismatch error for Unify(Int, Str)")
	}
	if _, ok := err.(*MismatchError); !ok {
		t.Errorf("error type = %T, want *MismatchError", err)
	}
}
