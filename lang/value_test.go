package lang

import "testing"

func numbers(vals ...float64) Value {
	q := QExpr()
	for _, v := range vals {
		q.Append(NumberValue(v))
	}
	return q
}

func TestListOperations(t *testing.T) {
	t.Run("PopFront", func(t *testing.T) {
		l := numbers(1, 2, 3)
		first := l.PopFront()
		if first.Num() != 1 || l.String() != "{2 3}" {
			t.Fatalf("PopFront => %s, list %s", first, l)
		}
	})

	t.Run("PopFront on empty list panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic")
			}
		}()
		QExpr().PopFront()
	})

	t.Run("Take discards siblings", func(t *testing.T) {
		l := numbers(1, 2, 3)
		got := l.Take(1)
		if got.Num() != 2 || l.Len() != 0 {
			t.Fatalf("Take => %s, list %s", got, l)
		}
	})

	t.Run("Split keeps prefix", func(t *testing.T) {
		l := numbers(1, 2, 3, 4)
		suffix := l.Split(1)
		if l.String() != "{1}" || suffix.String() != "{2 3 4}" {
			t.Fatalf("Split => prefix %s suffix %s", l, suffix)
		}
		if suffix.Type != TypeQExpr {
			t.Fatalf("Split should keep the list kind, got %s", suffix.Type)
		}
	})

	t.Run("Join appends in order", func(t *testing.T) {
		l := numbers(1)
		l.Join(numbers(2, 3))
		if l.String() != "{1 2 3}" {
			t.Fatalf("Join => %s", l)
		}
	})

	t.Run("PushFront", func(t *testing.T) {
		l := numbers(2, 3).PushFront(NumberValue(1))
		if l.String() != "{1 2 3}" {
			t.Fatalf("PushFront => %s", l)
		}
	})

	t.Run("retagging shares children", func(t *testing.T) {
		q := numbers(1, 2)
		s := q.AsSExpr()
		s.PopFront()
		if q.String() != "{2}" || s.String() != "(2)" {
			t.Fatalf("expected shared storage, got %s and %s", q, s)
		}
	})
}

func TestValueCopyIsDeep(t *testing.T) {
	inner := numbers(1, 2)
	outer := QExpr(inner, NumberValue(3))
	cp := outer.Copy()
	cp.Cell(0).PopFront()
	if outer.String() != "{{1 2} 3}" {
		t.Fatalf("copy shares nested storage: %s", outer)
	}

	env := NewEnv(nil)
	l := LambdaValue(QExpr(SymbolValue("x")), QExpr(SymbolValue("x")), env)
	lc := l.Copy()
	if lc.Lambda().Env != env {
		t.Fatalf("lambda copy must share its scope")
	}
	lc.Lambda().Formals.PopFront()
	if l.Lambda().Formals.Len() != 1 {
		t.Fatalf("lambda copy shares formals")
	}
}

func TestEqual(t *testing.T) {
	b1 := &Builtin{Name: "f"}
	b2 := &Builtin{Name: "f"}
	envA, envB := NewEnv(nil), NewEnv(nil)

	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers", NumberValue(1), NumberValue(1), true},
		{"different numbers", NumberValue(1), NumberValue(2), false},
		{"strings", StringValue("a"), StringValue("a"), true},
		{"symbol vs string", SymbolValue("a"), StringValue("a"), false},
		{"bools", BoolValue(true), BoolValue(false), false},
		{"lists", numbers(1, 2), numbers(1, 2), true},
		{"list lengths", numbers(1, 2), numbers(1), false},
		{"list kinds", numbers(1), SExpr(NumberValue(1)), false},
		{"same builtin", BuiltinValue(b1), BuiltinValue(b1), true},
		{"distinct builtins", BuiltinValue(b1), BuiltinValue(b2), false},
		{
			"lambdas ignore scope",
			LambdaValue(QExpr(SymbolValue("x")), QExpr(SymbolValue("x")), envA),
			LambdaValue(QExpr(SymbolValue("x")), QExpr(SymbolValue("x")), envB),
			true,
		},
		{
			"lambdas differ by body",
			LambdaValue(QExpr(SymbolValue("x")), QExpr(SymbolValue("x")), envA),
			LambdaValue(QExpr(SymbolValue("x")), QExpr(NumberValue(1)), envA),
			false,
		},
		{"errors", DivisionByZeroError(), DivisionByZeroError(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equal(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{NumberValue(6), "6"},
		{NumberValue(0.9), "0.9"},
		{NumberValue(-2.5), "-2.5"},
		{NumberValue(3628800), "3628800"},
		{NumberValue(1e21), "1e+21"},
		{NumberValue(0.000001), "1e-06"},
		{StringValue("a\"b"), `"a\"b"`},
		{BoolValue(true), "true"},
		{SymbolValue("x"), "x"},
		{SExpr(), "()"},
		{QExpr(), "{}"},
		{SExpr(SymbolValue("+"), NumberValue(1), QExpr(NumberValue(2))), "(+ 1 {2})"},
		{BuiltinValue(&Builtin{Name: "head"}), "head"},
		{BuiltinValue(&Builtin{}), "<builtin>"},
		{LambdaValue(QExpr(SymbolValue("x")), QExpr(SymbolValue("x")), nil), `(\ {x} {x})`},
		{EmptyListError("head"), "Error: head: empty list"},
		{Value{}, "<invalid>"},
	}
	for _, tc := range cases {
		if got := tc.val.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	if !IsTruthy(BoolValue(true)) || IsTruthy(BoolValue(false)) {
		t.Fatalf("booleans should map directly")
	}
	if !IsTruthy(NumberValue(2)) || IsTruthy(NumberValue(0)) {
		t.Fatalf("non-zero numbers are true")
	}
	if IsTruthy(StringValue("x")) {
		t.Fatalf("strings are not conditions")
	}
}
