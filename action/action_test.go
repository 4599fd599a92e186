package action

import (
	"reflect"
	"testing"
)

func TestDetermine(t *testing.T) {
	if v := Determine(nil); v != nil {
		t.Fatalf("unexpected value: %v", v)
	}
	if v := Determine([]any{"a", "b"}); v != "a" {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestBind(t *testing.T) {
	tests := []struct {
		caption string
		args    []any
		kwargs  []Binding
		want    []Binding
	}{
		{
			caption: "binds the determined value and keeps earlier bindings",
			args:    []any{"42"},
			kwargs:  []Binding{{Name: "y", Value: "1"}},
			want: []Binding{
				{Name: "y", Value: "1"},
				{Name: "x", Value: "42"},
			},
		},
		{
			caption: "binds nil when nothing was emitted",
			want: []Binding{
				{Name: "x", Value: nil},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			args, kwargs, err := Bind("x").Invoke("", 0, 0, tt.args, tt.kwargs)
			if err != nil {
				t.Fatal(err)
			}
			if len(args) != 0 {
				t.Fatalf("a binding must emit no values; got: %#v", args)
			}
			if !reflect.DeepEqual(kwargs, tt.want) {
				t.Fatalf("unexpected bindings; want: %#v, got: %#v", tt.want, kwargs)
			}
		})
	}
}

func TestCall(t *testing.T) {
	act := Call(func(s string, start, end int, args []any, _ []Binding) (any, error) {
		return s[start:end] + "!", nil
	})
	args, kwargs, err := act.Invoke("abc", 0, 2, []any{"x"}, []Binding{{Name: "n", Value: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(args, []any{"ab!"}) {
		t.Fatalf("unexpected values: %#v", args)
	}
	if len(kwargs) != 0 {
		t.Fatalf("a call must drop the local bindings; got: %#v", kwargs)
	}
}

func TestConstant(t *testing.T) {
	args, kwargs, err := Constant(42).Invoke("", 0, 0, []any{"dropped"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(args, []any{42}) {
		t.Fatalf("unexpected values: %#v", args)
	}
	if len(kwargs) != 0 {
		t.Fatalf("unexpected bindings: %#v", kwargs)
	}
}

func TestFirstAndLast(t *testing.T) {
	args := []any{"a", "b", "c"}

	got, _, err := First().Invoke("", 0, 0, args, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []any{"a"}) {
		t.Fatalf("unexpected values: %#v", got)
	}

	got, _, err = Last().Invoke("", 0, 0, args, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []any{"c"}) {
		t.Fatalf("unexpected values: %#v", got)
	}

	_, _, err = First().Invoke("", 0, 0, nil, nil)
	if err == nil {
		t.Fatal("an error must occur")
	}
	_, _, err = Last().Invoke("", 0, 0, nil, nil)
	if err == nil {
		t.Fatal("an error must occur")
	}
}

func TestPack(t *testing.T) {
	act := Pack(func(_ string, _, _ int, args []any, _ []Binding) (any, error) {
		vs := args[0].([]any)
		return len(vs), nil
	})
	args, kwargs, err := act.Invoke("", 0, 0, []any{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(args, []any{3}) {
		t.Fatalf("unexpected values: %#v", args)
	}
	if len(kwargs) != 0 {
		t.Fatalf("a pack must drop the local bindings; got: %#v", kwargs)
	}
}

func TestJoin(t *testing.T) {
	tag := func(_ string, _, _ int, args []any, _ []Binding) (any, error) {
		return "<" + args[0].(string) + ">", nil
	}

	args, _, err := Join(tag, ",").Invoke("", 0, 0, []any{"a", "b"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(args, []any{"<a,b>"}) {
		t.Fatalf("unexpected values: %#v", args)
	}

	_, _, err = Join(tag, ",").Invoke("", 0, 0, []any{"a", 1}, nil)
	if err == nil {
		t.Fatal("an error must occur")
	}
}

func TestFail(t *testing.T) {
	_, _, err := Fail("boom").Invoke("", 0, 0, nil, nil)
	if err == nil {
		t.Fatal("an error must occur")
	}
	if err.Error() != "boom" {
		t.Fatalf("unexpected error: %v", err)
	}
}
