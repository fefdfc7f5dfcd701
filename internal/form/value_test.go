package form

import (
	"net/url"
	"reflect"
	"testing"
)

func TestFromJSON(t *testing.T) {
	params, err := FromJSON([]byte(`{
		"contact": {"name": "J", "age": 30, "subscribed": true, "note": null},
		"utf8": "✓"
	}`))
	if err != nil {
		t.Fatalf("FromJSON() error: %v", err)
	}

	want := Nested{
		"contact": Nested{
			"name":       Scalar("J"),
			"age":        Scalar("30"),
			"subscribed": Scalar("true"),
			"note":       Scalar(""),
		},
		"utf8": Scalar("✓"),
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("FromJSON() = %#v, want %#v", params, want)
	}
}

func TestFromJSON_RejectsNonObject(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"scalar"`, `not json`} {
		if _, err := FromJSON([]byte(input)); err == nil {
			t.Errorf("FromJSON(%q) expected error", input)
		}
	}
}

func TestFromValues(t *testing.T) {
	values := url.Values{
		"contact[name]":    {"J"},
		"contact[email]":   {"j@x.com"},
		"contact[message]": {"hi"},
		"page":             {"1"},
		"tags[]":           {"a"},
	}

	params := FromValues(values)
	want := Nested{
		"contact": Nested{
			"name":    Scalar("J"),
			"email":   Scalar("j@x.com"),
			"message": Scalar("hi"),
		},
		"page": Scalar("1"),
		"tags": Scalar("a"),
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("FromValues() = %#v, want %#v", params, want)
	}
}

func TestFromValues_DeepNesting(t *testing.T) {
	params := FromValues(url.Values{"a[b][c]": {"deep"}})
	inner, ok := params["a"].(Nested)
	if !ok {
		t.Fatalf("a is not nested: %#v", params)
	}
	innermost, ok := inner["b"].(Nested)
	if !ok {
		t.Fatalf("a[b] is not nested: %#v", inner)
	}
	if innermost["c"] != Scalar("deep") {
		t.Errorf("a[b][c] = %#v", innermost["c"])
	}
}

func TestSplitBracketKey(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"plain", []string{"plain"}},
		{"contact[name]", []string{"contact", "name"}},
		{"a[b][c]", []string{"a", "b", "c"}},
		{"tags[]", []string{"tags"}},
	}
	for _, tt := range tests {
		if got := splitBracketKey(tt.key); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitBracketKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
