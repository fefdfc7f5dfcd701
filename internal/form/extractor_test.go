package form

import "testing"

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name      string
		formParam string
		params    Nested
		want      Fields
	}{
		{
			"nested candidate key",
			"",
			Nested{"contact": Nested{"name": Scalar("J"), "email": Scalar("j@x.com"), "message": Scalar("hi")}},
			Fields{Name: "J", Email: "j@x.com", Message: "hi"},
		},
		{
			"explicit form param wins",
			"custom",
			Nested{
				"contact": Nested{"name": Scalar("wrong")},
				"custom":  Nested{"name": Scalar("right"), "email": Scalar("r@x.com"), "message": Scalar("m")},
			},
			Fields{Name: "right", Email: "r@x.com", Message: "m"},
		},
		{
			"explicit form param holding a scalar falls through to candidates",
			"custom",
			Nested{
				"custom":  Scalar("not a form"),
				"contact": Nested{"name": Scalar("J"), "email": Scalar("j@x.com"), "message": Scalar("hi")},
			},
			Fields{Name: "J", Email: "j@x.com", Message: "hi"},
		},
		{
			"candidate order short-circuits",
			"",
			Nested{
				"commission": Nested{"name": Scalar("first"), "email": Scalar("f@x.com"), "message": Scalar("m1")},
				"contact":    Nested{"name": Scalar("second"), "email": Scalar("s@x.com"), "message": Scalar("m2")},
			},
			Fields{Name: "first", Email: "f@x.com", Message: "m1"},
		},
		{
			"flat fallback with split name",
			"",
			Nested{
				"first_name": Scalar("A"),
				"last_name":  Scalar("B"),
				"email":      Scalar("a@b.com"),
				"message":    Scalar("m"),
			},
			Fields{Name: "A B", Email: "a@b.com", Message: "m"},
		},
		{
			"first name only trims the join",
			"",
			Nested{"first_name": Scalar("A"), "email": Scalar("a@b.com"), "message": Scalar("m")},
			Fields{Name: "A", Email: "a@b.com", Message: "m"},
		},
		{
			"missing name parts yield empty string",
			"",
			Nested{"email": Scalar("a@b.com"), "message": Scalar("m")},
			Fields{Name: "", Email: "a@b.com", Message: "m"},
		},
		{
			"message falls back to body then content",
			"",
			Nested{"contact": Nested{"name": Scalar("J"), "email": Scalar("j@x.com"), "body": Scalar("from body")}},
			Fields{Name: "J", Email: "j@x.com", Message: "from body"},
		},
		{
			"content fallback",
			"",
			Nested{"contact": Nested{"name": Scalar("J"), "email": Scalar("j@x.com"), "content": Scalar("from content")}},
			Fields{Name: "J", Email: "j@x.com", Message: "from content"},
		},
		{
			"scalar candidate values are skipped",
			"",
			Nested{
				"message": Scalar("just a flat field"),
				"name":    Scalar("Flat"),
				"email":   Scalar("flat@x.com"),
			},
			Fields{Name: "Flat", Email: "flat@x.com", Message: "just a flat field"},
		},
		{
			"empty params",
			"",
			Nested{},
			Fields{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewExtractor(tt.formParam).Extract(tt.params)
			if got != tt.want {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFields_Complete(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   bool
	}{
		{"all present", Fields{Name: "A", Email: "a@b.com", Message: "m"}, true},
		{"blank name", Fields{Name: "  ", Email: "a@b.com", Message: "m"}, false},
		{"missing email", Fields{Name: "A", Message: "m"}, false},
		{"missing message", Fields{Name: "A", Email: "a@b.com"}, false},
		{"empty", Fields{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fields.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
