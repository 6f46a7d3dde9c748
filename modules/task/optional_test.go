package task

import (
	"encoding/json"
	"testing"
)

type optionalHolder struct {
	Field Optional[string] `json:"field,omitzero"`
}

func TestOptionalUnmarshal(t *testing.T) {
	t.Run("absent key stays unset", func(t *testing.T) {
		var h optionalHolder
		if err := json.Unmarshal([]byte(`{}`), &h); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if h.Field.Set {
			t.Error("expected Set=false for absent key")
		}
	})

	t.Run("explicit null is set and null", func(t *testing.T) {
		var h optionalHolder
		if err := json.Unmarshal([]byte(`{"field":null}`), &h); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !h.Field.Set {
			t.Error("expected Set=true for null key")
		}
		if !h.Field.Null {
			t.Error("expected Null=true for null key")
		}
	})

	t.Run("value is set and not null", func(t *testing.T) {
		var h optionalHolder
		if err := json.Unmarshal([]byte(`{"field":"hello"}`), &h); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !h.Field.Set || h.Field.Null {
			t.Errorf("expected set non-null field, got Set=%v Null=%v", h.Field.Set, h.Field.Null)
		}
		if h.Field.Value != "hello" {
			t.Errorf("expected value %q, got %q", "hello", h.Field.Value)
		}
	})
}

func TestOptionalMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   optionalHolder
		want string
	}{
		{"unset omitted", optionalHolder{}, `{}`},
		{"null preserved", optionalHolder{Field: Null[string]()}, `{"field":null}`},
		{"value preserved", optionalHolder{Field: Some("x")}, `{"field":"x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("marshal = %s, expected %s", data, tc.want)
			}

			var back optionalHolder
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if back.Field.Set != tc.in.Field.Set || back.Field.Null != tc.in.Field.Null {
				t.Errorf("round trip changed state: got Set=%v Null=%v, expected Set=%v Null=%v",
					back.Field.Set, back.Field.Null, tc.in.Field.Set, tc.in.Field.Null)
			}
		})
	}
}

func TestUpdateRequestPresence(t *testing.T) {
	t.Run("empty tags differ from absent tags", func(t *testing.T) {
		var withTags, withoutTags UpdateTaskRequest
		if err := json.Unmarshal([]byte(`{"tags":[]}`), &withTags); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if err := json.Unmarshal([]byte(`{}`), &withoutTags); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		if !withTags.Tags.Set {
			t.Error("expected tags:[] to register as set")
		}
		if len(withTags.Tags.Value) != 0 {
			t.Errorf("expected empty tags value, got %v", withTags.Tags.Value)
		}
		if withoutTags.Tags.Set {
			t.Error("expected absent tags to stay unset")
		}
	})

	t.Run("null description survives a reply hop", func(t *testing.T) {
		req := UpdateTaskRequest{ID: "abc", Description: Null[string]()}
		data, err := json.Marshal(req)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var back UpdateTaskRequest
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !back.Description.Set || !back.Description.Null {
			t.Errorf("null lost in transit: Set=%v Null=%v", back.Description.Set, back.Description.Null)
		}
		if back.DueAt.Set {
			t.Error("absent dueAt must stay unset after the hop")
		}
	})
}
