// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package envelope

import (
	"encoding/json"
	"testing"
)

func recordTitles(t *testing.T, records []json.RawMessage) []string {
	t.Helper()
	titles := make([]string, 0, len(records))
	for _, r := range records {
		var rec struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(r, &rec); err != nil {
			t.Fatalf("unmarshaling record %s: %v", r, err)
		}
		titles = append(titles, rec.Title)
	}
	return titles
}

func TestDecodeBareArray(t *testing.T) {
	body := []byte(`[{"title":"A"},{"title":"B"},{"title":"C"}]`)
	env := Decode(body)

	if env.Kind != List {
		t.Fatalf("Kind = %v, want List", env.Kind)
	}
	titles := recordTitles(t, env.Records())
	want := []string{"A", "B", "C"}
	for i, w := range want {
		if titles[i] != w {
			t.Errorf("record %d title = %q, want %q (order must be preserved)", i, titles[i], w)
		}
	}
}

func TestDecodeDataWrapped(t *testing.T) {
	body := []byte(`{"total":2,"data":[{"title":"A"},{"title":"B"}]}`)
	env := Decode(body)

	if env.Kind != Data {
		t.Fatalf("Kind = %v, want Data", env.Kind)
	}
	if env.Len() != 2 {
		t.Errorf("Len = %d, want 2", env.Len())
	}
}

func TestDecodeItemsWrapped(t *testing.T) {
	body := []byte(`{"items":[{"title":"A"}],"page":1}`)
	env := Decode(body)

	if env.Kind != Items {
		t.Fatalf("Kind = %v, want Items", env.Kind)
	}
	if env.Len() != 1 {
		t.Errorf("Len = %d, want 1", env.Len())
	}
}

func TestDecodeDataPrecedesItems(t *testing.T) {
	// When both wrappers are present, "data" wins.
	body := []byte(`{"data":[{"title":"A"},{"title":"B"}],"items":[{"title":"X"}]}`)
	env := Decode(body)

	if env.Kind != Data {
		t.Fatalf("Kind = %v, want Data", env.Kind)
	}
	titles := recordTitles(t, env.Records())
	if titles[0] != "A" {
		t.Errorf("first record = %q, want %q", titles[0], "A")
	}
}

func TestDecodeSingleObject(t *testing.T) {
	body := []byte(`{"title":"Solo","summary":"one record"}`)
	env := Decode(body)

	if env.Kind != Object {
		t.Fatalf("Kind = %v, want Object", env.Kind)
	}
	titles := recordTitles(t, env.Records())
	if len(titles) != 1 || titles[0] != "Solo" {
		t.Errorf("records = %v, want the bare object as a single record", titles)
	}
}

func TestDecodeNonArrayDataFallsThrough(t *testing.T) {
	// A "data" field that is not an array does not make the object a wrapper.
	body := []byte(`{"data":"oops","title":"Still a record"}`)
	env := Decode(body)

	if env.Kind != Object {
		t.Fatalf("Kind = %v, want Object", env.Kind)
	}
	if env.Len() != 1 {
		t.Errorf("Len = %d, want 1", env.Len())
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	for _, body := range [][]byte{nil, {}, []byte("   \n\t ")} {
		env := Decode(body)
		if env.Kind != Empty {
			t.Errorf("Decode(%q).Kind = %v, want Empty", body, env.Kind)
		}
		if got := env.Records(); got == nil || len(got) != 0 {
			t.Errorf("Decode(%q).Records() = %v, want empty non-nil slice", body, got)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	env := Decode([]byte(`{"title": "unterminated`))
	if env.Kind != Malformed {
		t.Fatalf("Kind = %v, want Malformed", env.Kind)
	}
	if env.Len() != 0 {
		t.Errorf("malformed body should carry no records, got %d", env.Len())
	}
}

func TestDecodeScalars(t *testing.T) {
	for _, body := range []string{`null`, `42`, `"just a string"`, `true`} {
		env := Decode([]byte(body))
		if env.Kind != Scalar {
			t.Errorf("Decode(%s).Kind = %v, want Scalar", body, env.Kind)
		}
		if env.Len() != 0 {
			t.Errorf("Decode(%s) should carry no records", body)
		}
	}
}

func TestDecodeIdempotentOnBareArray(t *testing.T) {
	body := []byte(`[{"title":"A"},{"title":"B"}]`)
	first := Records(body)

	// Re-marshal the normalized sequence and decode again.
	again, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second := Records(again)

	if len(first) != len(second) {
		t.Fatalf("len mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if string(first[i]) != string(second[i]) {
			t.Errorf("record %d changed across normalization: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		Empty: "empty", List: "list", Data: "data", Items: "items",
		Object: "object", Scalar: "scalar", Malformed: "malformed",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
