package weather

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseWholeNumber(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr error
	}{
		{name: "json integer", in: json.Number("75"), want: 75},
		{name: "json integral float", in: json.Number("75.0"), want: 75},
		{name: "json fractional", in: json.Number("75.5"), wantErr: errNotWholeNumber},
		{name: "go int", in: 68, want: 68},
		{name: "go int64", in: int64(-3), want: -3},
		{name: "integral float64", in: 42.0, want: 42},
		{name: "fractional float64", in: 42.1, wantErr: errNotWholeNumber},
		{name: "numeric text", in: "86", want: 86},
		{name: "padded numeric text", in: " 86 ", want: 86},
		{name: "non numeric text", in: "warm", wantErr: errNotWholeNumber},
		{name: "bool", in: true, wantErr: errUnsupportedType},
		{name: "json huge exponent", in: json.Number("1e300"), wantErr: errNotWholeNumber},
		{name: "json beyond int64", in: json.Number("99999999999999999999"), wantErr: errNotWholeNumber},
		{name: "json beyond int32", in: json.Number("3000000000"), wantErr: errNotWholeNumber},
		{name: "huge float64", in: 1e19, wantErr: errNotWholeNumber},
		{name: "huge int64", in: int64(1) << 40, wantErr: errNotWholeNumber},
		{name: "huge numeric text", in: "99999999999999999999", wantErr: errNotWholeNumber},
		{name: "int32 max", in: json.Number("2147483647"), want: 2147483647},
		{name: "int32 min", in: json.Number("-2147483648"), want: -2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWholeNumber(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseWindSpeed(t *testing.T) {
	tests := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{in: "10 mph", want: 10},
		{in: "10 to 15 mph", want: 10},
		{in: "7", want: 7},
		{in: json.Number("12"), want: 12},
		{in: 3, want: 3},
		{in: "calm winds", wantErr: true},
		{in: "mph 10", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseWindSpeed(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWindSpeed(%v): expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWindSpeed(%v): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseWindSpeed(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRawDocumentProperties(t *testing.T) {
	var nilDoc RawDocument
	if _, ok := nilDoc.Properties(); ok {
		t.Fatal("expected nil document to have no properties")
	}

	doc := RawDocument{"properties": "not an object"}
	if _, ok := doc.Properties(); ok {
		t.Fatal("expected non-object properties to be rejected")
	}

	doc = RawDocument{"properties": map[string]any{"forecast": "x"}}
	props, ok := doc.Properties()
	if !ok || props["forecast"] != "x" {
		t.Fatalf("expected properties to be returned, got %v", props)
	}
}

func TestPeriodList(t *testing.T) {
	list, ok := periodList([]any{map[string]any{"name": "Today"}, "junk"})
	if !ok {
		t.Fatal("expected []any to be accepted")
	}
	if len(list) != 2 || list[0]["name"] != "Today" || list[1] != nil {
		t.Fatalf("unexpected list: %v", list)
	}

	if _, ok := periodList("nope"); ok {
		t.Fatal("expected non-list to be rejected")
	}
	if _, ok := periodList(nil); ok {
		t.Fatal("expected nil to be rejected")
	}
}
