package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestDateTimeUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want *time.Time
	}{
		{
			name: "date only becomes start of day UTC",
			in:   `"2026-02-19"`,
			want: tp(time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "rfc3339",
			in:   `"2026-02-19T15:30:00Z"`,
			want: tp(time.Date(2026, 2, 19, 15, 30, 0, 0, time.UTC)),
		},
		{
			name: "rfc3339 with offset",
			in:   `"2026-02-19T15:30:00+02:00"`,
			want: tp(time.Date(2026, 2, 19, 15, 30, 0, 0, time.FixedZone("", 2*3600))),
		},
		{
			name: "no timezone",
			in:   `"2026-02-19T15:30:00"`,
			want: tp(time.Date(2026, 2, 19, 15, 30, 0, 0, time.UTC)),
		},
		{name: "null", in: `null`, want: nil},
		{name: "empty string", in: `""`, want: nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var d DateTime
			if err := json.Unmarshal([]byte(c.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", c.in, err)
			}
			got := d.Ptr()
			if c.want == nil {
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
				return
			}
			if got == nil || !got.Equal(*c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestDateTimeUnmarshalRejectsGarbage(t *testing.T) {
	for _, in := range []string{`"yesterday"`, `"19/02/2026"`, `12345`} {
		var d DateTime
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Errorf("unmarshal %s succeeded, want error", in)
		}
	}
}

func TestDateTimeMarshalRoundTrip(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`"2026-02-19T15:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-02-19T15:30:00Z"` {
		t.Errorf("marshal = %s", out)
	}

	var empty DateTime
	out, err = json.Marshal(empty)
	if err != nil {
		t.Fatalf("marshal empty: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("marshal empty = %s, want null", out)
	}
}
