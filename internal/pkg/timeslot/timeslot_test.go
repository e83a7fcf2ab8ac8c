package timeslot

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: 9 * 60},
		{in: "9:00", want: 9 * 60},
		{in: "00:00", want: 0},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12", wantErr: true},
		{in: "12:0", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClockString(t *testing.T) {
	if got := MustParse("9:05").String(); got != "09:05" {
		t.Errorf("String() = %q, want %q", got, "09:05")
	}
}

func TestClockJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(MustParse("14:30"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"14:30"` {
		t.Fatalf("marshal = %s, want %q", b, `"14:30"`)
	}

	var c Clock
	if err := json.Unmarshal([]byte(`"08:15"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != MustParse("08:15") {
		t.Errorf("unmarshal = %v, want 08:15", c)
	}
}

func TestNewRange(t *testing.T) {
	if _, err := NewRange(MustParse("10:00"), MustParse("10:00")); err == nil {
		t.Error("zero-duration range should be rejected")
	}
	if _, err := NewRange(MustParse("11:00"), MustParse("10:00")); err == nil {
		t.Error("negative-duration range should be rejected")
	}
	if _, err := NewRange(MustParse("10:00"), MustParse("11:00")); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
}

func TestRangeHours(t *testing.T) {
	r, _ := ParseRange("10:00", "11:30")
	if got := r.Hours(); got != 1.5 {
		t.Errorf("Hours() = %v, want 1.5", got)
	}
}

func TestRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "adjacent slots do not conflict", a: [2]string{"09:00", "10:00"}, b: [2]string{"10:00", "11:00"}, want: false},
		{name: "partial overlap conflicts", a: [2]string{"09:00", "10:30"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "identical intervals conflict", a: [2]string{"09:00", "10:00"}, b: [2]string{"09:00", "10:00"}, want: true},
		{name: "containment conflicts", a: [2]string{"09:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "disjoint intervals do not conflict", a: [2]string{"09:00", "10:00"}, b: [2]string{"12:00", "13:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := ParseRange(tt.a[0], tt.a[1])
			b, _ := ParseRange(tt.b[0], tt.b[1])
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// The predicate is symmetric.
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	window, _ := ParseRange("09:00", "17:00")

	inside, _ := ParseRange("10:00", "11:00")
	if !window.Contains(inside) {
		t.Error("10:00-11:00 should fit inside 09:00-17:00")
	}

	spilling, _ := ParseRange("16:30", "18:00")
	if window.Contains(spilling) {
		t.Error("16:30-18:00 should not fit inside 09:00-17:00")
	}
}

func TestSlots(t *testing.T) {
	slots := Slots()
	if len(slots) != 13 {
		t.Fatalf("expected 13 slots, got %d", len(slots))
	}
	if slots[0].String() != "09:00-10:00" {
		t.Errorf("first slot = %s, want 09:00-10:00", slots[0])
	}
	if slots[len(slots)-1].String() != "21:00-22:00" {
		t.Errorf("last slot = %s, want 21:00-22:00", slots[len(slots)-1])
	}
}
