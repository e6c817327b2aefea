package spacedrep

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(strings.ToUpper(string(m)))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	_, err := ParseMode("arpeggio")
	var ie *InvalidInputError
	if !errors.As(err, &ie) || ie.Field != "mode" {
		t.Errorf("ParseMode(arpeggio) err = %v, want InvalidInputError on mode", err)
	}
}

func TestItemIDValidate(t *testing.T) {
	tests := []struct {
		name  string
		id    ItemID
		field string
	}{
		{"valid full", ItemID{Mode: ModeChord, Topic: "m7b5", Key: "C", Variant: "spelling"}, ""},
		{"valid topic only", ItemID{Mode: ModeInterval, Topic: "tritone"}, ""},
		{"missing mode", ItemID{Topic: "m7b5"}, "mode"},
		{"unknown mode", ItemID{Mode: "arpeggio", Topic: "m7b5"}, "mode"},
		{"missing topic", ItemID{Mode: ModeScale}, "topic"},
		{"key too long", ItemID{Mode: ModeScale, Topic: "dorian", Key: strings.Repeat("x", 65)}, "key"},
		{"non-ascii topic", ItemID{Mode: ModeChord, Topic: "B♭7♯11", Key: "B♭"}, ""},
		{"invalid utf8 topic", ItemID{Mode: ModeChord, Topic: "x\xff"}, "topic"},
		{"invalid utf8 key", ItemID{Mode: ModeChord, Topic: "maj7", Key: "\xfeC"}, "key"},
		{"invalid utf8 variant", ItemID{Mode: ModeChord, Topic: "maj7", Variant: "drop\xc32"}, "variant"},
	}
	for _, tt := range tests {
		err := tt.id.Validate()
		if tt.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		var ie *InvalidInputError
		if !errors.As(err, &ie) {
			t.Errorf("%s: err = %v, want *InvalidInputError", tt.name, err)
			continue
		}
		if ie.Field != tt.field {
			t.Errorf("%s: field = %q, want %q", tt.name, ie.Field, tt.field)
		}
	}
}

func TestItemIDAsMapKey(t *testing.T) {
	a := ItemID{Mode: ModeChord, Topic: "m7b5", Key: "C", Variant: "spelling"}
	b := ItemID{Mode: ModeChord, Topic: "m7b5", Key: "C", Variant: "spelling"}
	c := ItemID{Mode: ModeChord, Topic: "m7b5", Key: "C"}

	m := map[ItemID]int{a: 1}
	m[b]++
	m[c] = 10

	if len(m) != 2 {
		t.Fatalf("len = %d, want 2", len(m))
	}
	if m[a] != 2 {
		t.Errorf("m[a] = %d, want 2", m[a])
	}
}

func TestItemIDCompare(t *testing.T) {
	ordered := []ItemID{
		{Mode: ModeChord, Topic: "dom7"},
		{Mode: ModeChord, Topic: "m7b5"},
		{Mode: ModeChord, Topic: "m7b5", Key: "C"},
		{Mode: ModeChord, Topic: "m7b5", Key: "C", Variant: "spelling"},
		{Mode: ModeChord, Topic: "m7b5", Key: "F"},
		{Mode: ModeCadence, Topic: "ii-V-I"},
		{Mode: ModeScale, Topic: "dorian"},
		{Mode: ModeInterval, Topic: "m3"},
		{Mode: "zzz", Topic: "a"},
	}
	for i := range ordered {
		if c := ordered[i].Compare(ordered[i]); c != 0 {
			t.Errorf("%v.Compare(self) = %d, want 0", ordered[i], c)
		}
		for j := i + 1; j < len(ordered); j++ {
			if c := ordered[i].Compare(ordered[j]); c != -1 {
				t.Errorf("%v.Compare(%v) = %d, want -1", ordered[i], ordered[j], c)
			}
			if c := ordered[j].Compare(ordered[i]); c != 1 {
				t.Errorf("%v.Compare(%v) = %d, want 1", ordered[j], ordered[i], c)
			}
		}
	}
}

func TestItemIDString(t *testing.T) {
	tests := []struct {
		id   ItemID
		want string
	}{
		{ItemID{Mode: ModeChord, Topic: "m7b5", Key: "C", Variant: "spelling"}, "chord/m7b5/C/spelling"},
		{ItemID{Mode: ModeScale, Topic: "dorian", Key: "D"}, "scale/dorian/D"},
		{ItemID{Mode: ModeInterval, Topic: "tritone"}, "interval/tritone"},
		{ItemID{Mode: ModeCadence, Topic: "ii-V-I", Variant: "ear"}, "cadence/ii-V-I/-/ear"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
