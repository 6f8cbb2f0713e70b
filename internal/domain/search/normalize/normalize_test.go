package normalize

import "testing"

var corpus = []string{
	"",
	" ",
	"Dermatology",
	"  Mohs   Surgery  ",
	"Clínica Dermatológica São Paulo",
	"CRÈME brûlée\tand\nnaïve café",
	"İstanbul Skin Center",
	"ÅNGSTRÖM",
	"acne/rosacea & eczema",
	"Open Now dermatologist",
	"already normalized text",
	" non breaking space",
	"Ǆemal’s clinic",
	"open/now",
	"open open now now",
}

func TestText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Dermatology", "dermatology"},
		{"  Mohs   Surgery  ", "mohs surgery"},
		{"Clínica Dermatológica", "clinica dermatologica"},
		{"CRÈME\tbrûlée\nnaïve", "creme brulee naive"},
		{"İstanbul", "istanbul"},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestText_Idempotent(t *testing.T) {
	for _, s := range corpus {
		once := Text(s)
		if twice := Text(once); twice != once {
			t.Errorf("Text not idempotent for %q: %q -> %q", s, once, twice)
		}
	}
}

func TestQuery_Idempotent(t *testing.T) {
	for _, s := range corpus {
		once := Query(s)
		if twice := Query(once); twice != once {
			t.Errorf("Query not idempotent for %q: %q -> %q", s, once, twice)
		}
	}
}

func TestOpenNow(t *testing.T) {
	tests := []struct {
		in       string
		has      bool
		stripped string
	}{
		{"open now", true, ""},
		{"dermatologist open now", true, "dermatologist"},
		{"open  now acne", true, "acne"},
		{"opennow botox", true, "botox"},
		{"reopen nowhere", false, "reopen nowhere"},
		{"open late", false, "open late"},
		{"open open now now", true, ""},
	}
	for _, tt := range tests {
		n := Text(tt.in)
		if got := HasOpenNow(n); got != tt.has {
			t.Errorf("HasOpenNow(%q) = %v, want %v", n, got, tt.has)
		}
		if got := StripOpenNow(n); got != tt.stripped {
			t.Errorf("StripOpenNow(%q) = %q, want %q", n, got, tt.stripped)
		}
	}
}

func TestCollapseSeparators(t *testing.T) {
	if got := CollapseSeparators("acne/rosacea & eczema,psoriasis"); got != "acne rosacea eczema psoriasis" {
		t.Errorf("CollapseSeparators() = %q", got)
	}
}

func TestQuery(t *testing.T) {
	if got := Query("  Acne/Rosacea - OPEN NOW "); got != "acne rosacea -" {
		t.Errorf("Query() = %q", got)
	}
	if got := Query("Open Now"); got != "" {
		t.Errorf("Query(open now) = %q, want empty", got)
	}
}

func TestWords(t *testing.T) {
	w := Words("mohs surgery center")
	if len(w) != 3 || w[0] != "mohs" || w[2] != "center" {
		t.Errorf("Words() = %v", w)
	}
	if len(Words("")) != 0 {
		t.Error("Words(\"\") should be empty")
	}
}
