package catalog

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		in   Item
		want string
	}{
		{"ece_nur.jpeg", "Ece Nur"},
		{"özdenur.jpg", "Özdenur"},
		{"eunseo_lee.jpeg", "Eunseo Lee"},
		{"aişe.jpg", "Aişe"},
		{"plain", "Plain"},
		{"two.dots.jpg", "Two"},
		{"trailing_.png", "Trailing "},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := Label(tt.in); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntries(t *testing.T) {
	got := Entries([]Item{"b.jpg", "a_b.jpg"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Item != "b.jpg" || got[0].Label != "B" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Label != "A B" {
		t.Errorf("got[1].Label = %q", got[1].Label)
	}
}
