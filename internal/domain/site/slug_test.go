package site

import "testing"

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Guitarra Eléctrica", "guitarra-electrica"},
		{"  Piano   para niños ", "piano-para-ninos"},
		{"Concierto de Año Nuevo!", "concierto-de-ano-nuevo"},
		{"Canto_Coral -- Inicial", "canto-coral-inicial"},
		{"ÁÉÍÓÚ üñ", "aeiou-un"},
		{"¡¡¡", "item"},
		{"", "item"},
	}
	for _, tc := range cases {
		if got := MakeSlug(tc.in); got != tc.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeSlugDeterministic(t *testing.T) {
	a := MakeSlug("Violín Intermedio")
	b := MakeSlug("Violín Intermedio")
	if a != b {
		t.Fatalf("slug not deterministic: %q vs %q", a, b)
	}
}
