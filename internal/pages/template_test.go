package pages

import "testing"

func TestSubstitute(t *testing.T) {
	tmpl := "<h1>{{TITLE}}</h1><p>{{BODY}}</p><span>{{MISSING}}</span>"
	got := Substitute(tmpl, map[string]string{
		"TITLE": "Heartsaver CPR",
		"BODY":  "Learn CPR.",
	})
	want := "<h1>Heartsaver CPR</h1><p>Learn CPR.</p><span>{{MISSING}}</span>"
	if got != want {
		t.Errorf("Substitute = %q, want %q", got, want)
	}
}

func TestSubstituteLeavesNonPlaceholders(t *testing.T) {
	tmpl := "{{lower}} {{TWO WORDS}} {{OK}}"
	got := Substitute(tmpl, map[string]string{"OK": "yes"})
	want := "{{lower}} {{TWO WORDS}} yes"
	if got != want {
		t.Errorf("Substitute = %q, want %q", got, want)
	}
}
