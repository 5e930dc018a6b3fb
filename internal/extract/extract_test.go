package extract

import (
	"context"
	"testing"
)

func TestSupported(t *testing.T) {
	cases := map[string]bool{
		"application/pdf":                 true,
		"APPLICATION/PDF":                 true,
		"application/pdf; charset=binary": true,
		MimeDOCX:                          true,
		"text/plain":                      false,
		"image/png":                       false,
		"":                                false,
	}
	for mime, want := range cases {
		if got := Supported(mime); got != want {
			t.Errorf("Supported(%q) = %v, want %v", mime, got, want)
		}
	}
}

func TestTextRejectsUnknownType(t *testing.T) {
	if _, err := Text(context.Background(), []byte("hello"), "text/plain"); err == nil {
		t.Error("expected an error for text/plain")
	}
}

func TestNormalize(t *testing.T) {
	in := "  Ada Lovelace\r\n\r\n\r\nEngineer    at  Acme\n\n\nGo   SQL  "
	want := "Ada Lovelace\nEngineer at Acme\nGo SQL"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestStripDocxXML(t *testing.T) {
	in := `<w:p><w:r><w:t>Ada Lovelace</w:t></w:r></w:p><w:p><w:r><w:t>Engineer</w:t><w:br/><w:t>Acme</w:t></w:r></w:p>`
	want := "Ada Lovelace\nEngineer\nAcme"
	if got := stripDocxXML(in); got != want {
		t.Errorf("stripDocxXML = %q, want %q", got, want)
	}
}
