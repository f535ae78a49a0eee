package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDocumentFile(t *testing.T) {
	assert.True(t, IsDocumentFile("prg_tarquinia.pdf"))
	assert.True(t, IsDocumentFile("regolamento.HTML"))
	assert.True(t, IsDocumentFile("norme.txt"))
	assert.True(t, IsDocumentFile("allegato.htm"))

	assert.False(t, IsDocumentFile("planimetria.dwg"))
	assert.False(t, IsDocumentFile("foto.jpg"))
	assert.False(t, IsDocumentFile("archivio.zip"))
	assert.False(t, IsDocumentFile("senza_estensione"))
}

func TestSession_Valid(t *testing.T) {
	assert.True(t, Session{Token: "tok1", Identity: "alice"}.Valid())

	// Partial records are invalid, never observable as logged in.
	assert.False(t, Session{Token: "tok1"}.Valid())
	assert.False(t, Session{Identity: "alice"}.Valid())
	assert.False(t, Session{}.Valid())
	assert.True(t, Session{}.IsZero())
}
