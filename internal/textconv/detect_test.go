package textconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCodePageUTF8(t *testing.T) {
	cp, err := DetectCodePage([]byte("organisation = \"Müller GmbH\"\n"))
	require.NoError(t, err)
	assert.Equal(t, UTF8, cp)
}

func TestDetectCodePageLatin(t *testing.T) {
	text := "Le système de fichiers a été créé à partir du répertoire " +
		"d'installation. Les paramètres de l'application sont enregistrés " +
		"dans le dossier de données partagé, où chaque utilisateur possède " +
		"également son répertoire personnel."
	raw, lossy, err := Encode(text, 1252)
	require.NoError(t, err)
	require.False(t, lossy)

	cp, err := DetectCodePage(raw)
	require.NoError(t, err)
	assert.NotEqual(t, UTF8, cp)

	decoded, err := Decode(raw, cp)
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}
