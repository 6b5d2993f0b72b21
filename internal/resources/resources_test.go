package resources

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	fsys := Embedded()

	for _, name := range []string{
		EmojiTest,
		AnnotationPath("en"),
		DerivedAnnotationPath("en"),
	} {
		f, err := OpenFile(fsys, name)
		require.NoError(t, err, name)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, data, name)
		require.NoError(t, f.Close())
	}

	locales, err := Locales(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "ja", "zh"}, locales)
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(fstest.MapFS{}, AnnotationPath("xx"))
	require.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "annotations/xx.xml")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	_, err := OpenFile(Open(dir), EmojiTest)
	assert.ErrorIs(t, err, ErrMissing)

	_, err = OpenFile(Open(""), EmojiTest)
	assert.NoError(t, err)
}

func TestLocales_Empty(t *testing.T) {
	locales, err := Locales(fstest.MapFS{
		"annotationsDerived/en.xml": &fstest.MapFile{},
	})
	require.NoError(t, err)
	assert.Empty(t, locales)
}
