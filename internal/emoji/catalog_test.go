package emoji

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = `# emoji-test.txt
# Version: 15.1

1F47B ; fully-qualified # 👻 E0.6 ghost (before any header)

# group: Smileys & Emotion

# subgroup: face-smiling
1F600                                                  ; fully-qualified     # 😀 E1.0 grinning face
1F600 1F3FB                                            ; fully-qualified     # 😀🏻 grinning face: light skin tone
1F603                                                  ; fully-qualified     # 😃 E0.6 grinning face with big eyes

# subgroup: face-affection
263A FE0F                                              ; fully-qualified     # ☺️ E0.6 smiling face
263A                                                   ; unqualified         # ☺ E0.6 smiling face
not a real line

# group: Component

# subgroup: skin-tone
1F3FB                                                  ; component           # 🏻 E1.0 light skin tone

# group: Symbols

# subgroup: keycap
0023 FE0F 20E3                                         ; fully-qualified     # #️⃣ E0.6 keycap: #
0023 20E3                                              ; unqualified         # #⃣ E0.6 keycap: #
1F600                                                  ; fully-qualified     # 😀 duplicate row
`

func buildTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Build(strings.NewReader(testData))
	require.NoError(t, err)
	return c
}

func TestBuild_OnlyFullyQualified(t *testing.T) {
	c := buildTestCatalog(t)

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, PhaseBuilt, c.Phase())

	for _, key := range []string{"\u263A", "#\u20E3", "\U0001F3FB"} {
		_, ok := c.Lookup(key)
		assert.False(t, ok, "%q must not be a catalog key", key)
	}
}

func TestBuild_GrinningFace(t *testing.T) {
	c := buildTestCatalog(t)

	e, ok := c.Lookup("😀")
	require.True(t, ok)
	assert.Equal(t, []rune{0x1F600}, e.Codepoints)
	assert.Equal(t, StatusFullyQualified, e.Status)
	assert.Equal(t, Label{Group: "Smileys & Emotion", Subgroup: "face-smiling"}, e.Label)
	assert.Empty(t, e.Name)
	assert.Empty(t, e.SpokenText)

	toned, ok := c.Lookup("\U0001F600\U0001F3FB")
	require.True(t, ok)
	assert.Equal(t, []rune{0x1F600, 0x1F3FB}, toned.Codepoints)
	assert.NotEqual(t, e.Key, toned.Key)
	assert.Equal(t, "1F600 1F3FB", toned.CodepointString())
}

func TestBuild_LabelsPartitionEntries(t *testing.T) {
	c := buildTestCatalog(t)

	labels := c.Labels()
	require.Equal(t, []Label{
		{},
		{Group: "Smileys & Emotion", Subgroup: "face-smiling"},
		{Group: "Smileys & Emotion", Subgroup: "face-affection"},
		{Group: "Symbols", Subgroup: "keycap"},
	}, labels)

	keys := func(entries []Entry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.Key)
		}
		return out
	}

	assert.Equal(t, []string{"👻"}, keys(c.Grouped(Label{})))
	assert.Equal(t, []string{"😀", "😀🏻", "😃"}, keys(c.Grouped(labels[1])))
	assert.Equal(t, []string{"\u263A\uFE0F"}, keys(c.Grouped(labels[2])))
	assert.Equal(t, []string{"#\uFE0F\u20E3"}, keys(c.Grouped(labels[3])))
	assert.Empty(t, c.Grouped(Label{Group: "Component", Subgroup: "skin-tone"}))

	assert.Equal(t, []string{"👻", "😀", "😀🏻", "😃", "\u263A\uFE0F", "#\uFE0F\u20E3"}, keys(c.Entries()))
}

func TestBuild_Aliases(t *testing.T) {
	c := buildTestCatalog(t)

	fq, ok := c.Alias("\u263A")
	require.True(t, ok)
	assert.Equal(t, "\u263A\uFE0F", fq)

	fq, ok = c.Alias("#\u20E3")
	require.True(t, ok)
	assert.Equal(t, "#\uFE0F\u20E3", fq)

	_, ok = c.Alias("😀")
	assert.False(t, ok)
}

func TestBuild_CRLF(t *testing.T) {
	c, err := Build(strings.NewReader("# group: Flags\r\n# subgroup: flag\r\n1F3C1 ; fully-qualified # 🏁\r\n"))
	require.NoError(t, err)

	e, ok := c.Lookup("🏁")
	require.True(t, ok)
	assert.Equal(t, Label{Group: "Flags", Subgroup: "flag"}, e.Label)
}

func TestBuild_NothingUsable(t *testing.T) {
	c, err := Build(strings.NewReader("not a real line\n# group: Flags\n263A ; unqualified\n"))
	require.NoError(t, err)
	assert.Equal(t, PhaseEmpty, c.Phase())
	assert.Empty(t, c.Labels())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestBuild_ReadError(t *testing.T) {
	_, err := Build(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestAnnotate_SharedIdentity(t *testing.T) {
	c := buildTestCatalog(t)

	err := c.Annotate(func(tx *Tx) error {
		e := tx.Entry("😀")
		require.NotNil(t, e)
		e.Name = "grinning face|face"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, PhaseAnnotated, c.Phase())

	e, _ := c.Lookup("😀")
	assert.Equal(t, "grinning face|face", e.Name)
	assert.Equal(t, "grinning face|face", c.Grouped(e.Label)[0].Name)
}

func TestAnnotate_ErrorKeepsPhase(t *testing.T) {
	c := buildTestCatalog(t)

	boom := errors.New("boom")
	err := c.Annotate(func(*Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, PhaseBuilt, c.Phase())
}

func TestAnnotate_EmptyCatalog(t *testing.T) {
	var c Catalog
	err := c.Annotate(func(*Tx) error { return nil })
	assert.ErrorIs(t, err, ErrNotBuilt)
	assert.Equal(t, PhaseEmpty, c.Phase())
}

func TestLookupReturnsCopy(t *testing.T) {
	c := buildTestCatalog(t)

	e, _ := c.Lookup("😀")
	e.Name = "changed"
	e.Codepoints[0] = 'x'

	again, _ := c.Lookup("😀")
	assert.Empty(t, again.Name)
	assert.Equal(t, []rune{0x1F600}, again.Codepoints)
}

func TestEntryNames(t *testing.T) {
	e := Entry{Name: "grinning face | face ||grin"}
	assert.Equal(t, []string{"grinning face", "face", "grin"}, e.Names())
	assert.Nil(t, Entry{}.Names())
}

func TestLabelString(t *testing.T) {
	assert.Equal(t, "(unlabeled)", Label{}.String())
	assert.Equal(t, "Flags", Label{Group: "Flags"}.String())
	assert.Equal(t, "Flags / flag", Label{Group: "Flags", Subgroup: "flag"}.String())
}
