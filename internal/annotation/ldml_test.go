package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directXML = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE ldml SYSTEM "../../common/dtd/ldml.dtd">
<ldml>
	<identity>
		<version number="$Revision$"/>
		<language type="en"/>
	</identity>
	<annotations>
		<annotation cp="😀">grinning face|face</annotation>
		<annotation cp="😀" type="tts">grinning face</annotation>
		<annotation cp="&#x263A;">face | outlined | relaxed | smile | smiling face</annotation>
		<annotation cp="&#x263A;" type="tts">smiling face</annotation>
		<annotation type="tts">no code point</annotation>
		<annotation cp="🦄" type="other"> unicorn </annotation>
	</annotations>
</ldml>
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(directXML))
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{CP: "😀", Kind: KindName, Text: "grinning face|face"},
		{CP: "😀", Kind: KindSpokenText, Text: "grinning face"},
		{CP: "☺", Kind: KindName, Text: "face | outlined | relaxed | smile | smiling face"},
		{CP: "☺", Kind: KindSpokenText, Text: "smiling face"},
		{CP: "🦄", Kind: KindName, Text: " unicorn "},
	}, records)
}

func TestParse_Empty(t *testing.T) {
	records, err := Parse(strings.NewReader(`<ldml><identity/></ldml>`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<ldml><annotations><annotation cp="x">`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding annotations")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "name", KindName.String())
	assert.Equal(t, "tts", KindSpokenText.String())
}
