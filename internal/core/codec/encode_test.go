package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeekworx/planetgen/internal/core/property"
)

func sampleDocument() *Document {
	return &Document{
		Category:      "procgen",
		Type:          "planet",
		Seed:          1337,
		VariationSeed: 4,
		BlueprintName: "terrestrial",
		Floats:        map[string]float64{"radius": 1.25, "moons": 3},
		Colors: map[string]property.Color{
			"surfaceTint": {R: 0.4, G: 0.6, B: 0.3, A: 1},
		},
		Materials: map[string]string{"surfaceMaterial": "icy"},
		Ring: &Document{
			Category:      "procgen",
			Type:          "ring",
			Seed:          1338,
			BlueprintName: "dustring",
			Floats:        map[string]float64{"innerRadius": 1.4, "outerRadius": 2.2},
		},
	}
}

func TestEncodeDecodeAllFormats(t *testing.T) {
	doc := sampleDocument()
	for _, format := range []Format{FormatCompact, FormatPretty, FormatEscaped, FormatBase64} {
		t.Run(format.String(), func(t *testing.T) {
			text, err := Encode(doc, format)
			require.NoError(t, err)

			got, err := Decode(text)
			require.NoError(t, err)
			assert.Equal(t, doc, got)
		})
	}
}

func TestEncodeFormatShapes(t *testing.T) {
	doc := sampleDocument()

	compact, err := Encode(doc, FormatCompact)
	require.NoError(t, err)
	assert.False(t, strings.Contains(compact, "\n"))

	pretty, err := Encode(doc, FormatPretty)
	require.NoError(t, err)
	assert.True(t, strings.Contains(pretty, "\n"))

	escaped, err := Encode(doc, FormatEscaped)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(escaped, `{\"`))
	assert.NotContains(t, strings.ReplaceAll(escaped, `\"`, ""), `"`)

	b64, err := Encode(doc, FormatBase64)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(b64, "{"))
}

func TestDecodeSniffsLeadingWhitespace(t *testing.T) {
	doc := sampleDocument()
	pretty, err := Encode(doc, FormatPretty)
	require.NoError(t, err)

	got, err := Decode("  \n\t" + pretty + "\n")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("")
	assert.ErrorIs(t, err, ErrBadEncoding)

	_, err = Decode("not json and not base64!!!")
	assert.ErrorIs(t, err, ErrBadEncoding)

	// Valid base64 wrapping non-JSON payload.
	_, err = Decode("aGVsbG8gd29ybGQ=")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(`{"category": `)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseFormat(t *testing.T) {
	for _, format := range []Format{FormatCompact, FormatPretty, FormatEscaped, FormatBase64} {
		got, err := ParseFormat(format.String())
		require.NoError(t, err)
		assert.Equal(t, format, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFingerprintTracksContent(t *testing.T) {
	a := sampleDocument()
	b := sampleDocument()

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b.Floats["radius"] = 1.26
	fb, err = Fingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}
