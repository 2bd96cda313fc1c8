package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want []string
	}{
		{"pipes and spaces", Delimited("Action|Thriller  Space"), []string{"action", "thriller", "space"}},
		{"list keeps short tags", List("AI", "Space"), []string{"ai", "space"}},
		{"string drops short tags", Delimited("ai space"), []string{"space"}},
		{"none", None(), []string{}},
		{"commas", Delimited("drama,comedy, war"), []string{"drama", "comedy", "war"}},
		{"leading and trailing delimiters", Delimited("|,horror  |"), []string{"horror"}},
		{"list trims whitespace", List("  Sci-Fi ", "\tNoir"), []string{"sci-fi", "noir"}},
		{"list keeps empty entries", List("", "x"), []string{"", "x"}},
		{"three letters survive", Delimited("war of it"), []string{"war"}},
		{"order of appearance", Delimited("zeta alpha mu beta"), []string{"zeta", "alpha", "beta"}},
		{"empty string", Delimited(""), []string{}},
		{"tabs are not delimiters", Delimited("film\tnoir"), []string{"film\tnoir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.raw))
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	raw := Delimited("Space|War|space drama")
	first := Extract(raw)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract(raw))
	}
	assert.Equal(t, []string{"space", "war", "space", "drama"}, first)
}

func TestExtractLengthCountsRunes(t *testing.T) {
	// "été" is three runes but five bytes.
	assert.Equal(t, []string{"été"}, Extract(Delimited("été ok")))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(Delimited("space|war"), "space"))
	assert.False(t, Contains(Delimited("space|war"), "Space"))
	assert.True(t, Contains(List("AI"), "ai"))
	assert.False(t, Contains(Delimited("AI"), "ai"))
	assert.False(t, Contains(None(), "space"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Science fiction", Capitalize("science fiction"))
	assert.Equal(t, "SCi-fi", Capitalize("sCi-fi"))
	assert.Equal(t, "Élan", Capitalize("élan"))
	assert.Equal(t, "", Capitalize(""))
}

func TestBuildVocabulary(t *testing.T) {
	vocab := BuildVocabulary([]Raw{
		Delimited("space|war"),
		Delimited("space"),
		List("AI", "drama"),
		None(),
		Delimited("ai war"),
	})

	assert.Equal(t, Vocabulary{"Ai", "Drama", "Space", "War"}, vocab)
	assert.True(t, vocab.Contains("Space"))
	assert.False(t, vocab.Contains("space"))
	assert.False(t, vocab.Contains("Zzz"))
}

func TestBuildVocabularyEmpty(t *testing.T) {
	assert.Empty(t, BuildVocabulary(nil))
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		want []string
	}{
		{`"Action|Thriller"`, KindDelimited, []string{"action", "thriller"}},
		{`["AI","Space"]`, KindList, []string{"ai", "space"}},
		{`null`, KindNone, []string{}},
		{`42`, KindNone, []string{}},
		{`{"a":1}`, KindNone, []string{}},
		{`["AI", 3]`, KindNone, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var raw Raw
			require.NoError(t, json.Unmarshal([]byte(tt.in), &raw))
			assert.Equal(t, tt.kind, raw.Kind())
			assert.Equal(t, tt.want, Extract(raw))
		})
	}
}

func TestUnmarshalJSONInStruct(t *testing.T) {
	var row struct {
		Tags Raw `json:"tags"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tags":["War"]}`), &row))
	assert.Equal(t, KindList, row.Tags.Kind())

	require.NoError(t, json.Unmarshal([]byte(`{}`), &row))
}

func TestMarshalJSONPreservesShape(t *testing.T) {
	data, err := json.Marshal(Delimited("a|b"))
	require.NoError(t, err)
	assert.JSONEq(t, `"a|b"`, string(data))

	data, err = json.Marshal(List("x", "y"))
	require.NoError(t, err)
	assert.JSONEq(t, `["x","y"]`, string(data))

	data, err = json.Marshal(None())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestScanAndValue(t *testing.T) {
	var raw Raw

	require.NoError(t, raw.Scan(nil))
	assert.Equal(t, KindNone, raw.Kind())

	require.NoError(t, raw.Scan("space|war"))
	assert.Equal(t, KindDelimited, raw.Kind())
	assert.Equal(t, "space|war", raw.Text())

	require.NoError(t, raw.Scan([]byte(`["AI","Space"]`)))
	assert.Equal(t, KindList, raw.Kind())
	assert.Equal(t, []string{"AI", "Space"}, raw.Items())

	require.NoError(t, raw.Scan("[not json"))
	assert.Equal(t, KindDelimited, raw.Kind())

	require.NoError(t, raw.Scan(int64(7)))
	assert.Equal(t, KindNone, raw.Kind())

	v, err := List("AI").Value()
	require.NoError(t, err)
	assert.Equal(t, `["AI"]`, v)

	v, err = Delimited("a b").Value()
	require.NoError(t, err)
	assert.Equal(t, "a b", v)

	v, err = None().Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
