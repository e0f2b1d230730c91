package lexicon

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CountsAndThreshold(t *testing.T) {
	corpus := strings.Repeat("fate ", 5) + strings.Repeat("doom ", 3) + "glory glory once"

	d := Build(corpus, 3)
	require.Len(t, d.Entries, 2)
	assert.Equal(t, Entry{Word: "fate", Count: 5}, d.Entries[0])
	assert.Equal(t, Entry{Word: "doom", Count: 3}, d.Entries[1])
	assert.Empty(t, d.Warning)
}

func TestBuild_OrderingInvariant(t *testing.T) {
	corpus := strings.Repeat("alpha beta ", 4) + strings.Repeat("gamma ", 7) + strings.Repeat("delta ", 4)

	d := Build(corpus, 2)
	for i := 1; i < len(d.Entries); i++ {
		prev, cur := d.Entries[i-1], d.Entries[i]
		ok := prev.Count > cur.Count || (prev.Count == cur.Count && prev.Word <= cur.Word)
		assert.True(t, ok, "entries %d and %d out of order: %+v %+v", i-1, i, prev, cur)
	}
}

func TestBuild_WordsAreCleanTokens(t *testing.T) {
	corpus := strings.Repeat("Héllo, wörld! 42x 42x 42x ", 4)

	d := Build(corpus, 2)
	require.NotEmpty(t, d.Entries)
	for _, e := range d.Entries {
		assert.GreaterOrEqual(t, e.Count, 2)
		assert.NotEmpty(t, e.Word)
		for _, r := range e.Word {
			assert.True(t, unicode.IsLetter(r), "word %q contains %q", e.Word, r)
			assert.Equal(t, unicode.ToLower(r), r)
		}
	}
}

func TestBuild_SparseCorpusWarnsInsteadOfFailing(t *testing.T) {
	d := Build("one two three", 10)
	assert.Empty(t, d.Entries)
	assert.NotEmpty(t, d.Warning)

	d = Build("", 10)
	assert.Empty(t, d.Entries)
	assert.NotEmpty(t, d.Warning)
}

func TestBuild_DefaultThreshold(t *testing.T) {
	corpus := strings.Repeat("common ", 10) + strings.Repeat("rare ", 9)

	d := Build(corpus, 0)
	require.Len(t, d.Entries, 1)
	assert.Equal(t, "common", d.Entries[0].Word)
}

func TestWriteTo_Format(t *testing.T) {
	d := &Dictionary{Entries: []Entry{
		{Word: "fate", Count: 20},
		{Word: "doom", Count: 15},
	}}

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := "# sibyl dictionary\n# entries: 2\nfate\t20\ndoom\t15\n"
	assert.Equal(t, want, buf.String())
}

func TestBuild_Idempotent(t *testing.T) {
	corpus := strings.Repeat("sing muse wrath sing muse sing ", 8)

	var first, second bytes.Buffer
	_, err := Build(corpus, 3).WriteTo(&first)
	require.NoError(t, err)
	_, err = Build(corpus, 3).WriteTo(&second)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	corpus := strings.Repeat("storm sea storm sail sea storm ", 5)
	d := Build(corpus, 3)
	require.NotEmpty(t, d.Entries)

	path := filepath.Join(t.TempDir(), "dict.tsv")
	require.NoError(t, d.Save(path))

	v, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, len(d.Entries), v.Len())
	for i, e := range d.Entries {
		assert.Equal(t, e.Word, v.Words[i])
		assert.Equal(t, e.Count, v.Counts[i])
	}
}
