package loaders_test

import (
	"math"
	"testing"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoaderKeepsOrderAndTypes(t *testing.T) {
	src := []byte(`{"b": 1, "a": [true, null, 1.5, "x"], "big": 12345678901234567890}`)

	got, err := loaders.JSONLoader{}.Load(src, nil)
	require.NoError(t, err)

	want := tree.FromPairs(
		tree.Pair{Key: "b", Value: int64(1)},
		tree.Pair{Key: "a", Value: []any{true, nil, 1.5, "x"}},
		tree.Pair{Key: "big", Value: float64(12345678901234567890)},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONLoaderComments(t *testing.T) {
	src := []byte("{\n  // leading\n  \"url\": \"http://x/*y*/\", /* block */ \"n\": 2 // trailing\n}\n")

	got, err := loaders.JSONLoader{}.Load(src, nil)
	require.NoError(t, err)

	m, ok := got.(*tree.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"url", "n"}, m.Keys())
	url, _ := m.Get("url")
	assert.Equal(t, "http://x/*y*/", url)

	_, err = loaders.JSONLoader{}.Load(src, params.Params{"allow_comments": false})
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailure))
}

func TestJSONLoaderNonFiniteNumbers(t *testing.T) {
	src := []byte("{\"nan\": NaN, \"inf\": Infinity, \"list\": [-Infinity], \"text\": \"NaN Infinity\"}")

	got, err := loaders.JSONLoader{}.Load(src, nil)
	require.NoError(t, err)

	m, ok := got.(*tree.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"nan", "inf", "list", "text"}, m.Keys())
	nan, _ := m.Get("nan")
	assert.True(t, math.IsNaN(nan.(float64)))
	inf, _ := m.Get("inf")
	assert.Equal(t, math.Inf(1), inf)
	list, _ := m.Get("list")
	assert.Equal(t, []any{math.Inf(-1)}, list)
	text, _ := m.Get("text")
	assert.Equal(t, "NaN Infinity", text)

	_, err = loaders.JSONLoader{}.Load(src, params.Params{"allow_nan": false})
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailure))

	_, err = loaders.JSONLoader{}.Load([]byte(`{"a": NaNa}`), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailure))

	_, err = loaders.JSONLoader{}.Load([]byte(`[1-Infinity]`), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailure))
}

func TestJSONLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		col  int
	}{
		{name: "missing value", src: `{"a": }`, line: 1, col: 7},
		{name: "trailing comma", src: "{\n\"a\": 1,\n}", line: 3, col: 1},
		{name: "empty", src: "  \n", line: 1, col: 1},
		{name: "only comments", src: "// nothing here\n", line: 1, col: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loaders.JSONLoader{}.Load([]byte(tt.src), nil)
			require.Error(t, err)
			assert.Equal(t, errors.ErrParseFailure, errors.GetErrorCode(err))

			line, col, ok := errors.Position(err)
			require.True(t, ok)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.col, col)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestJSONLoaderScalarDocument(t *testing.T) {
	got, err := loaders.JSONLoader{}.Load([]byte("\xEF\xBB\xBF\"hello\""), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestStripCommentsKeepsOffsets(t *testing.T) {
	src := []byte("a // b\n/* c\nd */ \"//e\"")
	out := loaders.StripComments(src)

	assert.Len(t, out, len(src))
	assert.Equal(t, "a     \n    \n     \"//e\"", string(out))
}
