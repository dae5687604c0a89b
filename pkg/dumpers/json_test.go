package dumpers_test

import (
	"math"
	"testing"
	"time"

	"github.com/arthur-debert/fileconv/pkg/dumpers"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *tree.Map {
	return tree.FromPairs(
		tree.Pair{Key: "name", Value: "Example"},
		tree.Pair{Key: "count", Value: int64(3)},
		tree.Pair{Key: "ratio", Value: 1.0},
		tree.Pair{Key: "tags", Value: []any{"a", true, false}},
		tree.Pair{Key: "nested", Value: tree.FromPairs(
			tree.Pair{Key: "z", Value: int64(-1)},
			tree.Pair{Key: "a", Value: "<&>"},
		)},
		tree.Pair{Key: "empty", Value: []any{}},
	)
}

func TestJSONDumperDefaults(t *testing.T) {
	v := tree.FromPairs(
		tree.Pair{Key: "b", Value: int64(1)},
		tree.Pair{Key: "a", Value: []any{true, nil}},
	)
	out, err := dumpers.JSONDumper{}.Dump(v, nil)
	require.NoError(t, err)

	want := "{\n    \"b\": 1,\n    \"a\": [\n        true,\n        null\n    ]\n}\n"
	assert.Equal(t, want, string(out))
}

func TestJSONDumperRoundTrip(t *testing.T) {
	out, err := dumpers.JSONDumper{}.Dump(sampleTree(), nil)
	require.NoError(t, err)

	got, err := loaders.JSONLoader{}.Load(out, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleTree(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONDumperParams(t *testing.T) {
	v := tree.FromPairs(
		tree.Pair{Key: "b", Value: "é"},
		tree.Pair{Key: "a", Value: 2.5},
	)

	tests := []struct {
		name   string
		params params.Params
		want   string
	}{
		{name: "compact", params: params.Params{"indent": 0}, want: `{"b":"é","a":2.5}` + "\n"},
		{name: "indent from string", params: params.Params{"indent": "2"}, want: "{\n  \"b\": \"é\",\n  \"a\": 2.5\n}\n"},
		{name: "sorted compact", params: params.Params{"indent": 0, "sort_keys": true}, want: `{"a":2.5,"b":"é"}` + "\n"},
		{name: "ascii", params: params.Params{"indent": 0, "ensure_ascii": true}, want: `{"b":"\u00e9","a":2.5}` + "\n"},
		{name: "unknown params ignored", params: params.Params{"indent": 0, "colour": "red"}, want: `{"b":"é","a":2.5}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := dumpers.JSONDumper{}.Dump(v, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestJSONDumperNonFinite(t *testing.T) {
	v := []any{math.NaN(), math.Inf(1), math.Inf(-1)}

	out, err := dumpers.JSONDumper{}.Dump(v, params.Params{"indent": 0})
	require.NoError(t, err)
	assert.Equal(t, "[NaN,Infinity,-Infinity]\n", string(out))

	_, err = dumpers.JSONDumper{}.Dump(v, params.Params{"allow_nan": false})
	assert.True(t, errors.IsErrorCode(err, errors.ErrDumpFailure))
}

func TestJSONDumperSkipKeys(t *testing.T) {
	v := tree.FromPairs(
		tree.Pair{Key: "keep", Value: int64(1)},
		tree.Pair{Key: "when", Value: time.Unix(0, 0)},
	)

	out, err := dumpers.JSONDumper{}.Dump(v, params.Params{"indent": 0})
	require.NoError(t, err)
	assert.Equal(t, `{"keep":1}`+"\n", string(out))

	_, err = dumpers.JSONDumper{}.Dump(v, params.Params{"skipkeys": false})
	require.Error(t, err)
	assert.Equal(t, errors.ErrDumpFailure, errors.GetErrorCode(err))
	assert.Equal(t, "/when", errors.GetErrorDetails(err)[errors.DetailPath])
}

func TestJSONDumperCircular(t *testing.T) {
	m := tree.NewMap()
	m.Set("self", m)

	_, err := dumpers.JSONDumper{}.Dump(m, params.Params{"check_circular": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular reference")

	_, err = dumpers.JSONDumper{}.Dump(m, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested too deeply")
}
