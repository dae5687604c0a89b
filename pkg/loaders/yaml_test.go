package loaders_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, src string) any {
	t.Helper()
	v, err := loaders.YAMLLoader{}.Load([]byte(src), nil)
	require.NoError(t, err)
	return v
}

func TestYAMLLoaderScalars(t *testing.T) {
	src := `
name: fileconv
count: 3
ratio: 0.5
enabled: yes_is_a_string
on: true
nothing: ~
when: 2020-01-02T03:04:05Z
blob: !!binary aGVsbG8=
`
	want := tree.FromPairs(
		tree.Pair{Key: "name", Value: "fileconv"},
		tree.Pair{Key: "count", Value: int64(3)},
		tree.Pair{Key: "ratio", Value: 0.5},
		tree.Pair{Key: "enabled", Value: "yes_is_a_string"},
		tree.Pair{Key: "on", Value: true},
		tree.Pair{Key: "nothing", Value: nil},
		tree.Pair{Key: "when", Value: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
		tree.Pair{Key: "blob", Value: tree.Data("hello")},
	)
	if diff := cmp.Diff(want, loadYAML(t, src)); diff != "" {
		t.Errorf("loaded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoaderOrderedMaps(t *testing.T) {
	plain := loadYAML(t, "b: 1\na: 2\nc: 3\n").(*tree.Map)
	assert.Equal(t, []string{"b", "a", "c"}, plain.Keys())

	omap := loadYAML(t, "--- !!omap\n- z: 1\n- y: 2\n").(*tree.Map)
	assert.Equal(t, []string{"z", "y"}, omap.Keys())

	_, err := loaders.YAMLLoader{}.Load([]byte("--- !!omap\n- z: 1\n- z: 2\n"), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseFailure))
}

func TestYAMLLoaderMergeKeys(t *testing.T) {
	src := `
base: &base
  x: 1
  y: 2
child:
  <<: *base
  y: 3
  z: 4
`
	doc := loadYAML(t, src).(*tree.Map)
	child, ok := doc.Get("child")
	require.True(t, ok)

	want := tree.FromPairs(
		tree.Pair{Key: "x", Value: int64(1)},
		tree.Pair{Key: "y", Value: int64(3)},
		tree.Pair{Key: "z", Value: int64(4)},
	)
	if diff := cmp.Diff(want, child); diff != "" {
		t.Errorf("merged mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoaderSharedAnchor(t *testing.T) {
	doc := loadYAML(t, "a: &x [1, 2]\nb: *x\n").(*tree.Map)
	a, _ := doc.Get("a")
	b, _ := doc.Get("b")
	assert.Equal(t, []any{int64(1), int64(2)}, a)
	assert.Equal(t, a, b)
}

func TestYAMLLoaderRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "custom scalar tag", src: "a: !custom 3\n", msg: "could not determine a constructor"},
		{name: "custom mapping tag", src: "a: !!python/object:foo {x: 1}\n", msg: "could not determine a constructor"},
		{name: "recursive alias", src: "a: &x [1, *x]\n", msg: "refers to its own anchor"},
		{name: "syntax", src: "a: [1, 2\nb: 3\n", msg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loaders.YAMLLoader{}.Load([]byte(tt.src), nil)
			require.Error(t, err)
			assert.Equal(t, errors.ErrParseFailure, errors.GetErrorCode(err))
			assert.Contains(t, err.Error(), tt.msg)
			_, _, ok := errors.Position(err)
			assert.True(t, ok)
		})
	}
}

func TestYAMLLoaderEmptyDocument(t *testing.T) {
	assert.Nil(t, loadYAML(t, ""))
	assert.Nil(t, loadYAML(t, "# only a comment\n"))
}
