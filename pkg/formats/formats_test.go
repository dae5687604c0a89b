package formats_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    formats.Kind
		wantErr bool
	}{
		{"json", formats.JSON, false},
		{"JSON", formats.JSON, false},
		{".yaml", formats.YAML, false},
		{"yml", formats.YAML, false},
		{"y", formats.YAML, false},
		{"plist", formats.Plist, false},
		{" Plist ", formats.Plist, false},
		{"toml", formats.Unknown, true},
		{"", formats.Unknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := formats.ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, formats.ErrBadKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindText(t *testing.T) {
	for _, k := range formats.Kinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var back formats.Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}

	_, err := formats.Unknown.MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "yaml", formats.YAML.String())
}

func TestLookups(t *testing.T) {
	d, ok := formats.ByExt(".PLIST")
	require.True(t, ok)
	assert.Equal(t, formats.Plist, d.Kind)
	assert.Empty(t, d.Scope)

	d, ok = formats.ByKind(formats.JSON)
	require.True(t, ok)
	assert.Equal(t, "json", d.Ext)
	assert.Equal(t, "//", d.Comment.Open)

	_, ok = formats.ByExt("txt")
	assert.False(t, ok)

	d, err := formats.ByName("yml")
	require.NoError(t, err)
	assert.Equal(t, formats.YAML, d.Kind)

	_, err = formats.ByName("toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedFormat))

	assert.Len(t, formats.All(), 3)
}

func TestAppendixPattern(t *testing.T) {
	plist, _ := formats.ByKind(formats.Plist)
	re := plist.AppendixPattern()

	m := re.FindStringSubmatch("example.PLIST-yaml")
	require.NotNil(t, m)
	assert.Equal(t, "PLIST", m[1])
	assert.Equal(t, "yaml", m[2])

	m = re.FindStringSubmatch("Info.plist")
	require.NotNil(t, m)
	assert.Empty(t, m[2])

	assert.Nil(t, re.FindStringSubmatch("plist.json"))
}

func TestFormatFailureRoundTrip(t *testing.T) {
	for _, d := range formats.All() {
		t.Run(d.Name, func(t *testing.T) {
			msg := d.FormatFailure("dir/a."+d.Ext, errors.ParseFailure("unexpected end", 3, 14))
			assert.Contains(t, msg, "unexpected end")

			loc, ok := formats.LocateError(msg)
			require.True(t, ok)
			assert.Same(t, d, loc.Format)
			assert.Equal(t, "dir/a."+d.Ext, loc.File)
			assert.Equal(t, 3, loc.Line)
			assert.Equal(t, 14, loc.Column)
		})
	}
}

func TestFormatFailureWithoutPosition(t *testing.T) {
	d, _ := formats.ByKind(formats.YAML)
	msg := d.FormatFailure("", stderrors.New("boom"))
	assert.Equal(t, "<input>:1:0: YAML error: boom", msg)

	_, ok := formats.LocateError("nothing to see")
	assert.False(t, ok)
}
