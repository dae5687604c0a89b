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

const samplePlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>Example</string>
	<key>count</key>
	<integer>42</integer>
	<key>ratio</key>
	<real>1.5</real>
	<key>flags</key>
	<array>
		<true/>
		<false/>
	</array>
	<key>created</key>
	<date>2021-06-01T12:00:00Z</date>
	<key>payload</key>
	<data>
	aGVs
	bG8=
	</data>
</dict>
</plist>
`

func TestPlistLoader(t *testing.T) {
	got, err := loaders.PlistLoader{}.Load([]byte(samplePlist), nil)
	require.NoError(t, err)

	want := tree.FromPairs(
		tree.Pair{Key: "name", Value: "Example"},
		tree.Pair{Key: "count", Value: int64(42)},
		tree.Pair{Key: "ratio", Value: 1.5},
		tree.Pair{Key: "flags", Value: []any{true, false}},
		tree.Pair{Key: "created", Value: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)},
		tree.Pair{Key: "payload", Value: tree.Data("hello")},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestPlistLoaderIntegers(t *testing.T) {
	load := func(s string) any {
		v, err := loaders.PlistLoader{}.Load([]byte("<plist><integer>"+s+"</integer></plist>"), nil)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, int64(10), load("010"))
	assert.Equal(t, int64(-7), load("-7"))
	assert.Equal(t, int64(255), load("0xff"))
}

func TestPlistLoaderEmpty(t *testing.T) {
	v, err := loaders.PlistLoader{}.Load([]byte(`<plist version="1.0"></plist>`), nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPlistLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{name: "wrong root", src: "<dict></dict>"},
		{name: "two values", src: "<plist><true/><false/></plist>"},
		{name: "unknown element", src: "<plist><set/></plist>"},
		{name: "dict without key", src: "<plist><dict><string>a</string><true/></dict></plist>"},
		{name: "bad integer", src: "<plist><integer>1.5</integer></plist>"},
		{name: "bad xml", src: "<plist version=\"1.0\">\n<dict>\n<key>a & b</key>\n</dict>\n</plist>", line: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loaders.PlistLoader{}.Load([]byte(tt.src), nil)
			require.Error(t, err)
			assert.Equal(t, errors.ErrParseFailure, errors.GetErrorCode(err))
			if tt.line > 0 {
				line, _, ok := errors.Position(err)
				require.True(t, ok)
				assert.Equal(t, tt.line, line)
			}
		})
	}
}
