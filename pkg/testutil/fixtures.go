package testutil

// The same document in each supported format.
const (
	SampleJSON = `{
    "name": "demo",
    "version": 2,
    "enabled": true,
    "tags": [
        "a",
        "b"
    ]
}
`

	SampleYAML = `name: demo
version: 2
enabled: true
tags:
  - a
  - b
`

	SamplePlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
	<dict>
		<key>name</key>
		<string>demo</string>
		<key>version</key>
		<integer>2</integer>
		<key>enabled</key>
		<true/>
		<key>tags</key>
		<array>
			<string>a</string>
			<string>b</string>
		</array>
	</dict>
</plist>
`
)

// PlistDoctype is the header every property list starts with.
const PlistDoctype = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`
