// Package plugin defines the message protocol between rmenu and its
// plugins. Plugins emit entries and option overlays as line-delimited
// JSON on stdout; the host consumes the stream incrementally. The same
// types back the host's on-disk entry cache.
//
// A minimal plugin:
//
//	enc := plugin.NewEncoder(os.Stdout)
//	_ = enc.Options(plugin.Options{Placeholder: plugin.String("run what?")})
//	_ = enc.Entry(plugin.NewEntry("firefox", "firefox", nil))
package plugin
