// Package config loads eventgate configuration from TOML.
//
// Missing keys keep their defaults; unknown keys are rejected. A loaded
// configuration is always validated:
//
//	[capability]
//	engine_family = "gecko"     # ie, opera, webkit, gecko or empty
//	engine_version = 1.9
//	browser_version = 3.5
//	native_listeners = true
//
//	[hotkeys]
//	strict = false
//	[hotkeys.bindings]
//	save = "ctrl+s"
//	close = "esc|q"
//
//	[ready]
//	poll_interval = "10ms"
//
//	[log]
//	level = "info"              # zerolog level name
//	format = "console"          # console or json
//
//	[plugins]
//	scripts = ["plugins/notify.lua"]
//
//	[metrics]
//	enabled = false
//	namespace = "eventgate"
//	addr = ":9090"
package config
