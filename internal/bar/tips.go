package bar

// TipPrefix labels tips so they read differently from notifications.
const TipPrefix = "Tip: "

// Tips shown while the bar is idle and the tip feature is enabled. Ordered
// roughly by how early each setting or key is likely to matter.
var Tips = []string{
	`Raise "notifications"->"min_level" in config.toml to silence debug and info chatter.`,
	`Set "notifications"->"show_tips" to false if you would rather see "` + IdleMessage + `" while idle.`,
	`Changes to config.toml apply live; there is no need to restart flashbar.`,
	`Press "e" to expand the bar and read a long message in full; "esc" reduces it again.`,
	`The bar always shows the most severe recent message. Older, less urgent ones are dropped, not queued.`,
	`A message lingers for the display window (5s by default); tune it with "notifications"->"timeout".`,
	`Scroll the event log with "j"/"k" or the arrow keys; the bar keeps updating underneath.`,
	`Press "y" to copy the visible event log as YAML.`,
	`Pipe JSON lines like {"content":"disk full","severity":"error"} into flashbar to drive the bar.`,
	`Plain text lines on stdin are treated as info events.`,
	`Run "flashbar --demo" to watch the arbitration rules with a synthetic feed.`,
	`Run "flashbar config init" to write a commented default config file.`,
	`Run "flashbar tips" to read all of these at your own pace.`,
}
