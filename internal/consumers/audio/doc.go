// Package audio sonifies scroll motion.
//
// A [Modulator] polls the signal board: its level is smoothed once per
// modulation frame, while the click interval is recomputed from the raw
// momentum every time the [Synth] needs one. The synth is a beep.Streamer
// and runs on the speaker's goroutine; [Player] wires it to the device.
package audio
