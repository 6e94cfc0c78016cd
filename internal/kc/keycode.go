// Package kc defines the closed keycode enumeration and the small bitmask
// sets built on top of it, shared by the firmware and reference state
// machines and by the layout genome.
package kc

// KC is a single logical keycode. Modifiers are listed first so that e.g.
// Ctrl-C is always generated as "press Ctrl, then press C" rather than the
// reverse.
type KC int

const (
	Ctrl KC = iota
	Shift
	Alt
	Super

	Num0
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9

	Enter
	Esc
	Backspace
	Tab
	Space
	Insert
	Delete
	Home
	End
	PageUp
	PageDn
	Up
	Down
	Left
	Right
	NumLock
	ScrollLock
	PrintScreen
	Pause
	App

	MediaMute
	MediaVolUp
	MediaVolDown
	MediaPrev
	MediaNext
	MediaPlayPause
	MediaStop

	Minus
	Equals
	LeftBracket
	RightBracket
	Backslash
	Semicolon
	Quote
	Grave
	Comma
	Dot
	Slash

	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	numKC
)

// NumKC is the size of the closed keycode enumeration.
const NumKC = int(numKC)

var names = [numKC]string{
	Ctrl: "KC_LCTRL", Shift: "KC_LSHIFT", Alt: "KC_LALT", Super: "KC_LGUI",
	Num0: "KC_0", Num1: "KC_1", Num2: "KC_2", Num3: "KC_3", Num4: "KC_4",
	Num5: "KC_5", Num6: "KC_6", Num7: "KC_7", Num8: "KC_8", Num9: "KC_9",
	Enter: "KC_ENTER", Esc: "KC_ESC", Backspace: "KC_BSPC", Tab: "KC_TAB",
	Space: "KC_SPC", Insert: "KC_INS", Delete: "KC_DEL", Home: "KC_HOME",
	End: "KC_END", PageUp: "KC_PGUP", PageDn: "KC_PGDN", Up: "KC_UP",
	Down: "KC_DOWN", Left: "KC_LEFT", Right: "KC_RGHT", NumLock: "KC_NUM",
	ScrollLock: "KC_SLCK", PrintScreen: "KC_PSCR", Pause: "KC_PAUS", App: "KC_APP",
	MediaMute: "KC_MUTE", MediaVolUp: "KC_VOLU", MediaVolDown: "KC_VOLD",
	MediaPrev: "KC_MPRV", MediaNext: "KC_MNXT", MediaPlayPause: "KC_MPLY", MediaStop: "KC_MSTP",
	Minus: "KC_MINS", Equals: "KC_EQL", LeftBracket: "KC_LBRC", RightBracket: "KC_RBRC",
	Backslash: "KC_BSLS", Semicolon: "KC_SCLN", Quote: "KC_QUOT", Grave: "KC_GRV",
	Comma: "KC_COMM", Dot: "KC_DOT", Slash: "KC_SLSH",
	A: "KC_A", B: "KC_B", C: "KC_C", D: "KC_D", E: "KC_E", F: "KC_F", G: "KC_G",
	H: "KC_H", I: "KC_I", J: "KC_J", K: "KC_K", L: "KC_L", M: "KC_M", N: "KC_N",
	O: "KC_O", P: "KC_P", Q: "KC_Q", R: "KC_R", S: "KC_S", T: "KC_T", U: "KC_U",
	V: "KC_V", W: "KC_W", X: "KC_X", Y: "KC_Y", Z: "KC_Z",
	F1: "KC_F1", F2: "KC_F2", F3: "KC_F3", F4: "KC_F4", F5: "KC_F5", F6: "KC_F6",
	F7: "KC_F7", F8: "KC_F8", F9: "KC_F9", F10: "KC_F10", F11: "KC_F11", F12: "KC_F12",
}

func (k KC) String() string {
	if k < 0 || int(k) >= NumKC {
		return "KC_NONE"
	}

	return names[k]
}

// IsMod reports whether k is one of the four modifier keycodes.
func (k KC) IsMod() bool {
	return k == Ctrl || k == Shift || k == Alt || k == Super
}

// ByName resolves a keycode by its QMK-style token, as read from layout
// config and seed-layout files. The bool is false for unknown tokens.
func ByName(name string) (KC, bool) {
	for i, n := range names {
		if n == name {
			return KC(i), true
		}
	}

	return 0, false
}
