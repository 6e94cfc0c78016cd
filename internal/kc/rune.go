package kc

// runeTable maps the printable ASCII characters a corpus is expected to
// contain to their unshifted keycode. Uppercase letters resolve through
// shiftedRuneTable to their base keycode; shifted punctuation is not mapped.
var runeTable = map[rune]KC{
	'a': A, 'b': B, 'c': C, 'd': D, 'e': E, 'f': F, 'g': G, 'h': H, 'i': I,
	'j': J, 'k': K, 'l': L, 'm': M, 'n': N, 'o': O, 'p': P, 'q': Q, 'r': R,
	's': S, 't': T, 'u': U, 'v': V, 'w': W, 'x': X, 'y': Y, 'z': Z,
	'0': Num0, '1': Num1, '2': Num2, '3': Num3, '4': Num4,
	'5': Num5, '6': Num6, '7': Num7, '8': Num8, '9': Num9,
	'-': Minus, '=': Equals, '[': LeftBracket, ']': RightBracket,
	'\\': Backslash, ';': Semicolon, '\'': Quote, '`': Grave,
	',': Comma, '.': Dot, '/': Slash,
	'\n': Enter, '\t': Tab, ' ': Space,
}

// shiftedRuneTable maps characters only reachable by holding Shift to their
// base keycode; ByRune reports these via (base, true) with no Shift bit — for
// this system's purposes (mapping a corpus onto PhysEv presses) the base
// keycode alone is sufficient, since Shift-ness is a layout/layer concern
// handled by the firmware model, not by corpus ingestion.
var shiftedRuneTable = map[rune]KC{
	'A': A, 'B': B, 'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'H': H, 'I': I,
	'J': J, 'K': K, 'L': L, 'M': M, 'N': N, 'O': O, 'P': P, 'Q': Q, 'R': R,
	'S': S, 'T': T, 'U': U, 'V': V, 'W': W, 'X': X, 'Y': Y, 'Z': Z,
}

// ByRune resolves a corpus character to the keycode whose press/release the
// reference model should generate. The bool is false for characters outside
// the supported ASCII set (e.g. other Unicode scripts), which the caller
// skips.
func ByRune(r rune) (KC, bool) {
	if k, ok := runeTable[r]; ok {
		return k, true
	}

	if k, ok := shiftedRuneTable[r]; ok {
		return k, true
	}

	return 0, false
}
