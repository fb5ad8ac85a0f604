package inputdev

import "fmt"

// textKey is one keystroke of typed text on a US layout.
type textKey struct {
	Name  string
	Shift bool
}

var unshiftedSymbols = map[rune]string{
	' ': "KEY_SPACE", '\n': "KEY_ENTER", '\t': "KEY_TAB",
	'-': "KEY_MINUS", '=': "KEY_EQUAL", '[': "KEY_LEFTBRACE", ']': "KEY_RIGHTBRACE",
	'\\': "KEY_BACKSLASH", ';': "KEY_SEMICOLON", '\'': "KEY_APOSTROPHE", '`': "KEY_GRAVE",
	',': "KEY_COMMA", '.': "KEY_DOT", '/': "KEY_SLASH",
}

var shiftedSymbols = map[rune]string{
	'!': "KEY_1", '@': "KEY_2", '#': "KEY_3", '$': "KEY_4", '%': "KEY_5",
	'^': "KEY_6", '&': "KEY_7", '*': "KEY_8", '(': "KEY_9", ')': "KEY_0",
	'_': "KEY_MINUS", '+': "KEY_EQUAL", '{': "KEY_LEFTBRACE", '}': "KEY_RIGHTBRACE",
	'|': "KEY_BACKSLASH", ':': "KEY_SEMICOLON", '"': "KEY_APOSTROPHE", '~': "KEY_GRAVE",
	'<': "KEY_COMMA", '>': "KEY_DOT", '?': "KEY_SLASH",
}

// textKeys spells text as US-layout keystrokes.
func textKeys(text string) ([]textKey, error) {
	keys := make([]textKey, 0, len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			keys = append(keys, textKey{Name: "KEY_" + string(r-'a'+'A')})
		case r >= 'A' && r <= 'Z':
			keys = append(keys, textKey{Name: "KEY_" + string(r), Shift: true})
		case r >= '0' && r <= '9':
			keys = append(keys, textKey{Name: "KEY_" + string(r)})
		default:
			if name, ok := unshiftedSymbols[r]; ok {
				keys = append(keys, textKey{Name: name})
			} else if name, ok := shiftedSymbols[r]; ok {
				keys = append(keys, textKey{Name: name, Shift: true})
			} else {
				return nil, fmt.Errorf("cannot type %q on a US layout", r)
			}
		}
	}
	return keys, nil
}
