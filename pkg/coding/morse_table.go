package coding

// The ITU glyph table, written as dot-dash strings for readability and
// expanded into symbol slices at init. The table is bidirectional: encoding
// looks up by character, decoding by rendered glyph.
var morseTable = []struct {
	char  rune
	glyph string
}{
	{'A', ".-"}, {'B', "-..."}, {'C', "-.-."}, {'D', "-.."},
	{'E', "."}, {'F', "..-."}, {'G', "--."}, {'H', "...."},
	{'I', ".."}, {'J', ".---"}, {'K', "-.-"}, {'L', ".-.."},
	{'M', "--"}, {'N', "-."}, {'O', "---"}, {'P', ".--."},
	{'Q', "--.-"}, {'R', ".-."}, {'S', "..."}, {'T', "-"},
	{'U', "..-"}, {'V', "...-"}, {'W', ".--"}, {'X', "-..-"},
	{'Y', "-.--"}, {'Z', "--.."},
	{'0', "-----"}, {'1', ".----"}, {'2', "..---"}, {'3', "...--"},
	{'4', "....-"}, {'5', "....."}, {'6', "-...."}, {'7', "--..."},
	{'8', "---.."}, {'9', "----."},
	{'.', ".-.-.-"}, {',', "--..--"}, {'?', "..--.."}, {'\'', ".----."},
	{'!', "-.-.--"}, {'/', "-..-."}, {'(', "-.--."}, {')', "-.--.-"},
	{'&', ".-..."}, {':', "---..."}, {';', "-.-.-."}, {'=', "-...-"},
	{'+', ".-.-."}, {'-', "-....-"}, {'_', "..--.-"}, {'"', ".-..-."},
	{'$', "...-..-"}, {'@', ".--.-."}, {'¿', "..-.-"}, {'¡', "--...-"},
}

var (
	morseGlyphs = make(map[rune][]Morse, len(morseTable)+1)
	morseChars  = make(map[string]rune, len(morseTable))
)

func init() {
	for _, entry := range morseTable {
		glyph := make([]Morse, len(entry.glyph))
		for i, c := range entry.glyph {
			if c == '.' {
				glyph[i] = MorseDit
			} else {
				glyph[i] = MorseDah
			}
		}

		morseGlyphs[entry.char] = glyph
		morseChars[entry.glyph] = entry.char
	}

	morseGlyphs[' '] = []Morse{MorseSpace}
}

func glyphKey(glyph []Morse) string {
	out := make([]byte, len(glyph))
	for i, symbol := range glyph {
		if symbol == MorseDit {
			out[i] = '.'
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}
