package coding

import (
	"fmt"
	"strings"
)

// Byte payloads ride the DTMF alphabet as 4-bit nibbles, low nibble first,
// each nibble's bits sent least-significant first. bitReverse4 maps between
// the nibble value and its wire-order grid index.
func bitReverse4(v byte) byte {
	v &= 0xF
	return (v&1)<<3 | (v&2)<<1 | (v&4)>>1 | (v&8)>>3
}

// SymbolForNibble maps a 4-bit value to its DTMF symbol.
func SymbolForNibble(nibble byte) byte {
	return dtmfSymbols[bitReverse4(nibble)]
}

// NibbleForSymbol maps a DTMF symbol back to its 4-bit value.
func NibbleForSymbol(symbol byte) (byte, bool) {
	index := strings.IndexByte(dtmfSymbols, symbol)
	if index < 0 {
		return 0, false
	}
	return bitReverse4(byte(index)), true
}

// BytesToSymbols encodes arbitrary binary data as DTMF symbols, two per
// byte.
func BytesToSymbols(data []byte) []byte {
	out := make([]byte, 0, len(data)*2)
	for _, b := range data {
		out = append(out, SymbolForNibble(b&0xF), SymbolForNibble(b>>4))
	}
	return out
}

// SymbolsToBytes decodes a DTMF symbol stream produced by BytesToSymbols. A
// trailing unpaired nibble is kept as a byte with a zero high nibble.
func SymbolsToBytes(symbols []byte) ([]byte, error) {
	out := make([]byte, 0, (len(symbols)+1)/2)
	for i := 0; i < len(symbols); i += 2 {
		low, ok := NibbleForSymbol(symbols[i])
		if !ok {
			return nil, fmt.Errorf("invalid dtmf symbol %q", symbols[i])
		}

		var high byte
		if i+1 < len(symbols) {
			high, ok = NibbleForSymbol(symbols[i+1])
			if !ok {
				return nil, fmt.Errorf("invalid dtmf symbol %q", symbols[i+1])
			}
		}

		out = append(out, low|high<<4)
	}
	return out, nil
}
