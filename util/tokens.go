// Package util contains line-parsing and file-opening helpers shared by the
// hotspot input readers.
package util

// GetTokens identifies up to the first len(tokens) tokens from line, returning
// the number of tokens saved.  Any (group of) characters <= ' ' is treated as
// a delimiter, so both space- and tab-separated records are accepted.
//
// The saved tokens alias line; callers must copy anything that has to outlive
// the next Scan() of the underlying bufio.Scanner.
func GetTokens(tokens [][]byte, line []byte) int {
	posEnd := 0
	lineLen := len(line)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if line[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if line[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = line[pos:posEnd]
	}
	return len(tokens)
}
