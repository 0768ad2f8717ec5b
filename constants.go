package laju

// HTTP/1.x wire-format delimiters the parser pulls against.
var (
	// lineTerminator separates the request line from the header block,
	// and each header/trailer line from the next.
	lineTerminator = []byte{0x0d, 0x0a} // "\r\n"

	// headerTerminator marks the end of the header block: the blank
	// line after the last header.
	headerTerminator = []byte{0x0d, 0x0a, 0x0d, 0x0a} // "\r\n\r\n"
)
