package dotmtx

// SplitChunks slices data into consecutive pieces of at most size bytes,
// preserving order. The final chunk may be shorter; concatenating the chunks
// reproduces data exactly. The chunks alias data, they are not copies.
func SplitChunks(data []byte, size int) [][]byte {
	chunks := make([][]byte, 0, (len(data)+size-1)/size)
	for len(data) > size {
		chunks = append(chunks, data[:size])
		data = data[size:]
	}
	if len(data) > 0 {
		chunks = append(chunks, data)
	}
	return chunks
}
