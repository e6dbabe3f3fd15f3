package mididarwin

// messageSize is the length of one keyboard message.
const messageSize = 3

// splitPacket hands each message of a packet to emit in order. A packet may
// carry several messages back to back; a trailing fragment shorter than a
// message is emitted as is so the decoder can reject it. It reports whether
// such a fragment was found.
func splitPacket(data []byte, emit func(msg []byte)) (short bool) {
	for len(data) > 0 {
		n := min(messageSize, len(data))
		emit(data[:n])
		data = data[n:]
		if n < messageSize {
			short = true
		}
	}
	return short
}
