package preview

// Channel is an in process broadcaster. Sends never block, a payload is
// dropped when the buffer is full.
type Channel struct {
	C chan []byte
}

func NewChannel(size int) *Channel {
	return &Channel{C: make(chan []byte, size)}
}

func (c *Channel) Broadcast(payload []byte) {
	select {
	case c.C <- payload:
	default:
	}
}
