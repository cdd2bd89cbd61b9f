package i2cdecode

// State is the carried decoder state. One Decoder owns it and hands it to
// the active FieldTable for every data byte.
type State struct {
	Device    Device
	Direction Direction
	// Position counts data bytes since the last address phase.
	Position int

	PrevDevice    Device
	PrevDirection Direction

	// Partial holds the bytes of a multi-byte field under assembly.
	Partial uint32
	// Command survives from a write transaction into the following read.
	Command CommandContext
	// Register is the last register selected by a write.
	Register byte
}

// Begin starts a new transaction.
func (st *State) Begin(dev Device, dir Direction) {
	st.PrevDevice, st.PrevDirection = st.Device, st.Direction
	st.Device, st.Direction = dev, dir
	st.Position = 0
	st.Partial = 0
}

// DeviceChanged reports whether the previous transaction addressed another device.
func (st *State) DeviceChanged() bool {
	return st.PrevDevice != st.Device
}

func (st *State) Reset() {
	*st = State{}
}

// CommandContext is the list of command words written to the battery
// monitor before a read. An empty context means no command was seen.
type CommandContext struct {
	words []uint16
}

func NewCommandContext(words ...uint16) CommandContext {
	return CommandContext{words: append([]uint16(nil), words...)}
}

// Start replaces the context with a single command word.
func (c *CommandContext) Start(w uint16) {
	c.words = []uint16{w}
}

func (c *CommandContext) Append(w uint16) {
	c.words = append(c.words, w)
}

func (c *CommandContext) Clear() {
	c.words = nil
}

func (c CommandContext) Empty() bool {
	return len(c.words) == 0
}

// First returns the command word that opened the context.
func (c CommandContext) First() (uint16, bool) {
	if len(c.words) == 0 {
		return 0, false
	}
	return c.words[0], true
}

func (c CommandContext) Contains(w uint16) bool {
	for _, v := range c.words {
		if v == w {
			return true
		}
	}
	return false
}

func (c CommandContext) Words() []uint16 {
	return append([]uint16(nil), c.words...)
}
