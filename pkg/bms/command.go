package bms

import "github.com/lmi/i2cdecode"

// Command words written to the gauge.
const (
	CmdStateOfCharge  uint16 = 0x0D
	CmdBlockAccess    uint16 = 0x44
	SubFirmware       uint16 = 0x02
	SubDAStatus1      uint16 = 0x0071
	SubDAStatus2      uint16 = 0x0072
	readHeaderLength         = 3
)

// Block is the register block a read returns, chosen by the command
// context left behind by the preceding write.
type Block int

const (
	BlockNone Block = iota
	BlockStateOfCharge
	BlockDAStatus1
	BlockDAStatus2
	BlockUnmodeled
)

func (b Block) String() string {
	switch b {
	case BlockStateOfCharge:
		return "StateOfCharge"
	case BlockDAStatus1:
		return "DAStatus1"
	case BlockDAStatus2:
		return "DAStatus2"
	case BlockUnmodeled:
		return "Unmodeled"
	default:
		return "None"
	}
}

// Route picks the read block for a command context.
func Route(c i2cdecode.CommandContext) Block {
	first, ok := c.First()
	switch {
	case !ok:
		return BlockNone
	case first == CmdStateOfCharge:
		return BlockStateOfCharge
	case first == CmdBlockAccess && c.Contains(SubDAStatus1):
		return BlockDAStatus1
	case c.Contains(SubDAStatus2):
		return BlockDAStatus2
	default:
		return BlockUnmodeled
	}
}

// SubPosition is the index of a read byte inside a block-access
// response. The first bytes of the response echo the command and are
// negative here.
func SubPosition(pos int) int {
	return pos - readHeaderLength
}
