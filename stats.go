package i2cdecode

import "fmt"

// Stats counts what a decoder has consumed and produced.
type Stats struct {
	Transactions uint64
	DataBytes    uint64
	Readings     uint64
	// Unknown counts data bytes sent to unmapped addresses.
	Unknown uint64
	// Hidden counts data bytes of devices switched off.
	Hidden uint64
}

func (st Stats) String() string {
	return fmt.Sprintf("transactions: %d bytes: %d readings: %d unknown: %d hidden: %d", st.Transactions, st.DataBytes, st.Readings, st.Unknown, st.Hidden)
}
