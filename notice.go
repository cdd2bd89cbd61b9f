package i2cdecode

import "fmt"

type NoticeType int

func (nt NoticeType) String() string {
	switch nt {
	case NoticeError:
		return "ERROR"
	case NoticeWarning:
		return "WARN"
	case NoticeInfo:
		return "INFO"
	case NoticeDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

const (
	NoticeError NoticeType = iota
	NoticeWarning
	NoticeInfo
	NoticeDebug
)

// Notice is out-of-band adapter chatter. It never carries bus data.
type Notice struct {
	Type    NoticeType
	Details string
}

func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s", n.Type.String(), n.Details)
}
