package protocol

// Chat channels understood by the client
const (
	// ChatTalk is ambient spoken chat
	ChatTalk uint16 = 2000
	// ChatDialog pops a dialog box on the client
	ChatDialog uint16 = 2100
	// ChatLoginInfo is consumed by the login sequence
	ChatLoginInfo uint16 = 2101
)

// Well-known talk participants and bodies from the login sequence
const (
	SystemName = "SYSTEM"
	AllUsers   = "ALLUSERS"
	AnswerOK   = "ANSWER_OK"
	NewRole    = "NEW_ROLE"
)

// talkColour is the default chat colour (white)
const talkColour uint32 = 0x00ffffff

// TalkMessage is a decoded MsgTalk
type TalkMessage struct {
	Colour  uint32
	Channel uint16
	From    string
	To      string
	Message string
}

// NewTalk builds a MsgTalk frame. Layout after the header: colour u32,
// channel u16, string count byte, then counted strings from, to, message.
func NewTalk(channel uint16, from, to, message string) Packet {
	size := HeaderSize + 4 + 2 + 1 + 3 + len(from) + len(to) + len(message)
	w := NewWriter(Talk, size)
	w.PutUint32(talkColour)
	w.PutUint16(channel)
	w.PutByte(3)
	putCountedString(w, from)
	putCountedString(w, to)
	putCountedString(w, message)
	return w.Packet()
}

// NewSystemNotice builds a system notice addressed to the connected client
func NewSystemNotice(channel uint16, body string) Packet {
	return NewTalk(channel, SystemName, AllUsers, body)
}

// ParseTalk decodes a MsgTalk frame
func ParseTalk(p Packet) TalkMessage {
	msg := TalkMessage{
		Colour:  p.Uint32(4),
		Channel: p.Uint16(8),
	}
	offset := 11 // past the string count byte
	msg.From, offset = countedString(p, offset)
	msg.To, offset = countedString(p, offset)
	msg.Message, _ = countedString(p, offset)
	return msg
}

func putCountedString(w *Writer, s string) {
	w.PutByte(byte(len(s)))
	w.PutString(s, len(s))
}

func countedString(p Packet, offset int) (string, int) {
	if offset >= len(p) {
		return "", offset
	}
	n := int(p[offset])
	offset++
	end := offset + n
	if end > len(p) {
		end = len(p)
	}
	return string(p[offset:end]), end
}
