package protocol

import "github.com/conquergate/conquergate/internal/model"

// Field widths fixed by the client
const (
	accountNameWidth = 16
	passwordWidth    = 16
	serverNameWidth  = 16
	addressWidth     = 16
)

// NewAccount builds a MsgAccount credential login frame: account name at
// offset 4, obfuscated password at offset 20, server name at offset 36.
func NewAccount(accountName, password, serverName string) Packet {
	w := NewWriter(Account, HeaderSize+accountNameWidth+passwordWidth+serverNameWidth)
	w.PutString(accountName, accountNameWidth)
	w.PutString(string(obfuscatePassword(password)), passwordWidth)
	w.PutString(serverName, serverNameWidth)
	return w.Packet()
}

// NewConnectEx builds the MsgConnectEx login forward reply: identity,
// token, and the session gateway redirect address/port.
func NewConnectEx(identity uint64, token uint32, address string, port uint32) Packet {
	w := NewWriter(ConnectEx, HeaderSize+4+4+addressWidth+4)
	w.PutUint32(uint32(identity))
	w.PutUint32(token)
	w.PutString(address, addressWidth)
	w.PutUint32(port)
	return w.Packet()
}

// NewConnect builds the MsgConnect handshake frame: identity at offset 4,
// token at offset 8, client info string at offset 12.
func NewConnect(identity uint64, token uint32, info string) Packet {
	w := NewWriter(Connect, HeaderSize+4+4+addressWidth)
	w.PutUint32(uint32(identity))
	w.PutUint32(token)
	w.PutString(info, addressWidth)
	return w.Packet()
}

// NewWalk builds a MsgWalk frame: mover identity at offset 4, direction
// byte at offset 8.
func NewWalk(identity uint64, direction model.Direction) Packet {
	w := NewWriter(Walk, HeaderSize+4+1+3)
	w.PutUint32(uint32(identity))
	w.PutByte(byte(direction))
	return w.Packet()
}

// NewLeave builds the MsgLeave remove notification for an entity
func NewLeave(identity uint64) Packet {
	w := NewWriter(Leave, HeaderSize+4+4)
	w.PutUint32(uint32(identity))
	return w.Packet()
}

// NewUserInfo builds the MsgUserInfo character information payload sent
// after a successful login.
func NewUserInfo(p *model.Player) Packet {
	size := HeaderSize + 4 + 4 + 2 + 4 + 2 + 1 + 1 + 1 + len(p.CharName)
	w := NewWriter(UserInfo, size)
	w.PutUint32(uint32(p.ID))
	w.PutUint32(p.Body)
	w.PutUint16(p.HairStyle)
	w.PutUint32(p.Money)
	w.PutUint16(p.Class)
	w.PutByte(p.Level)
	w.PutByte(1) // string count
	w.PutByte(byte(len(p.CharName)))
	w.PutString(p.CharName, len(p.CharName))
	return w.Packet()
}

// NewRegister builds a MsgRegister character creation frame: character
// name at offset 4, body at offset 20, class at offset 24, hair style at
// offset 26.
func NewRegister(name string, body uint32, class, hairStyle uint16) Packet {
	w := NewWriter(Register, HeaderSize+accountNameWidth+4+2+2+4)
	w.PutString(name, accountNameWidth)
	w.PutUint32(body)
	w.PutUint16(class)
	w.PutUint16(hairStyle)
	return w.Packet()
}
