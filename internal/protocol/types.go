package protocol

import "fmt"

// Type identifies a packet kind. The ids are the classic client's and are
// fixed by the wire protocol.
type Type uint16

const (
	// Register is the character creation request
	Register Type = 1001
	// Talk carries chat messages and system notices
	Talk Type = 1004
	// Walk is an entity movement step
	Walk Type = 1005
	// UserInfo is the full character information payload
	UserInfo Type = 1006
	// Item is an item usage request
	Item Type = 1009
	// Action is the general data packet
	Action Type = 1010
	// Leave notifies surrounding clients that an entity left view
	Leave Type = 1013
	// Interact is an entity interaction request
	Interact Type = 1022
	// Account is the credential login request to the auth gateway
	Account Type = 1051
	// Connect is the identity/token handshake to the session gateway
	Connect Type = 1052
	// ConnectEx is the login forward reply redirecting to the session gateway
	ConnectEx Type = 1055
)

func (t Type) String() string {
	switch t {
	case Register:
		return "MsgRegister"
	case Talk:
		return "MsgTalk"
	case Walk:
		return "MsgWalk"
	case UserInfo:
		return "MsgUserInfo"
	case Item:
		return "MsgItem"
	case Action:
		return "MsgAction"
	case Leave:
		return "MsgLeave"
	case Interact:
		return "MsgInteract"
	case Account:
		return "MsgAccount"
	case Connect:
		return "MsgConnect"
	case ConnectEx:
		return "MsgConnectEx"
	}
	return fmt.Sprintf("Msg(%d)", uint16(t))
}
