package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conquergate/conquergate/internal/model"
)

func TestAccountFrameLayout(t *testing.T) {
	p := NewAccount("alice", "hunter2", "CentralPlain")

	assert.Equal(t, Account, p.Type())
	assert.Equal(t, "alice", p.String(4, 16))
	assert.Equal(t, "hunter2", p.Password())
	assert.Equal(t, "CentralPlain", p.String(36, 16))
	assert.Len(t, []byte(p), 52)
}

func TestPasswordObfuscationIsNotPlaintext(t *testing.T) {
	p := NewAccount("alice", "hunter2", "CentralPlain")

	raw := p.String(PasswordOffset, 16)
	assert.NotContains(t, raw, "hunter2")
}

func TestConnectExFrameLayout(t *testing.T) {
	p := NewConnectEx(1000123, 0xdeadbeef, "127.000.000.001", 5816)

	assert.Equal(t, ConnectEx, p.Type())
	assert.Equal(t, uint32(1000123), p.Uint32(4))
	assert.Equal(t, uint32(0xdeadbeef), p.Uint32(8))
	assert.Equal(t, "127.000.000.001", p.String(12, 16))
	assert.Equal(t, uint32(5816), p.Uint32(28))
	assert.Len(t, []byte(p), 32)
}

func TestConnectFrameLayout(t *testing.T) {
	p := NewConnect(1000123, 0xdeadbeef, "EN")

	assert.Equal(t, Connect, p.Type())
	assert.Equal(t, uint32(1000123), p.Uint32(4))
	assert.Equal(t, uint32(0xdeadbeef), p.Uint32(8))
	assert.Equal(t, "EN", p.String(12, 16))
}

func TestWalkFrameCarriesDirectionAtOffset8(t *testing.T) {
	p := NewWalk(1000123, 5)

	assert.Equal(t, Walk, p.Type())
	assert.Equal(t, uint32(1000123), p.Uint32(4))
	assert.Equal(t, byte(5), p.Byte(8))
}

func TestRegisterFrameLayout(t *testing.T) {
	p := NewRegister("Stormbringer", 1003, 10, 7)

	assert.Equal(t, Register, p.Type())
	assert.Equal(t, "Stormbringer", p.String(4, 16))
	assert.Equal(t, uint32(1003), p.Uint32(20))
	assert.Equal(t, uint16(10), p.Uint16(24))
	assert.Equal(t, uint16(7), p.Uint16(26))
}

func TestTalkRoundTrip(t *testing.T) {
	p := NewTalk(ChatTalk, "Stormbringer", "ALLUSERS", "hello world")

	msg := ParseTalk(p)
	assert.Equal(t, ChatTalk, msg.Channel)
	assert.Equal(t, "Stormbringer", msg.From)
	assert.Equal(t, "ALLUSERS", msg.To)
	assert.Equal(t, "hello world", msg.Message)
}

func TestSystemNotice(t *testing.T) {
	p := NewSystemNotice(ChatLoginInfo, AnswerOK)

	msg := ParseTalk(p)
	assert.Equal(t, SystemName, msg.From)
	assert.Equal(t, AllUsers, msg.To)
	assert.Equal(t, AnswerOK, msg.Message)
}

func TestUserInfoCarriesIdentityAndName(t *testing.T) {
	player := model.NewPlayer(1000123, "Stormbringer", model.Location{MapID: 1002, X: 430, Y: 380})
	player.Body = 1003
	player.Level = 1

	p := NewUserInfo(player)

	assert.Equal(t, UserInfo, p.Type())
	assert.Equal(t, uint32(1000123), p.Uint32(4))
	assert.Equal(t, uint32(1003), p.Uint32(8))
}

func TestStringTrimsEmbeddedPadding(t *testing.T) {
	w := NewWriter(Account, HeaderSize+16)
	w.PutString("ab", 16)
	p := w.Packet()

	assert.Equal(t, "ab", p.String(4, 16))
}

func TestReadsBeyondFrameAreZero(t *testing.T) {
	p := NewWalk(1, 0)

	assert.Equal(t, uint32(0), p.Uint32(100))
	assert.Equal(t, uint16(0), p.Uint16(100))
	assert.Equal(t, byte(0), p.Byte(100))
	assert.Equal(t, "", p.String(100, 16))
}

func TestFrameRoundTripPassthrough(t *testing.T) {
	var buf bytes.Buffer
	frame := NewAccount("alice", "hunter2", "CentralPlain")

	require.NoError(t, WriteFrame(&buf, frame, NewCipher()))

	got, err := ReadFrame(&buf, NewCipher())
	require.NoError(t, err)
	assert.Equal(t, []byte(frame), []byte(got))
}

func TestFrameRoundTripKeyed(t *testing.T) {
	sender := NewCipher()
	receiver := NewCipher()
	sender.SetKeys(0xdeadbeef, 1000123)
	receiver.SetKeys(0xdeadbeef, 1000123)

	var buf bytes.Buffer
	first := NewSystemNotice(ChatLoginInfo, AnswerOK)
	second := NewWalk(1000123, 3)
	require.NoError(t, WriteFrame(&buf, first, sender))
	require.NoError(t, WriteFrame(&buf, second, sender))

	// Ciphertext differs from plaintext on the wire
	assert.NotEqual(t, []byte(first), buf.Bytes()[:len(first)])

	got1, err := ReadFrame(&buf, receiver)
	require.NoError(t, err)
	got2, err := ReadFrame(&buf, receiver)
	require.NoError(t, err)
	assert.Equal(t, []byte(first), []byte(got1))
	assert.Equal(t, []byte(second), []byte(got2))
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	raw := []byte{0xff, 0xff, 0x00, 0x00}

	_, err := ReadFrame(bytes.NewReader(raw), NewCipher())
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestReadFrameRejectsUndersizedLength(t *testing.T) {
	raw := []byte{0x02, 0x00, 0x00, 0x00}

	_, err := ReadFrame(bytes.NewReader(raw), NewCipher())
	assert.Error(t, err)
}
