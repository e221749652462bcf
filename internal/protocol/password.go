package protocol

// passwordSeed is the rotating XOR pad the client applies to the password
// field of MsgAccount. Fixed by the client, not a secret.
var passwordSeed = [8]byte{0x79, 0xf7, 0x2e, 0x95, 0x41, 0x3a, 0x1c, 0xd6}

// PasswordOffset is where the obfuscated password field starts in MsgAccount
const PasswordOffset = 20

// Password decodes the obfuscated password field of a MsgAccount frame
func (p Packet) Password() string {
	raw := make([]byte, 0, passwordWidth)
	for i := 0; i < passwordWidth && PasswordOffset+i < len(p); i++ {
		b := p[PasswordOffset+i] ^ passwordSeed[i&7]
		if b == 0 {
			continue
		}
		raw = append(raw, b)
	}
	return string(raw)
}

func obfuscatePassword(password string) []byte {
	out := make([]byte, passwordWidth)
	for i := 0; i < len(password) && i < passwordWidth; i++ {
		out[i] = password[i] ^ passwordSeed[i&7]
	}
	// NUL padding is obfuscated too so the field round-trips
	for i := len(password); i < passwordWidth; i++ {
		out[i] = passwordSeed[i&7]
	}
	return out
}
