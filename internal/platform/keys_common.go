package platform

import (
	"crypto/sha256"
	"encoding/binary"
	"os/user"
)

// keySalt distinguishes this library's derivation from any other consumer
// that might otherwise collide on the same scheme.
const keySalt = "flshm-v1"

// deriveSeed produces a stable 32-byte seed for a given role ("sem" or
// "shm"), scoped to the current user when isPerUser is set.
//
// This is a documented best-effort stand-in, not a reproduction of the
// ASVM's own undocumented derivation, whose exact scheme was never recovered.
// It is deterministic and stable across runs on a given host/user, which is
// the property every other component in this package depends on.
func deriveSeed(isPerUser bool, role string) [32]byte {
	h := sha256.New()
	h.Write([]byte(keySalt))
	h.Write([]byte(role))
	if isPerUser {
		h.Write([]byte(currentUserID()))
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func currentUserID() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	return u.Uid
}

// deriveUint32 folds a seed into a non-zero 32-bit numeric key, suitable for
// a SysV key_t.
func deriveUint32(seed [32]byte) uint32 {
	v := binary.LittleEndian.Uint32(seed[:4])
	if v == 0 {
		v = 1
	}
	return v
}

// deriveName folds a seed into a short ASCII token suitable for a named
// kernel object, budgeted to fit within maxLen bytes (NUL excluded).
func deriveName(prefix string, seed [32]byte, maxLen int) string {
	const hex = "0123456789abcdef"
	budget := maxLen - len(prefix)
	if budget < 0 {
		budget = 0
	}
	if budget > len(seed)*2 {
		budget = len(seed) * 2
	}
	buf := make([]byte, 0, budget)
	for _, b := range seed {
		if len(buf) >= budget {
			break
		}
		buf = append(buf, hex[b>>4])
		if len(buf) >= budget {
			break
		}
		buf = append(buf, hex[b&0xf])
	}
	return prefix + string(buf)
}
