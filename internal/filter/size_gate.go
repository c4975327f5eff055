package filter

import "github.com/temirov/flatten/internal/types"

const bytesPerKilobyte = 1024

// SizeGate rejects files larger than a configured number of kibibytes.
type SizeGate struct {
	limitKB int
}

// NewSizeGate returns a gate for limitKB; a non-positive limit selects types.DefaultMaxFileSizeKB.
func NewSizeGate(limitKB int) SizeGate {
	if limitKB <= 0 {
		limitKB = types.DefaultMaxFileSizeKB
	}
	return SizeGate{limitKB: limitKB}
}

// LimitKB returns the effective limit.
func (sizeGate SizeGate) LimitKB() int {
	if sizeGate.limitKB <= 0 {
		return types.DefaultMaxFileSizeKB
	}
	return sizeGate.limitKB
}

// Permits reports whether a file of byteSize bytes passes the gate.
func (sizeGate SizeGate) Permits(byteSize int64) bool {
	return Permits(byteSize, sizeGate.LimitKB())
}

// Permits is true iff byteSize/1024 <= limitKB, using whole kibibytes.
func Permits(byteSize int64, limitKB int) bool {
	if byteSize < 0 {
		return false
	}
	return byteSize/bytesPerKilobyte <= int64(limitKB)
}
