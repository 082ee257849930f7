package document

// DeriveStatus recomputes a document's status from its recipient set and the
// signatures recorded so far. Status is never written independently of this
// rule, so the stored value can always be reproduced from the signature set.
func DeriveStatus(sentTo []uint, signatures []Signature) Status {
	if len(sentTo) == 0 {
		return StatusSent
	}

	signed := make(map[uint]bool, len(signatures))
	for _, s := range signatures {
		signed[s.SignedBy] = true
	}

	count := 0
	for _, uid := range sentTo {
		if signed[uid] {
			count++
		}
	}

	switch {
	case count == 0:
		return StatusSent
	case count == len(sentTo):
		return StatusCompleted
	default:
		return StatusSigned
	}
}

// HasSigned reports whether uid already has a signature among signatures.
func HasSigned(signatures []Signature, uid uint) bool {
	for _, s := range signatures {
		if s.SignedBy == uid {
			return true
		}
	}
	return false
}
