package ristretto

import (
	"github.com/f3rmion/tokenmix/group"
	"golang.org/x/crypto/blake2b"
)

// DefaultDomain is the domain separation prefix used by [HashToElement]
// when none is given.
const DefaultDomain = "TOKENMIX-RISTRETTO255-BLAKE2B512-v1"

// HashToElement maps data to a ristretto255 element with unknown discrete
// logarithm: the 64-byte Blake2b digest of domain || data is fed to the
// one-way map of RFC 9496. An empty domain selects [DefaultDomain].
//
// This is a convenience for deriving fixtures and reproducible token
// sets. Protocols that specify their own hash-to-group must use that
// instead.
func HashToElement(domain string, data []byte) group.Element {
	if domain == "" {
		domain = DefaultDomain
	}
	h, _ := blake2b.New512(nil)
	h.Write([]byte(domain))
	h.Write(data)
	digest := h.Sum(nil)

	e := &Element{}
	e.inner.FromUniformBytes(digest)
	return e
}
