package zn

// Params tunes the Bloom filter's size/hash-count tradeoff (spec.md
// §6.4). Lower false-positive rates and longer keywords need more bits;
// the three presets below are the ones spec.md calls out by name.
type Params struct {
	// HashKeyCount is r, the number of independent HMAC keys (and thus
	// hash functions) used per Bloom filter.
	HashKeyCount int
	// BloomBits is m, the fixed Bloom filter size in bits.
	BloomBits int
}

// DefaultParams targets short keywords (length ~7) at a 1% false
// positive rate: m=614, r=7.
var DefaultParams = Params{HashKeyCount: 7, BloomBits: 614}

// MediumParams targets medium-length keywords: m=1600, r=5.
var MediumParams = Params{HashKeyCount: 5, BloomBits: 1600}

// LongParams targets longer keywords or alphabets: m=2500, r=5.
var LongParams = Params{HashKeyCount: 5, BloomBits: 2500}
