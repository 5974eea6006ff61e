package per

// Constants from ITU-T X.691 | ISO/IEC 8825-2:2015, clause 11.9 (general rules
// for encoding a length determinant) and clause 16 (bitstring fragmentation).
const (
	// BYTE_LEN is the number of bits in an octet.
	BYTE_LEN = 8

	// SMALL_NON_NEGATIVE_NUMBER is the threshold used by the "normally small
	// non-negative whole number" encoding (11.6): values <= 63 use a single
	// marker bit plus a 6-bit field, values >= 64 fall back to a
	// semi-constrained whole number.
	SMALL_NON_NEGATIVE_NUMBER = 64

	// LENGTH_127 is the largest length encodable in a single octet with bit 8
	// clear (11.9.3.6).
	LENGTH_127 = 127

	// LENGTH_16K is the threshold at which a length determinant switches from
	// the two-octet form to the fragmented form (11.9.3.7/11.9.3.8), and the
	// size of a single fragment (16 * 1024).
	LENGTH_16K = 16 * 1024

	// LENGTH_64K is the boundary above which a length determinant can no
	// longer be treated as a constrained whole number (11.9.3.3/11.9.4.1).
	LENGTH_64K = 64 * 1024

	// FRAGMENT_SIZE is the unit of fragmentation for bitstrings, octetstrings
	// and length determinants (11.9.4.2).
	FRAGMENT_SIZE = LENGTH_16K

	// MAX_FRAGMENTS is the largest multiplier ("m") a single fragment header
	// may carry (11.9.3.8, NOTE): 1 to 4 blocks of FRAGMENT_SIZE each.
	MAX_FRAGMENTS = 4

	// MIN_FRAGMENT_SIZE is the smallest fragment size that still signals
	// "more fragments follow"; a fragment shorter than this ends the loop.
	MIN_FRAGMENT_SIZE = FRAGMENT_SIZE

	// MAX_FRAGMENTS_SIZE is the largest amount of data a single
	// (non-continued) fragment header can claim: MAX_FRAGMENTS *
	// FRAGMENT_SIZE.
	MAX_FRAGMENTS_SIZE = FRAGMENT_SIZE * MAX_FRAGMENTS

	// MAX_CONSTRAINED_LENGTH is kept as an alias of LENGTH_64K: the maximum
	// value for which a length determinant can be encoded/decoded as a
	// constrained whole number. Beyond this, it is unconstrained.
	MAX_CONSTRAINED_LENGTH = LENGTH_64K
)
