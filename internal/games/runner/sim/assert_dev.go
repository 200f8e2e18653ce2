//go:build !release

package sim

// checkInvariants enables the numeric assertions. Build with -tags release
// to compile them out.
const checkInvariants = true
