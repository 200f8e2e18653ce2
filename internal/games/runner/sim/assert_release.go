//go:build release

package sim

const checkInvariants = false
