//go:build !debug

package components

const strictInvariants = false
