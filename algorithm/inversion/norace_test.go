//go:build !race

package inversion

const raceEnabled = false
