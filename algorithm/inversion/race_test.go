//go:build race

package inversion

const raceEnabled = true
