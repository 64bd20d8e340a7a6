// Package render turns generated problems into terminal text or YAML.
package render

// Options controls rendering.
type Options struct {
	Color    bool // colour verdicts
	Solution bool // include verdicts and their explanations
	UseASCII bool // draw the conflict graph with ASCII instead of box characters
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{Color: true}
}
