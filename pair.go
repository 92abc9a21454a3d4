package jsonptr

// Pair is one direct child of the container the pointer designates. Key
// is a string when the target is an object, or an int index when the
// target is an array. Value is whatever the configured Decoder produced
// from that child's raw bytes.
type Pair struct {
	Key   any
	Value any
}
