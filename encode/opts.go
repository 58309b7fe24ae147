package encode

type EncodeOption func(*EncState)

// Indent sets the spaces per nesting level (default 2).
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Depth sets the starting nesting depth, for embedding encoded output
// inside already-indented text.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// Flow renders the whole value in flow style on one line.
func Flow(v bool) EncodeOption {
	return func(es *EncState) { es.flow = v }
}

// EncodeColors enables ANSI colored output.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
