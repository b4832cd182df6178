package shape

import "filmstrip/geom"

// StyleIndex is a 1-based style-table reference; 0 means "no style"
// (spec.md §4.1).
type StyleIndex uint16

// StyleChangeRecord may update the pen position, any of the three active
// style slots, and/or append new fill/stroke styles to the style table.
// new_styles is processed before the index fields in the same record, so
// a StyleChangeRecord's LeftFill/RightFill/LineStyle may reference an
// index that only exists because of this record's own NewFillStyles /
// NewLineStyles (spec.md §4.1).
type StyleChangeRecord struct {
	MoveTo *geom.Point

	LeftFill  *StyleIndex
	RightFill *StyleIndex
	LineStyle *StyleIndex

	NewFillStyles []FillStyle
	NewLineStyles []LineStyle
}

// EdgeRecord is a pen-relative delta, optionally through a control point
// delta (absent means a straight segment).
type EdgeRecord struct {
	Delta        geom.Point
	ControlDelta *geom.Point
}

// Record is one element of a DefineShape's record stream: either a
// StyleChangeRecord or an EdgeRecord.
type Record interface {
	isShapeRecord()
}

func (StyleChangeRecord) isShapeRecord() {}
func (EdgeRecord) isShapeRecord()        {}

// DefineShape is the parsed input to Normalize: an initial style table plus
// the ordered record stream (spec.md §4.1).
type DefineShape struct {
	Center geom.Point

	InitialFillStyles []FillStyle
	InitialLineStyles []LineStyle

	Records []Record
}
