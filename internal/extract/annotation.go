package extract

// Vertex is a single corner of a recognized token's bounding polygon,
// in pixel coordinates.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is the axis-aligned rectangle enclosing a token.
type BoundingBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// BoxFromVertices derives an axis-aligned bounding box from a 4-vertex
// quadrilateral. Providers do not guarantee vertex order, so min/max over
// all corners is taken. An empty slice yields the zero box.
func BoxFromVertices(vs []Vertex) BoundingBox {
	if len(vs) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{MinX: vs[0].X, MinY: vs[0].Y, MaxX: vs[0].X, MaxY: vs[0].Y}
	for _, v := range vs[1:] {
		if v.X < b.MinX {
			b.MinX = v.X
		}
		if v.X > b.MaxX {
			b.MaxX = v.X
		}
		if v.Y < b.MinY {
			b.MinY = v.Y
		}
		if v.Y > b.MaxY {
			b.MaxY = v.Y
		}
	}
	return b
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal center of the box.
func (b BoundingBox) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the vertical center of the box.
func (b BoundingBox) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Token is one OCR-recognized text unit with its bounding geometry.
// Tokens are owned by the caller; the engine only reads them.
type Token struct {
	Text string
	Box  BoundingBox
}

// AnnotationSet is the complete OCR result for one scanned page: the
// provider's full-text transcription plus the individual word tokens.
// Token order is not required to be reading order.
type AnnotationSet struct {
	FullText string
	Tokens   []Token
}
