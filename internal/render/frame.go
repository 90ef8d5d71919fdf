package render

import "ripple/internal/scene"

// maxBatchVertices keeps every batch addressable with uint16 indices.
const maxBatchVertices = 65535

// ScreenVertex is a projected, shaded mesh vertex in device pixels.
type ScreenVertex struct {
	X, Y       float32
	R, G, B, A float32
}

// Batch is a self-contained run of mesh rows.
type Batch struct {
	Vertices []ScreenVertex
	Indices  []uint16
}

// FrameBuilder turns the reconstructed surface into screen-space triangle
// batches. Buffers are reused between frames.
type FrameBuilder struct {
	// FalseColour replaces lighting with the height palette.
	FalseColour bool

	palette   *HeightPalette
	projected []ScreenVertex
	visible   []bool
	batches   []Batch
}

// NewFrameBuilder returns a builder using palette for the false-colour view.
func NewFrameBuilder(palette *HeightPalette) *FrameBuilder {
	if palette == nil {
		palette = NewHeightPalette(DefaultHeightRange)
	}
	return &FrameBuilder{palette: palette}
}

// RowsPerBatch returns how many quad rows of an n-wide mesh fit one batch.
func RowsPerBatch(n int) int {
	if n < 2 {
		return 1
	}
	rows := maxBatchVertices/n - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Build projects and shades every vertex and splits the mesh into batches.
// The returned slices are valid until the next call.
func (b *FrameBuilder) Build(sc *scene.Scene) []Batch {
	mesh := sc.Mesh
	verts := mesh.Vertices()
	n := mesh.Resolution()
	if cap(b.projected) < len(verts) {
		b.projected = make([]ScreenVertex, len(verts))
		b.visible = make([]bool, len(verts))
	}
	b.projected = b.projected[:len(verts)]
	b.visible = b.visible[:len(verts)]

	viewport := sc.Viewport()
	eye := sc.Camera.Eye
	for i, v := range verts {
		ndcX, ndcY, _, ok := sc.Camera.Project(v.Pos)
		b.visible[i] = ok
		if !ok {
			continue
		}
		px, py := scene.Pixel(ndcX, ndcY, viewport)
		sv := ScreenVertex{X: float32(px), Y: float32(py), A: 1}
		if b.FalseColour {
			col := b.palette.At(v.Height)
			sv.R, sv.G, sv.B = float32(col.R)/255, float32(col.G)/255, float32(col.B)/255
		} else {
			c := sc.Lighting.Shade(v.Pos, v.Normal, eye)
			sv.R, sv.G, sv.B = float32(c.X()), float32(c.Y()), float32(c.Z())
		}
		b.projected[i] = sv
	}

	rows := RowsPerBatch(n)
	b.batches = b.batches[:0]
	for j0 := 0; j0 < n-1; j0 += rows {
		j1 := min(j0+rows, n-1)
		b.batches = append(b.batches, b.band(n, j0, j1))
	}
	return b.batches
}

// band copies vertex rows j0..j1 and indexes quad rows [j0, j1).
func (b *FrameBuilder) band(n, j0, j1 int) Batch {
	var batch Batch
	if k := len(b.batches); k < cap(b.batches) {
		batch = b.batches[:k+1][k]
		batch.Vertices = batch.Vertices[:0]
		batch.Indices = batch.Indices[:0]
	}
	base := j0 * n
	batch.Vertices = append(batch.Vertices, b.projected[base:(j1+1)*n]...)
	for j := j0; j < j1; j++ {
		for i := 0; i < n-1; i++ {
			a := j*n + i
			c := a + n
			if !b.visible[a] || !b.visible[a+1] || !b.visible[c] || !b.visible[c+1] {
				continue
			}
			la, lb, lc, ld := uint16(a-base), uint16(a+1-base), uint16(c-base), uint16(c+1-base)
			batch.Indices = append(batch.Indices, la, lb, ld, la, ld, lc)
		}
	}
	return batch
}
