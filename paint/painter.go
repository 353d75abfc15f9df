package paint

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matt-g-everett/motiontx/scene"
)

// An AssetStore resolves bitmap asset references. Image returns false
// while the asset is still loading; OnLoad registers a callback fired
// once it resolves.
type AssetStore interface {
	Image(ref string) (image.Image, bool)
	OnLoad(ref string, fn func())
}

// A Painter rasterizes node snapshots onto a Surface. Each node is
// transformed translate-to-center, rotate, scale, translate-back before
// its body is drawn. Shadows and blurs are carried on the model but not
// rasterized.
type Painter struct {
	assets  AssetStore
	repaint func()
}

// NewPainter creates a Painter. assets may be nil when the scene has no
// bitmap nodes.
func NewPainter(assets AssetStore) *Painter {
	p := new(Painter)
	p.assets = assets
	return p
}

// SetRepaint registers the callback invoked when a deferred bitmap
// asset finishes loading and the current frame should be redrawn.
func (p *Painter) SetRepaint(fn func()) {
	p.repaint = fn
}

// Paint clears the surface to the background color and paints the nodes
// in list order, skipping invisible and fully transparent ones.
func (p *Painter) Paint(s *Surface, nodes []*scene.Node, background string) {
	s.Clear(background)
	for _, n := range nodes {
		if !n.Visible || n.Opacity <= 0 {
			continue
		}
		p.paintNode(s, n)
	}
}

func (p *Painter) paintNode(s *Surface, n *scene.Node) {
	switch n.Type {
	case scene.NodeGroup, scene.NodeSymbol, scene.NodeMesh:
		// Containers have no body of their own.
		return
	case scene.NodeBitmap:
		p.paintSampled(s, n, p.bitmapSource(n))
	case scene.NodeText:
		p.paintSampled(s, n, textSource(n))
	case scene.NodePolyline:
		paintPolyline(s, n)
	default:
		paintShape(s, n)
	}
}

// nodeTransform builds the node's affine transform about its center
// (plus pivot offset).
func nodeTransform(n *scene.Node) affine {
	cx, cy := n.Center()
	cx += n.PivotX
	cy += n.PivotY
	m := translation(cx, cy)
	m = compose(m, rotation(n.Rotation))
	m = compose(m, scaling(n.ScaleX, n.ScaleY))
	return compose(m, translation(-cx, -cy))
}

// screenBounds maps a local-space rectangle through m and returns the
// covering pixel rectangle clipped to the surface.
func screenBounds(s *Surface, m affine, x0, y0, x1, y1 float64) (int, int, int, int) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		px, py := m.apply(corner[0], corner[1])
		minX = math.Min(minX, px)
		minY = math.Min(minY, py)
		maxX = math.Max(maxX, px)
		maxY = math.Max(maxY, py)
	}
	left := clampInt(int(math.Floor(minX)), 0, s.width)
	top := clampInt(int(math.Floor(minY)), 0, s.height)
	right := clampInt(int(math.Ceil(maxX))+1, 0, s.width)
	bottom := clampInt(int(math.Ceil(maxY))+1, 0, s.height)
	return left, top, right, bottom
}

// paintShape rasterizes rectangles, ellipses and vector paths by
// inverse-mapping each covered pixel into node-local space.
func paintShape(s *Surface, n *scene.Node) {
	fill, alpha, ok := fillColor(n)
	if !ok {
		return
	}

	var polygon []scene.Point
	if n.Type == scene.NodeVectorPath {
		polygon = parsePath(n.Path)
		if len(polygon) < 3 {
			return
		}
	}

	m := nodeTransform(n)
	inv := m.invert()
	left, top, right, bottom := screenBounds(s, m, n.X, n.Y, n.X+n.Width, n.Y+n.Height)
	for py := top; py < bottom; py++ {
		for px := left; px < right; px++ {
			lx, ly := inv.apply(float64(px)+0.5, float64(py)+0.5)
			inside := false
			switch n.Type {
			case scene.NodeEllipse:
				inside = insideEllipse(n, lx, ly)
			case scene.NodeVectorPath:
				inside = insidePolygon(polygon, lx, ly)
			default:
				inside = insideRoundedRect(n, lx, ly)
			}
			if inside {
				blendPixel(s, px, py, fill, alpha)
			}
		}
	}
}

// paintPolyline strokes the polyline's segments, scaled about the first
// point so the end-to-end distance matches the node's line length.
func paintPolyline(s *Surface, n *scene.Node) {
	if len(n.Points) < 2 {
		return
	}
	stroke, alpha, ok := strokeColor(n)
	if !ok {
		return
	}

	points := n.Points
	if natural := n.EndpointLength(); natural > 0 && n.LineLengthValue() != natural {
		factor := n.LineLengthValue() / natural
		scaled := make([]scene.Point, len(points))
		origin := points[0]
		for i, pt := range points {
			scaled[i] = scene.Point{X: origin.X + (pt.X-origin.X)*factor, Y: origin.Y + (pt.Y-origin.Y)*factor}
		}
		points = scaled
	}

	half := math.Max(n.StrokeWidth, 1) / 2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range points {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}

	m := nodeTransform(n)
	inv := m.invert()
	left, top, right, bottom := screenBounds(s, m, minX-half, minY-half, maxX+half, maxY+half)
	for py := top; py < bottom; py++ {
		for px := left; px < right; px++ {
			lx, ly := inv.apply(float64(px)+0.5, float64(py)+0.5)
			for i := 0; i < len(points)-1; i++ {
				if segmentDistance(points[i], points[i+1], lx, ly) <= half {
					blendPixel(s, px, py, stroke, alpha)
					break
				}
			}
		}
	}
}

// paintSampled rasterizes a node whose body is a pre-rendered image the
// size of the node's bounds: text and bitmaps.
func (p *Painter) paintSampled(s *Surface, n *scene.Node, src *image.RGBA) {
	if src == nil {
		return
	}
	m := nodeTransform(n)
	inv := m.invert()
	left, top, right, bottom := screenBounds(s, m, n.X, n.Y, n.X+n.Width, n.Y+n.Height)
	bounds := src.Bounds()
	for py := top; py < bottom; py++ {
		for px := left; px < right; px++ {
			lx, ly := inv.apply(float64(px)+0.5, float64(py)+0.5)
			sx := int(lx - n.X)
			sy := int(ly - n.Y)
			if sx < bounds.Min.X || sx >= bounds.Max.X || sy < bounds.Min.Y || sy >= bounds.Max.Y {
				continue
			}
			c := src.RGBAAt(sx, sy)
			if c.A == 0 {
				continue
			}
			col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
			blendPixel(s, px, py, col, float64(c.A)/255*n.Opacity)
		}
	}
}

// bitmapSource resolves the node's asset, scaled to the node bounds.
// Unresolved assets paint nothing now and trigger a repaint once loaded.
func (p *Painter) bitmapSource(n *scene.Node) *image.RGBA {
	if p.assets == nil || n.Asset == "" || n.Width <= 0 || n.Height <= 0 {
		return nil
	}
	src, ok := p.assets.Image(n.Asset)
	if !ok {
		if p.repaint != nil {
			p.assets.OnLoad(n.Asset, p.repaint)
		}
		return nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, int(n.Width), int(n.Height)))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return scaled
}

// textSource renders the node's text with a top-aligned baseline.
func textSource(n *scene.Node) *image.RGBA {
	if n.Text == "" || n.Width <= 0 || n.Height <= 0 {
		return nil
	}
	fill, _, ok := fillColor(n)
	if !ok {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, int(n.Width), int(n.Height)))
	face := basicfont.Face7x13
	r, g, b := fill.Clamped().RGB255()
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(rgba(r, g, b, 0xff)),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(n.Text)
	return img
}

func insideRoundedRect(n *scene.Node, x, y float64) bool {
	if x < n.X || x > n.X+n.Width || y < n.Y || y > n.Y+n.Height {
		return false
	}
	radii := n.Radii()
	corners := [4][2]float64{
		{n.X + radii[0], n.Y + radii[0]},
		{n.X + n.Width - radii[1], n.Y + radii[1]},
		{n.X + n.Width - radii[2], n.Y + n.Height - radii[2]},
		{n.X + radii[3], n.Y + n.Height - radii[3]},
	}
	signs := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, r := range radii {
		if r <= 0 {
			continue
		}
		dx := (x - corners[i][0]) * signs[i][0]
		dy := (y - corners[i][1]) * signs[i][1]
		if dx > 0 && dy > 0 && dx*dx+dy*dy > r*r {
			return false
		}
	}
	return true
}

func insideEllipse(n *scene.Node, x, y float64) bool {
	rx := n.Width / 2
	ry := n.Height / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	cx, cy := n.Center()
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return dx*dx+dy*dy <= 1
}

// insidePolygon is an even-odd containment test.
func insidePolygon(polygon []scene.Point, x, y float64) bool {
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// parsePath reads a minimal absolute path grammar: M x y, L x y, Z.
func parsePath(path string) []scene.Point {
	var points []scene.Point
	fields := strings.Fields(strings.NewReplacer("M", " M ", "L", " L ", "Z", " Z ").Replace(path))
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "M", "L":
			if i+2 >= len(fields) {
				return points
			}
			x, errX := strconv.ParseFloat(fields[i+1], 64)
			y, errY := strconv.ParseFloat(fields[i+2], 64)
			if errX != nil || errY != nil {
				return points
			}
			points = append(points, scene.Point{X: x, Y: y})
			i += 2
		case "Z":
		}
	}
	return points
}

func segmentDistance(a, b scene.Point, x, y float64) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lengthSq := dx*dx + dy*dy
	t := 0.0
	if lengthSq > 0 {
		t = ((x-a.X)*dx + (y-a.Y)*dy) / lengthSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	px := a.X + t*dx
	py := a.Y + t*dy
	return math.Hypot(x-px, y-py)
}

func fillColor(n *scene.Node) (colorful.Color, float64, bool) {
	return nodeColor(n.Fill, n.FillOpacity, n.Opacity)
}

func strokeColor(n *scene.Node) (colorful.Color, float64, bool) {
	return nodeColor(n.Stroke, n.StrokeOpacity, n.Opacity)
}

func nodeColor(hex string, attrOpacity, nodeOpacity float64) (colorful.Color, float64, bool) {
	if hex == "" {
		return colorful.Color{}, 0, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, 0, false
	}
	alpha := attrOpacity * nodeOpacity
	if alpha <= 0 {
		return colorful.Color{}, 0, false
	}
	if alpha > 1 {
		alpha = 1
	}
	return c, alpha, true
}

// blendPixel source-over blends a color into the surface.
func blendPixel(s *Surface, x, y int, c colorful.Color, alpha float64) {
	dst := s.img.RGBAAt(x, y)
	r, g, b := c.Clamped().RGB255()
	out := rgba(
		blendChannel(r, dst.R, alpha),
		blendChannel(g, dst.G, alpha),
		blendChannel(b, dst.B, alpha),
		blendChannel(0xff, dst.A, alpha),
	)
	s.img.SetRGBA(x, y, out)
}

func blendChannel(src, dst uint8, alpha float64) uint8 {
	v := float64(src)*alpha + float64(dst)*(1-alpha)
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

func rgba(r, g, b, a uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
