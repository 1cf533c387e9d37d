package track

// PointerProvider turns terminal mouse positions into synthetic hand
// detections, so the game is playable without a camera rig. It owns no
// goroutine; the main loop feeds it mouse events.
type PointerProvider struct {
	latest   *Latest
	captureW int
	captureH int
}

// NewPointerProvider creates a pointer provider writing into the latest
// slot, translating into the given capture coordinate space
func NewPointerProvider(latest *Latest, captureW, captureH int) *PointerProvider {
	return &PointerProvider{
		latest:   latest,
		captureW: captureW,
		captureH: captureH,
	}
}

// Start satisfies Provider; the pointer needs no goroutine
func (p *PointerProvider) Start() error { return nil }

// Stop drops the synthetic hand
func (p *PointerProvider) Stop() {
	p.latest.Clear()
}

// Feed converts a canvas cell position into unmirrored capture
// coordinates and stores it as a one-hand detection. The mapper mirrors
// X on the way back, so X is pre-mirrored here; cell centers keep the
// round trip exact under integer scaling.
func (p *PointerProvider) Feed(cellX, cellY, canvasW, canvasH int) {
	if canvasW < 1 || canvasH < 1 {
		return
	}

	px := float64(p.captureW) * (1 - (float64(cellX)+0.5)/float64(canvasW))
	py := float64(p.captureH) * (float64(cellY) + 0.5) / float64(canvasH)

	p.latest.Store(Detection{Hands: []Hand{SyntheticHand(px, py)}})
}
