package keyboard

import (
	"testing"
)

// TestBuildWhiteKeyColumns verifies white key j spans x in
// [j*W/n, (j+1)*W/n) across the full canvas width.
func TestBuildWhiteKeyColumns(t *testing.T) {
	const width, height, count = 640, 480, 8
	l := Build(width, height, count)

	if l.Count() != count {
		t.Fatalf("Expected %d keys, got %d", count, l.Count())
	}

	for j, k := range l.Keys {
		wantX0 := j * width / count
		wantX1 := (j + 1) * width / count
		if k.Rect.X != wantX0 || k.Rect.X+k.Rect.W != wantX1 {
			t.Errorf("Key %d: expected span [%d,%d), got [%d,%d)",
				j, wantX0, wantX1, k.Rect.X, k.Rect.X+k.Rect.W)
		}
		if k.Rect.Y != 0 {
			t.Errorf("Key %d: expected top of canvas, got y=%d", j, k.Rect.Y)
		}
		if k.Rect.H != height/3 {
			t.Errorf("Key %d: expected height %d (top third), got %d", j, height/3, k.Rect.H)
		}
	}

	// Adjacent keys tile without gaps or overlap
	for j := 1; j < count; j++ {
		prev := l.Keys[j-1].Rect
		cur := l.Keys[j].Rect
		if prev.X+prev.W != cur.X {
			t.Errorf("Keys %d and %d do not tile: %d vs %d", j-1, j, prev.X+prev.W, cur.X)
		}
	}
}

// TestBuildBlackKeyGaps verifies black keys exist at boundaries
// 1,3,4,5,7 and are skipped at the diatonic gaps 2 and 6.
func TestBuildBlackKeyGaps(t *testing.T) {
	const width, height, count = 640, 480, 8
	l := Build(width, height, count)

	if len(l.BlackKeys) != 5 {
		t.Fatalf("Expected 5 black keys for 8-key layout, got %d", len(l.BlackKeys))
	}

	wantBoundaries := []int{1, 3, 4, 5, 7}
	for i, bk := range l.BlackKeys {
		b := wantBoundaries[i]
		wantCenter := b * width / count
		gotCenter := bk.Rect.X + bk.Rect.W/2
		if gotCenter != wantCenter {
			t.Errorf("Black key %d: expected center %d at boundary %d, got %d",
				i, wantCenter, b, gotCenter)
		}
	}
}

// TestBuildUnevenWidth verifies integer division boundaries still tile
// when the width is not a multiple of the key count.
func TestBuildUnevenWidth(t *testing.T) {
	const width, height, count = 101, 30, 8
	l := Build(width, height, count)

	total := 0
	for _, k := range l.Keys {
		total += k.Rect.W
	}
	if total != width {
		t.Errorf("Expected key widths to sum to %d, got %d", width, total)
	}
}

// TestKeyNotes verifies the D-to-D run the boundary gaps imply:
// D E F G A B C D with MIDI numbers 62..74.
func TestKeyNotes(t *testing.T) {
	l := Build(640, 480, 8)

	wantMIDI := []int{62, 64, 65, 67, 69, 71, 72, 74}
	wantName := []string{"D4", "E4", "F4", "G4", "A4", "B4", "C5", "D5"}
	for j, k := range l.Keys {
		if k.Note.MIDI != wantMIDI[j] {
			t.Errorf("Key %d: expected MIDI %d, got %d", j, wantMIDI[j], k.Note.MIDI)
		}
		if k.Note.Name != wantName[j] {
			t.Errorf("Key %d: expected name %s, got %s", j, wantName[j], k.Note.Name)
		}
	}
}

// TestNoteFrequency verifies equal temperament anchoring at A4 = 440 Hz.
func TestNoteFrequency(t *testing.T) {
	a4 := NoteForMIDI(69)
	if f := a4.Frequency(); f < 439.99 || f > 440.01 {
		t.Errorf("Expected A4 at 440 Hz, got %v", f)
	}

	// One octave up doubles the frequency
	a5 := NoteForMIDI(81)
	if f := a5.Frequency(); f < 879.99 || f > 880.01 {
		t.Errorf("Expected A5 at 880 Hz, got %v", f)
	}

	d4 := NoteForMIDI(62)
	if f := d4.Frequency(); f < 293.0 || f > 294.5 {
		t.Errorf("Expected D4 near 293.66 Hz, got %v", f)
	}
}

// TestKeyAt verifies fingertip hit testing against white rectangles only.
func TestKeyAt(t *testing.T) {
	l := Build(80, 30, 8)

	// Inside key 0
	if j, ok := l.KeyAt(0, 0); !ok || j != 0 {
		t.Errorf("Expected key 0 at origin, got %d ok=%v", j, ok)
	}

	// Inside key 3 (x in [30,40))
	if j, ok := l.KeyAt(35, 5); !ok || j != 3 {
		t.Errorf("Expected key 3 at x=35, got %d ok=%v", j, ok)
	}

	// Last column of the last key
	if j, ok := l.KeyAt(79, 9); !ok || j != 7 {
		t.Errorf("Expected key 7 at x=79, got %d ok=%v", j, ok)
	}

	// Below the keyboard
	if _, ok := l.KeyAt(35, 10); ok {
		t.Error("Expected no key below the keyboard rows")
	}

	// Off the right edge
	if _, ok := l.KeyAt(80, 0); ok {
		t.Error("Expected no key past the right edge")
	}
}

// TestKeyOutOfRangePanics verifies out-of-range access is treated as a
// programming error, not a recoverable condition.
func TestKeyOutOfRangePanics(t *testing.T) {
	l := Build(80, 30, 8)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-range key index")
		}
	}()
	_ = l.Key(8)
}

// TestBuildSmallCanvas verifies degenerate sizes still produce usable
// rectangles instead of zero-height keys.
func TestBuildSmallCanvas(t *testing.T) {
	l := Build(8, 2, 8)
	for j, k := range l.Keys {
		if k.Rect.H < 1 {
			t.Errorf("Key %d: expected at least 1 row, got %d", j, k.Rect.H)
		}
		if k.Rect.W < 1 {
			t.Errorf("Key %d: expected at least 1 column, got %d", j, k.Rect.W)
		}
	}
}
