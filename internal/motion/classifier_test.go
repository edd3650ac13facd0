package motion_test

import (
	"testing"

	"winnow/internal/motion"
)

// staticModel returns a fixed mask regardless of input, letting classifier
// tests pin the binarization and area logic without model statistics.
type staticModel struct {
	mask []byte
}

func (m *staticModel) Apply(frame []byte) ([]byte, error) {
	return m.mask, nil
}

func regionMask(width, height, x0, y0, x1, y1 int, value byte) []byte {
	mask := make([]byte, width*height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask[y*width+x] = value
		}
	}
	return mask
}

func TestClassifyLargeRegionIsMotion(t *testing.T) {
	const w, h = 40, 40
	// 30x30 region = 900 px, above the 500 px minimum.
	model := &staticModel{mask: regionMask(w, h, 0, 0, 30, 30, 255)}
	classifier := motion.NewClassifier(w, h, 244, 500)

	got, err := classifier.Classify(make([]byte, w*h), model)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("expected motion for 900 px region")
	}
}

func TestClassifySmallRegionIsNotMotion(t *testing.T) {
	const w, h = 40, 40
	// 10x10 region = 100 px, below the minimum.
	model := &staticModel{mask: regionMask(w, h, 5, 5, 15, 15, 255)}
	classifier := motion.NewClassifier(w, h, 244, 500)

	got, err := classifier.Classify(make([]byte, w*h), model)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("expected no motion for 100 px region")
	}
}

func TestClassifyAreaThresholdIsStrict(t *testing.T) {
	const w, h = 40, 40
	// Exactly minArea pixels must not count; the area must exceed it.
	model := &staticModel{mask: regionMask(w, h, 0, 0, 10, 5, 255)}
	classifier := motion.NewClassifier(w, h, 244, 50)

	got, err := classifier.Classify(make([]byte, w*h), model)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("region of exactly minArea pixels should not count as motion")
	}
}

func TestClassifyWeakResponsesFiltered(t *testing.T) {
	const w, h = 40, 40
	// Strong area but below the mask binarization threshold.
	model := &staticModel{mask: regionMask(w, h, 0, 0, 30, 30, 200)}
	classifier := motion.NewClassifier(w, h, 244, 500)

	got, err := classifier.Classify(make([]byte, w*h), model)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("mask values at or below the threshold should be ignored")
	}
}

func TestAdaptiveModelDetectsStep(t *testing.T) {
	const w, h = 32, 32
	model := motion.NewAdaptiveModel(w, h, 0.05)
	classifier := motion.NewClassifier(w, h, 244, 100)

	static := make([]byte, w*h)
	for i := range static {
		static[i] = 80
	}

	// Warm the model on a static scene; nothing should classify as motion.
	for i := 0; i < 40; i++ {
		got, err := classifier.Classify(static, model)
		if err != nil {
			t.Fatal(err)
		}
		if got {
			t.Fatalf("static frame %d flagged as motion", i)
		}
	}

	// A bright object covering a quarter of the frame appears.
	object := make([]byte, w*h)
	copy(object, static)
	for y := 0; y < h/2; y++ {
		for x := 0; x < w/2; x++ {
			object[y*w+x] = 250
		}
	}
	got, err := classifier.Classify(object, model)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("expected step change to classify as motion")
	}
}

func TestAdaptiveModelAbsorbsSlowChange(t *testing.T) {
	const w, h = 16, 16
	model := motion.NewAdaptiveModel(w, h, 0.1)
	classifier := motion.NewClassifier(w, h, 244, 10)

	frame := make([]byte, w*h)
	level := byte(60)
	for i := range frame {
		frame[i] = level
	}
	for i := 0; i < 40; i++ {
		if _, err := classifier.Classify(frame, model); err != nil {
			t.Fatal(err)
		}
	}

	// Brighten one level per frame; the model should track it.
	for step := 0; step < 60; step++ {
		level++
		for i := range frame {
			frame[i] = level
		}
		got, err := classifier.Classify(frame, model)
		if err != nil {
			t.Fatal(err)
		}
		if got {
			t.Fatalf("gradual brightening flagged as motion at step %d", step)
		}
	}
}

func TestAdaptiveModelRejectsWrongFrameSize(t *testing.T) {
	model := motion.NewAdaptiveModel(8, 8, 0.05)
	if _, err := model.Apply(make([]byte, 10)); err == nil {
		t.Fatal("expected error for mismatched frame size")
	}
}
