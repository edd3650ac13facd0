package motion

// Classifier decides whether a single frame contains motion. It owns the
// binarization buffer but not the model, which the caller constructs per
// video and feeds frames in strictly increasing order.
type Classifier struct {
	width   int
	height  int
	minArea int
	cutoff  byte
	binary  []byte
}

// NewClassifier builds a classifier for frames of the given dimensions.
// maskThreshold binarizes the model's foreground mask (only responses
// strictly above it count); minArea is the smallest component area, in
// pixels, treated as motion.
func NewClassifier(width, height, maskThreshold, minArea int) *Classifier {
	if maskThreshold < 0 {
		maskThreshold = 0
	}
	if maskThreshold > 255 {
		maskThreshold = 255
	}
	return &Classifier{
		width:   width,
		height:  height,
		minArea: minArea,
		cutoff:  byte(maskThreshold),
		binary:  make([]byte, width*height),
	}
}

// Classify feeds one frame through the model and reports whether any
// connected foreground region exceeds the minimum area. The model is mutated
// in place; call once per frame, in presentation order.
func (c *Classifier) Classify(frame []byte, model Model) (bool, error) {
	mask, err := model.Apply(frame)
	if err != nil {
		return false, err
	}

	for i, v := range mask {
		if v > c.cutoff {
			c.binary[i] = 1
		} else {
			c.binary[i] = 0
		}
	}

	for _, area := range ComponentAreas(c.binary, c.width, c.height) {
		if area > c.minArea {
			return true, nil
		}
	}
	return false, nil
}
