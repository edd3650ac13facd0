package motion

// ComponentAreas labels the 8-connected foreground components of a binary
// mask and returns their pixel areas. mask holds one byte per pixel in row
// order; any non-zero byte is foreground. The mask is left untouched.
func ComponentAreas(mask []byte, width, height int) []int {
	if width <= 0 || height <= 0 || len(mask) < width*height {
		return nil
	}

	visited := make([]bool, width*height)
	var areas []int
	var stack []int

	for start, v := range mask[:width*height] {
		if v == 0 || visited[start] {
			continue
		}

		area := 0
		stack = append(stack[:0], start)
		visited[start] = true
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++

			x := idx % width
			y := idx / width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					n := ny*width + nx
					if mask[n] != 0 && !visited[n] {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
		areas = append(areas, area)
	}
	return areas
}
