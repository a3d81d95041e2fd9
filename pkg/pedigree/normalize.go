package pedigree

// normalize shifts all slot coordinates so the minimum lands at the origin,
// then derives the canvas size from the post-shift maxima, the box size, the
// base spacing and the policy's icon margins.
func normalize(slots []Slot, policy Policy, dims BoxDimensions, spacingX, spacingY int) (width, height int) {
	if len(slots) == 0 {
		return 0, 0
	}

	minX, minY := slots[0].X, slots[0].Y
	for _, s := range slots[1:] {
		minX = min(minX, s.X)
		minY = min(minY, s.Y)
	}

	var maxX, maxY int
	for i := range slots {
		slots[i].X -= minX
		slots[i].Y -= minY
		maxX = max(maxX, slots[i].X)
		maxY = max(maxY, slots[i].Y)
	}

	width = maxX + spacingX + dims.Width + policy.ExtraOffsetX
	height = maxY + spacingY + dims.Height + policy.ExtraOffsetY
	return width, height
}
