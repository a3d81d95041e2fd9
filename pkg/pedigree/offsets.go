package pedigree

import "math"

// computeOffsets assigns raw pixel offsets to every slot, last generation
// first, root last. Coordinates may be negative here; normalize shifts them
// afterwards.
//
// The loop keeps a running generation counter the way the flat Sosa array
// implies it: curgen starts at 1 on the last generation and advances every
// time the index drops below treesize / 2^curgen, reaching `generations` at
// the root. Band sizes double with curgen, mirroring the binary fan-out, so
// each box sits centered in its generation band.
func computeOffsets(slots []Slot, generations int, mode Orientation, dims BoxDimensions, spacingX, spacingY int, rootHasSpouseFamily bool) {
	treesize := len(slots)
	curgen := 1

	for i := treesize - 1; i >= 0; i-- {
		if i < treesize/pow2(curgen) {
			curgen++
		}

		boxpos := float64(i) - math.Pow(2, float64(generations-curgen))

		var genoffset, boxspacing float64
		if mode.vertical() {
			genoffset = math.Pow(2, float64(curgen-int(mode)))
			boxspacing = float64(dims.Height + spacingY)
		} else {
			genoffset = math.Pow(2, float64(curgen-1))
			boxspacing = float64(dims.Width + spacingY)
		}

		yoffset := boxpos*boxspacing*genoffset + 0.5*boxspacing*genoffset + boxspacing*genoffset

		var xoffset float64
		switch mode {
		case Portrait:
			xoffset = float64(generations-curgen) * float64(dims.Width+spacingX) / 1.8
			if i == 0 && rootHasSpouseFamily {
				xoffset -= float64(dims.ArrowWidth)
			}
			yoffset = compactPortrait(yoffset, i, curgen, generations, boxspacing)

		case Landscape:
			xoffset = float64(generations-curgen) * float64(dims.Width+spacingX)
			if curgen == generations {
				xoffset += 10
			}

		case OldestAtTop:
			xoffset = yoffset
			yoffset = float64(curgen) * float64(dims.Height+4*spacingY)

		case OldestAtBottom:
			xoffset = yoffset
			yoffset = float64(generations-curgen) * float64(dims.Height+2*spacingY)
			if i == 0 && rootHasSpouseFamily {
				yoffset += float64(dims.ArrowHeight)
			}
		}

		slots[i].X = int(xoffset)
		slots[i].Y = int(yoffset)
	}
}

// compactPortrait tightens the vertical spacing of the portrait layout,
// where boxes of neighbouring generations overlap diagonally.
//
// Each box is nudged by half its generation band, sign chosen by index
// parity, and the same nudge is repeated for every ancestor position of the
// box in the implicit binary tree (parent = (i−1)/2), sign toggling with the
// parent's parity. Past generation 3 the nudges compound, so a cumulative
// drift term of sum(2^j − 1) is folded in, once per walked parent and once
// for the box's own generation. The formula is preserved verbatim from the
// reference layout; do not "fix" the constants.
func compactPortrait(yoffset float64, i, curgen, generations int, boxspacing float64) float64 {
	half := boxspacing / 2

	if i%2 == 0 {
		yoffset -= half * math.Pow(2, float64(curgen-1))
	} else {
		yoffset += half * math.Pow(2, float64(curgen-1))
	}

	pgen := curgen
	for parent := ParentIndex(i); parent > 0; parent = ParentIndex(parent) {
		pgen++
		if parent%2 == 0 {
			yoffset -= half * math.Pow(2, float64(pgen-1))
		} else {
			yoffset += half * math.Pow(2, float64(pgen-1))
		}
		if pgen > 3 {
			if parent%2 == 0 {
				yoffset -= half * driftSum(pgen)
			} else {
				yoffset += half * driftSum(pgen)
			}
		}
	}

	if curgen > 3 {
		if i%2 == 0 {
			yoffset -= half * driftSum(curgen)
		} else {
			yoffset += half * driftSum(curgen)
		}
	}

	// Recenter the compacted tree on the canvas.
	return yoffset + half*(math.Pow(2, float64(generations-2))-1)
}

// driftSum returns sum over j in [1, gen−3] of 2^j − 1.
func driftSum(gen int) float64 {
	var sum float64
	for j := 1; j <= gen-3; j++ {
		sum += math.Pow(2, float64(j)) - 1
	}
	return sum
}

func pow2(n int) int { return 1 << n }
