package omf1

// pickNamesLegend chooses which of an OMF1 mapped-data attribute's string
// legends becomes the category names list: the most-unique, least-empty,
// shortest string legend wins. Ties break in that listed order (unique count
// first, then empty count, then total string length), and the first legend
// wins any remaining tie so selection is deterministic.
func pickNamesLegend(legends []StringLegend) int {
	best := -1
	var bestUnique, bestEmpty, bestLen int

	for i, l := range legends {
		unique := countUnique(l.Values)
		empty := countEmpty(l.Values)
		length := totalLen(l.Values)

		if best < 0 ||
			unique > bestUnique ||
			(unique == bestUnique && empty < bestEmpty) ||
			(unique == bestUnique && empty == bestEmpty && length < bestLen) {
			best, bestUnique, bestEmpty, bestLen = i, unique, empty, length
		}
	}

	return best
}

// pickColorLegend chooses which color legend becomes the category display
// colors, by the same most-unique/least-empty ordering (color "emptiness" is
// not meaningful, so only uniqueness is compared).
func pickColorLegend(legends []ColorLegend) int {
	best := -1
	var bestUnique int

	for i, l := range legends {
		unique := countUniqueColors(l.Values)
		if best < 0 || unique > bestUnique {
			best, bestUnique = i, unique
		}
	}

	return best
}

func countUnique(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	return len(seen)
}

func countEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if v == "" {
			n++
		}
	}

	return n
}

func totalLen(values []string) int {
	n := 0
	for _, v := range values {
		n += len(v)
	}

	return n
}

func countUniqueColors(values [][3]uint8) int {
	seen := make(map[[3]uint8]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	return len(seen)
}

// grayFill is the padding color for a category beyond a chosen color
// legend's length (: "padded with gray").
var grayFill = [3]uint8{128, 128, 128}
