package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PortNumber extracts the physical port number from a port id. Plain ids
// parse directly ("49" -> 49); breakout child ids resolve to their parent
// number ("49-2" -> 49).
func PortNumber(portID string) (int, error) {
	base, child, isChild := strings.Cut(portID, "-")

	n, err := strconv.Atoi(base)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid port id %q", portID)
	}

	if isChild {
		idx, err := strconv.Atoi(child)
		if err != nil || idx <= 0 {
			return 0, fmt.Errorf("invalid breakout child id %q", portID)
		}
	}

	return n, nil
}

// ChildIndex returns the breakout child index of a port id, or false for
// plain port ids
func ChildIndex(portID string) (int, bool) {
	_, child, isChild := strings.Cut(portID, "-")
	if !isChild {
		return 0, false
	}
	idx, err := strconv.Atoi(child)
	if err != nil || idx <= 0 {
		return 0, false
	}
	return idx, true
}

// BreakoutChildID builds the canonical child id for a parent port
func BreakoutChildID(parentID string, index int) string {
	return fmt.Sprintf("%s-%d", parentID, index)
}

// SortPortIDs orders ids numerically, with breakout children following
// their parent in child-index order
func SortPortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		ni, erri := PortNumber(ids[i])
		nj, errj := PortNumber(ids[j])
		if erri != nil || errj != nil {
			return ids[i] < ids[j]
		}
		if ni != nj {
			return ni < nj
		}
		ci, iOk := ChildIndex(ids[i])
		cj, jOk := ChildIndex(ids[j])
		if iOk != jOk {
			return !iOk // parent before children
		}
		return ci < cj
	})
}

// Dedupe returns a sorted copy of items with duplicates removed
func Dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// Contains checks if a string slice contains a specific string
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
