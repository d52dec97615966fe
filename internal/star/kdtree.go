// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package star

import (
	"sort"
)

// A star with its position in plot space
type Entry struct {
	X    float64
	Y    float64
	Star Star
}

// Returns the squared euclidian distance between the entry and the given point
func (e Entry) DistSquared(x, y float64) float64 {
	dx, dy := e.X-x, e.Y-y
	return dx*dx + dy*dy
}

// A kd-Tree with k=2 dimensions over plotted stars.
// Inspired by https://en.wikipedia.org/wiki/K-d_tree
// Pointerless, the tree structure is implied by the sort order of the slice.
type KDTree []Entry

// Builds a tree from a copy of the given entries
func NewKDTree(entries []Entry) KDTree {
	kdt := make(KDTree, len(entries))
	copy(kdt, entries)
	kdt.Make()
	return kdt
}

// Builds a pointerless k-dimensional tree with k=2 from the points by resorting the array.
// Function for even depths which pivots on the X dimension.
func (points KDTree) Make() {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].X < points[j].X
	})

	l := len(points)
	if l > 1 { // descend left
		points[:l/2].makeY()
		if l > 2 { // descend right
			points[l/2+1:].makeY()
		}
	}
}

// Helper function for odd depths which pivots on the Y dimension.
func (points KDTree) makeY() {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Y < points[j].Y
	})

	l := len(points)
	if l > 1 { // descend left
		points[:l/2].Make()
		if l > 2 { // descend right
			points[l/2+1:].Make()
		}
	}
}

// Performs a nearest neighbor search. Returns false if the tree is empty
func (kdt KDTree) NearestNeighbor(x, y float64) (closest Entry, closestDsq float64, ok bool) {
	if len(kdt) == 0 {
		return Entry{}, 0, false
	}
	closest, closestDsq = kdt.nearest(x, y, 0)
	return closest, closestDsq, true
}

func (kdt KDTree) nearest(x, y float64, depth int) (closest Entry, closestDsq float64) {
	l := len(kdt)
	midpoint := kdt[l/2]
	closest, closestDsq = midpoint, midpoint.DistSquared(x, y)

	distToPlane := x - midpoint.X
	if depth&1 != 0 {
		distToPlane = y - midpoint.Y
	}
	near, far := kdt[:l/2], kdt[l/2+1:]
	if distToPlane > 0 {
		near, far = far, near
	}

	if len(near) > 0 {
		e, dsq := near.nearest(x, y, depth+1)
		if dsq < closestDsq {
			closest, closestDsq = e, dsq
		}
	}
	if len(far) > 0 && distToPlane*distToPlane <= closestDsq {
		e, dsq := far.nearest(x, y, depth+1)
		if dsq < closestDsq {
			closest, closestDsq = e, dsq
		}
	}
	return closest, closestDsq
}
