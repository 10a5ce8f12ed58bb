package radio

import "github.com/paulmach/orb"

// Noise is the label assigned to points that belong to no cluster.
const Noise = -1

// Cluster runs density-based spatial clustering (DBSCAN) over a set of
// points and returns one label per point, in input order: a cluster id
// starting at 0, or Noise.
//
// A point is a core point when at least minSamples points (itself
// included) lie within eps of it; clusters grow transitively from core
// points, and non-core points inside a core point's neighborhood join that
// cluster as border points. Distances are Euclidean in raw coordinate
// space, so for lat/lon input eps is in degrees; callers pick eps for the
// latitude band they operate in.
//
// Labels are deterministic: clusters are numbered in order of the first
// core point discovered scanning the input left to right.
func Cluster(points []orb.Point, eps float64, minSamples int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = Noise
	}
	if len(points) == 0 || eps <= 0 || minSamples <= 0 {
		return labels
	}

	epsSq := eps * eps
	visited := make([]bool, len(points))
	nextLabel := 0

	for i := range points {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(points, i, epsSq)
		if len(neighbors) < minSamples {
			continue // stays noise unless later claimed as a border point
		}

		label := nextLabel
		nextLabel++
		labels[i] = label

		// Expand the cluster breadth-first. The queue may revisit
		// indices; visited/label checks keep the work linear in edges.
		queue := neighbors
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == Noise {
				labels[j] = label
			}
			if visited[j] {
				continue
			}
			visited[j] = true

			jNeighbors := regionQuery(points, j, epsSq)
			if len(jNeighbors) >= minSamples {
				queue = append(queue, jNeighbors...)
			}
		}
	}
	return labels
}

// regionQuery returns the indexes of all points within sqrt(epsSq) of
// points[i], including i itself.
func regionQuery(points []orb.Point, i int, epsSq float64) []int {
	var out []int
	p := points[i]
	for j, q := range points {
		dx := p[0] - q[0]
		dy := p[1] - q[1]
		if dx*dx+dy*dy <= epsSq {
			out = append(out, j)
		}
	}
	return out
}

// LargestCluster returns the label of the biggest non-noise cluster and
// its size. Ties resolve to the lowest label; (Noise, 0) when every point
// is noise.
func LargestCluster(labels []int) (label, size int) {
	counts := make(map[int]int)
	maxLabel := -1
	for _, l := range labels {
		if l == Noise {
			continue
		}
		counts[l]++
		if l > maxLabel {
			maxLabel = l
		}
	}
	label, size = Noise, 0
	for l := 0; l <= maxLabel; l++ {
		if counts[l] > size {
			label, size = l, counts[l]
		}
	}
	return label, size
}
