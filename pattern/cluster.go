package pattern

import "github.com/fwojciec/diffpattern"

// ClusterExact groups units whose canonical forms are byte-identical. The
// first unit of each cluster is the earliest one in units; later units join
// the cluster of their canonical form. Units without a peer end up alone.
func ClusterExact(units []diffpattern.ChangeUnit) [][]diffpattern.ChangeUnit {
	var clusters [][]diffpattern.ChangeUnit
	buckets := make(map[string][]int)

	for _, u := range units {
		key := u.Fingerprint
		if key == "" {
			key = Fingerprint(u.CanonicalForm)
		}

		idx := -1
		for _, ci := range buckets[key] {
			if clusters[ci][0].CanonicalForm == u.CanonicalForm {
				idx = ci
				break
			}
		}
		if idx < 0 {
			clusters = append(clusters, []diffpattern.ChangeUnit{u})
			buckets[key] = append(buckets[key], len(clusters)-1)
			continue
		}
		clusters[idx] = append(clusters[idx], u)
	}

	return clusters
}
