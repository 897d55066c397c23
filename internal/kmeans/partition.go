package kmeans

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// partition tracks cluster membership as one bitmap of point indices per
// cluster. Emptiness of a cluster is an explicit, checkable condition
// instead of an accident of a missing map key.
type partition struct {
	sets []*roaring.Bitmap
}

func newPartition(k int) *partition {
	sets := make([]*roaring.Bitmap, k)
	for i := range sets {
		sets[i] = roaring.New()
	}
	return &partition{sets: sets}
}

func (p *partition) reset() {
	for _, s := range p.sets {
		s.Clear()
	}
}

func (p *partition) add(cluster, point int) {
	p.sets[cluster].Add(uint32(point))
}

func (p *partition) empty(cluster int) bool {
	return p.sets[cluster].IsEmpty()
}

func (p *partition) size(cluster int) int {
	return int(p.sets[cluster].GetCardinality())
}

// each calls fn for every point index in the cluster, in ascending order.
func (p *partition) each(cluster int, fn func(point int)) {
	it := p.sets[cluster].Iterator()
	for it.HasNext() {
		fn(int(it.Next()))
	}
}
