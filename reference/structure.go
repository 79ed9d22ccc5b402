package reference

import "sort"

// Site is a single reference position at which the cohort exhibits
// allelic variation.
type Site struct {
	Position uint64
}

// Structure is the ordered sequence of reference sites backing a cohort.
// It is immutable after construction and safe for concurrent read-only
// use by any number of forward.Engine instances.
type Structure struct {
	sites []Site
}

// New builds a Structure from strictly increasing physical positions. It
// returns ErrUnsortedPositions if positions are not strictly increasing.
func New(positions []uint64) (*Structure, error) {
	sites := make([]Site, len(positions))
	for i, pos := range positions {
		if i > 0 && pos <= positions[i-1] {
			return nil, ErrUnsortedPositions
		}
		sites[i] = Site{Position: pos}
	}
	return &Structure{sites: sites}, nil
}

// NumSites returns the number of reference sites.
func (s *Structure) NumSites() int {
	return len(s.sites)
}

// SiteAt returns the site at index i.
func (s *Structure) SiteAt(i int) (Site, error) {
	if i < 0 || i >= len(s.sites) {
		return Site{}, ErrOutOfRange
	}
	return s.sites[i], nil
}

// PositionOf returns the physical position of site i.
func (s *Structure) PositionOf(i int) (uint64, error) {
	site, err := s.SiteAt(i)
	if err != nil {
		return 0, err
	}
	return site.Position, nil
}

// FindSiteAbove returns the index of the smallest site whose position is
// >= pos. If every site's position is below pos, it returns NumSites().
func (s *Structure) FindSiteAbove(pos uint64) int {
	return sort.Search(len(s.sites), func(i int) bool {
		return s.sites[i].Position >= pos
	})
}

// FindSiteBelow returns the index of the largest site whose position is
// <= pos. If every site's position exceeds pos, it returns -1.
func (s *Structure) FindSiteBelow(pos uint64) int {
	i := sort.Search(len(s.sites), func(i int) bool {
		return s.sites[i].Position > pos
	})
	return i - 1
}

// IsSite reports whether pos names an exact reference site position.
func (s *Structure) IsSite(pos uint64) bool {
	i := s.FindSiteAbove(pos)
	return i < len(s.sites) && s.sites[i].Position == pos
}
