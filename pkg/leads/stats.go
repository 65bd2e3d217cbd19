package leads

import (
	"context"
	"net/url"
	"sort"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

var pipelineOrder = func() map[domain.Status]int {
	m := make(map[domain.Status]int, len(domain.Statuses))
	for i, st := range domain.Statuses {
		m[st] = i
	}
	return m
}()

// Stats groups the leads caller may see by status, with the lead count and
// summed lead_value of each. Statuses without leads are left out, so an
// absent status means zero. The optional filters of List apply here too.
func (s *Service) Stats(ctx context.Context, caller domain.Caller, params url.Values) ([]domain.StatusStat, error) {
	cond, err := condition(caller, params)
	if err != nil {
		return nil, err
	}

	key := cacheKey("stats", caller, params)
	var cached []domain.StatusStat
	if s.lookup(ctx, "stats", key, &cached) {
		return cached, nil
	}

	rows, err := s.store.AggregateByStatus(ctx, cond)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.StatusStat, 0, len(rows))
	for _, r := range rows {
		if r.Count > 0 {
			stats = append(stats, r)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return rank(stats[i].Status) < rank(stats[j].Status)
	})

	s.remember(ctx, key, stats)
	return stats, nil
}

func rank(st domain.Status) int {
	if i, ok := pipelineOrder[st]; ok {
		return i
	}
	return len(pipelineOrder)
}
