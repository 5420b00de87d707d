package engine

import "kb-analytics-service/internal/analytics/core/domain"

// Aggregate counts events per bucket key and aligns the counts with buckets.
func Aggregate(buckets []domain.Bucket, key KeyFunc, events []domain.Event) []int {
	counts := make(map[string]int, len(buckets))
	for _, e := range events {
		counts[key(e.Timestamp)]++
	}

	out := make([]int, len(buckets))
	for i, b := range buckets {
		out[i] = counts[b.Key]
	}
	return out
}

// AggregateCategories runs Aggregate for each of cats over the classified
// sublists, preserving the order of cats.
func AggregateCategories(c Classified, cats []domain.Category, buckets []domain.Bucket, key KeyFunc) [][]int {
	out := make([][]int, len(cats))
	for i, cat := range cats {
		out[i] = Aggregate(buckets, key, c.ByCategory[cat])
	}
	return out
}
