// Package sampling bounds the cost of classifying large assessment lists.
// Country assessment data is heavily skewed: one bucket can dominate 90%
// of entries and species cluster alphabetically, so naive prefix
// truncation would starve under-represented buckets that sort late.
// A stratified sample draws evenly across the ordered list instead.
package sampling

import "github.com/verdelabs/verde-go/internal/redlist"

const (
	// DefaultBudget caps the total sample size.
	DefaultBudget = 350
	// DefaultPartitions is the number of equal index ranges sampled.
	DefaultPartitions = 8
	// DefaultThreshold is the list size below which sampling is skipped.
	DefaultThreshold = 200
)

// Stratified samples up to budget items from the ordered assessment
// list. Lists at or below threshold are returned unchanged. Otherwise
// the list is split into partitions equal fractional index ranges and an
// equal quota is drawn from each with a fixed stride, then deduplicated
// by taxon id and truncated to budget.
func Stratified(assessments []redlist.Assessment, budget, partitions, threshold int) []redlist.Assessment {
	total := len(assessments)
	if total == 0 {
		return nil
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	if partitions <= 0 {
		partitions = DefaultPartitions
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	if total <= threshold {
		return assessments
	}

	quota := budget / partitions
	if quota < 1 {
		quota = 1
	}

	var sample []redlist.Assessment
	for p := 0; p < partitions; p++ {
		start := total * p / partitions
		end := total * (p + 1) / partitions
		rangeSize := end - start
		if rangeSize <= 0 {
			continue
		}

		// Ceiling division so the stride spans the whole range; a floor
		// stride would leave the tail of every partition unsampled.
		step := (rangeSize + quota - 1) / quota
		if step < 1 {
			step = 1
		}
		for i, count := 0, 0; i < rangeSize && count < quota; i, count = i+step, count+1 {
			sample = append(sample, assessments[start+i])
		}
	}

	seen := make(map[int]bool, len(sample))
	unique := sample[:0]
	for _, a := range sample {
		if seen[a.TaxonID] {
			continue
		}
		seen[a.TaxonID] = true
		unique = append(unique, a)
	}
	if len(unique) > budget {
		unique = unique[:budget]
	}
	return unique
}
