package logic

import (
	"sort"
	"strings"
	"time"

	"GogDB/app/dal/catalog"
	"GogDB/app/dal/indexdb"
)

// summaryAggregator collects, for one product, the categories changed at each exact
// timestamp. Build a new one per product.
type summaryAggregator struct {
	byTimestamp map[int64]*timestampCategories
}

type timestampCategories struct {
	at         time.Time
	categories map[string]struct{}
}

func newSummaryAggregator() *summaryAggregator {
	return &summaryAggregator{byTimestamp: make(map[int64]*timestampCategories)}
}

func (a *summaryAggregator) Add(rec *catalog.ChangeRecord) {
	key := rec.Timestamp.UnixNano()
	entry, ok := a.byTimestamp[key]
	if !ok {
		entry = &timestampCategories{at: rec.Timestamp, categories: make(map[string]struct{})}
		a.byTimestamp[key] = entry
	}
	entry.categories[rec.Category] = struct{}{}
}

func (a *summaryAggregator) Len() int {
	return len(a.byTimestamp)
}

// Rows returns one summary row per timestamp, oldest first, with the categories
// sorted and comma-joined.
func (a *summaryAggregator) Rows(prod *catalog.Product) []indexdb.ChangelogSummary {
	keys := make([]int64, 0, len(a.byTimestamp))
	for key := range a.byTimestamp {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	rows := make([]indexdb.ChangelogSummary, 0, len(keys))
	for _, key := range keys {
		entry := a.byTimestamp[key]
		categories := make([]string, 0, len(entry.categories))
		for category := range entry.categories {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		rows = append(rows, indexdb.ChangelogSummary{
			ProductId:    prod.Id,
			ProductTitle: prod.Title,
			Timestamp:    unixSeconds(entry.at),
			Categories:   strings.Join(categories, ","),
		})
	}
	return rows
}
