package dataview

import (
	"time"

	"vyapari/internal/core"
)

const (
	// Uncategorized buckets records with a blank category label.
	Uncategorized = "Uncategorized"
	// NoCategory is the top-category sentinel for an empty store.
	NoCategory = "None"
)

type (
	// Summary holds the stat cards of the expense screen. They are
	// computed over the entire record store, not the filtered view:
	// the cards describe the business, the table describes the search.
	Summary struct {
		TotalToday  core.Money
		TotalMonth  core.Money
		PerCategory []CategoryTotal
		TopCategory string
	}

	CategoryTotal struct {
		Category string
		Total    core.Money
	}
)

// Summarize aggregates the whole store. TotalMonth is the sum over all
// records: the card is labeled "month" but the upstream dashboard never
// date-scoped it, and that behavior is kept deliberately. Categories
// appear in first-encounter order and the top category is resolved by a
// left fold over that order, so an earlier category wins amount ties.
func Summarize(records []core.Expense, now time.Time) Summary {
	s := Summary{TopCategory: NoCategory}

	index := make(map[string]int)
	for _, e := range records {
		s.TotalMonth.Paise += e.Amount.Paise
		if sameDay(e.Date, now) {
			s.TotalToday.Paise += e.Amount.Paise
		}

		cat := e.Category
		if cat == "" {
			cat = Uncategorized
		}
		i, ok := index[cat]
		if !ok {
			i = len(s.PerCategory)
			index[cat] = i
			s.PerCategory = append(s.PerCategory, CategoryTotal{Category: cat})
		}
		s.PerCategory[i].Total.Paise += e.Amount.Paise
	}

	var best int64 = -1 << 63
	for _, ct := range s.PerCategory {
		if ct.Total.Paise > best {
			best = ct.Total.Paise
			s.TopCategory = ct.Category
		}
	}
	return s
}
