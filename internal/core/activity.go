package core

import (
	"time"

	"github.com/mikey/email-persona/internal/parser"
)

const peakSlotsLimit = 3

// ExtractActivityPatterns derives time-of-day, day-of-week, thread and
// response statistics from the full batch. Records with unparseable
// timestamps are skipped per statistic, never fatal.
func ExtractActivityPatterns(emails []EmailRecord) ActivityPatternSignals {
	signals := ActivityPatternSignals{
		PeakActivityHours: []int{},
		PeakActivityDays:  []string{},
	}
	if len(emails) == 0 {
		return signals
	}

	var hours []int
	var days []string
	var earliest, latest time.Time
	parseable := 0
	threadSizes := map[string]int{}
	threadEarliest := map[string]time.Time{}
	replyCount := 0

	// First pass: timestamps, histograms, thread membership.
	for i := range emails {
		record := &emails[i]

		if record.ThreadID != "" {
			threadSizes[record.ThreadID]++
		}

		ts, ok := parser.ParseTimestamp(record.Date)
		if !ok {
			continue
		}
		parseable++
		hours = append(hours, ts.Hour())
		days = append(days, ts.Weekday().String())

		if earliest.IsZero() || ts.Before(earliest) {
			earliest = ts
		}
		if latest.IsZero() || ts.After(latest) {
			latest = ts
		}
		if record.ThreadID != "" {
			first, seen := threadEarliest[record.ThreadID]
			if !seen || ts.Before(first) {
				threadEarliest[record.ThreadID] = ts
			}
		}
	}

	// Second pass: reply classification. A record is a reply when its
	// subject carries a reply prefix or it is not the earliest parseable
	// message in its thread.
	for i := range emails {
		record := &emails[i]
		if parser.IsReplySubject(record.Subject) {
			replyCount++
			continue
		}
		if record.ThreadID == "" {
			continue
		}
		ts, ok := parser.ParseTimestamp(record.Date)
		if !ok {
			continue
		}
		if first, seen := threadEarliest[record.ThreadID]; seen && ts.After(first) {
			replyCount++
		}
	}

	if parseable > 0 {
		rangeDays := int(latest.Sub(earliest).Hours() / 24)
		if rangeDays < 1 {
			rangeDays = 1
		}
		signals.DateRangeDays = rangeDays
		signals.EmailsPerDay = parser.Round1(float64(parseable) / float64(rangeDays))
	}

	if top := parser.TopN(hours, peakSlotsLimit); top != nil {
		signals.PeakActivityHours = top
	}
	if top := parser.TopN(days, peakSlotsLimit); top != nil {
		signals.PeakActivityDays = top
	}

	signals.TotalThreads = len(threadSizes)
	if signals.TotalThreads > 0 {
		threaded := 0
		for _, size := range threadSizes {
			threaded += size
		}
		signals.ThreadDepthAvg = parser.Round1(float64(threaded) / float64(signals.TotalThreads))
	}

	signals.ResponseRate = parser.Percentage(replyCount, len(emails))

	return signals
}
