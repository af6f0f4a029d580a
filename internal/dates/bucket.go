package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Bucket names a relative "starts within" window.
type Bucket string

const (
	BucketWeek     Bucket = "week"
	BucketTwoWeeks Bucket = "2weeks"
	BucketMonth    Bucket = "month"
)

// ErrUnknownBucket is returned by ParseBucket for tags outside the fixed set.
var ErrUnknownBucket = errors.New("unknown date bucket")

// Buckets lists every known bucket in ascending order.
var Buckets = []Bucket{BucketWeek, BucketTwoWeeks, BucketMonth}

// Label is the Russian filter caption for b.
func (b Bucket) Label() string {
	switch b {
	case BucketWeek:
		return "Через неделю"
	case BucketTwoWeeks:
		return "Через 2 недели"
	case BucketMonth:
		return "Через месяц"
	default:
		return string(b)
	}
}

// bounds returns the inclusive day range of b. The ranges are contiguous and
// disjoint, so any day difference falls in at most one bucket.
func (b Bucket) bounds() (lo, hi int, ok bool) {
	switch b {
	case BucketWeek:
		return 0, 7, true
	case BucketTwoWeeks:
		return 8, 14, true
	case BucketMonth:
		return 15, 30, true
	default:
		return 0, 0, false
	}
}

// ParseBucket validates a bucket tag.
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(strings.TrimSpace(s))
	if _, _, ok := b.bounds(); !ok {
		return "", fmt.Errorf("%w: %q (want week, 2weeks or month)", ErrUnknownBucket, s)
	}
	return b, nil
}

// ParseBuckets validates a list of tags, dropping empty entries.
func ParseBuckets(tags []string) ([]Bucket, error) {
	var out []Bucket
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		b, err := ParseBucket(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// MatchesRelativeBucket reports whether date falls into bucket relative to
// today. Unparseable dates and unknown buckets match nothing, and so do past
// dates. The comparison is by calendar day in today's location.
func MatchesRelativeBucket(date string, bucket Bucket, today time.Time) bool {
	lo, hi, ok := bucket.bounds()
	if !ok {
		return false
	}
	event, ok := ParseCalendarDate(date, today.Location())
	if !ok {
		return false
	}
	diff := FromTime(today).DaysUntil(event)
	return diff >= lo && diff <= hi
}

// MatchesAnyBucket applies a multi-select filter: no selection matches every
// date, otherwise date must match at least one selected bucket.
func MatchesAnyBucket(date string, buckets []Bucket, today time.Time) bool {
	if len(buckets) == 0 {
		return true
	}
	for _, b := range buckets {
		if MatchesRelativeBucket(date, b, today) {
			return true
		}
	}
	return false
}
