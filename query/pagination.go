package query

import "strconv"

// defaultPageLimit caps an unset or non-positive limit, the same
// defensive default cosmos-sdk's query pagination applies.
const defaultPageLimit = 100

type idPage struct {
	items []string
	next  string
}

// paginateIDs slices ids starting just after cursor (or from the start if
// cursor is empty) for up to limit entries, in the order the Lister
// returned them, so two calls against unchanged host state agree on page
// boundaries as long as the Lister's order is deterministic.
func paginateIDs(ids []string, cursor string, limit int) (idPage, error) {
	start := 0
	if cursor != "" {
		idx := indexOf(ids, cursor)
		if idx == -1 {
			return idPage{}, errInvalidCursor
		}
		start = idx + 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	if start > len(ids) {
		start = len(ids)
	}
	page := append([]string(nil), ids[start:end]...)
	next := ""
	if end < len(ids) {
		next = ids[end-1]
	}
	return idPage{items: page, next: next}, nil
}

func indexOf(ids []string, target string) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

type seqPage struct {
	items []uint64
	next  string
}

// paginateSequences is paginateIDs specialized for packet sequence
// numbers, whose cursor is the decimal string of the last sequence
// returned.
func paginateSequences(sequences []uint64, cursor string, limit int) (seqPage, error) {
	ids := make([]string, len(sequences))
	for i, s := range sequences {
		ids[i] = strconv.FormatUint(s, 10)
	}
	page, err := paginateIDs(ids, cursor, limit)
	if err != nil {
		return seqPage{}, err
	}
	items := make([]uint64, len(page.items))
	for i, s := range page.items {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return seqPage{}, err
		}
		items[i] = v
	}
	return seqPage{items: items, next: page.next}, nil
}
