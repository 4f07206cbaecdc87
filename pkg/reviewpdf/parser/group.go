package parser

import "github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"

// GroupRows partitions rows by GroupKey. Groups are returned in order of
// first appearance and rows keep their input order within a group.
func GroupRows(rows []models.ReviewRow) []models.ReviewGroup {
	var groups []models.ReviewGroup
	index := make(map[models.GroupKey]int)
	for _, row := range rows {
		key := row.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.ReviewGroup{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}
