// Package reconcile computes the row-level plan for saving an edited set:
// which submitted cards are inserts, which overwrite existing rows, which
// persisted rows disappear, and which uploaded files those rows orphan.
package reconcile

import "github.com/cardfolio/cardfolio-api/models"

// Result is the plan for persisting one submitted card list. Inserts and
// upserts keep submission order; deletes follow the order of the existing
// rows. The whole plan must be applied in a single transaction.
type Result struct {
	ToInsert         []models.Card
	ToUpsert         []models.Card
	DeleteIDs        []int
	OrphanedFileKeys []string
}

// Plan diffs the submitted cards against the rows currently persisted for the
// set. Cards carrying the unsaved sentinel become inserts; cards with a real
// id become full-overwrite upserts; every existing row whose id was not
// submitted is deleted and its image keys are collected for the file purge.
// When the submission carries no real ids at all the delete side degenerates
// to "everything", which is exactly the full-replace the user asked for.
func Plan(setID string, existing []models.Card, submitted []models.CardInput) Result {
	submittedIDs := make(map[int]struct{}, len(submitted))

	var res Result
	for _, in := range submitted {
		card := in.Card(setID)
		if in.ID == models.UnsavedCardID {
			res.ToInsert = append(res.ToInsert, card)
			continue
		}
		submittedIDs[in.ID] = struct{}{}
		res.ToUpsert = append(res.ToUpsert, card)
	}

	for _, row := range existing {
		if _, kept := submittedIDs[row.ID]; kept {
			continue
		}
		res.DeleteIDs = append(res.DeleteIDs, row.ID)
		res.OrphanedFileKeys = append(res.OrphanedFileKeys, row.FileKeys()...)
	}

	return res
}
