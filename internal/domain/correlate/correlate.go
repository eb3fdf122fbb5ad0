// Package correlate joins curricular records to extracurricular records by id.
package correlate

import "github.com/okian/spfanalyzer/internal/domain/model"

// FindByID returns the first record whose RecordID equals id. Later records
// sharing the id are never returned. The scan is linear; inputs are bounded
// by the record cap so no index is kept.
func FindByID(id int, recs []model.ExtracurricularRecord) (*model.ExtracurricularRecord, bool) {
	for i := range recs {
		if recs[i].RecordID == id {
			return &recs[i], true
		}
	}
	return nil, false
}
