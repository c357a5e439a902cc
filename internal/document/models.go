package document

import "time"

// GeneratedDocument is one successfully generated legal document. Content is
// immutable once stored: post-generation edits travel with the export
// request and never rewrite the stored record.
type GeneratedDocument struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Filename  string    `json:"filename" bson:"filename"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// DisplayDate formats CreatedAt the way the document list shows it
// (dd-mm-yyyy).
func (d GeneratedDocument) DisplayDate() string {
	return d.CreatedAt.Format("02-01-2006")
}
