package domain

import "time"

// Regulation is one entry of the regulatory catalog. The catalog is owned
// by an external import process and is read-only here.
type Regulation struct {
	ID                int64
	Domain            string
	Chapter           string
	SubChapter        string
	Title             string
	Requirement       string
	LegalReferences   string
	RequiredDocuments string
	CreatedAt         time.Time
}

// CatalogRow is a regulation merged with its audit as seen by a requester.
// Audit is nil when no record exists or the record is outside the scope.
type CatalogRow struct {
	Regulation
	Audit *AuditRecord
}
