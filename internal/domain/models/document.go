package models

import "time"

const (
	DocPassport = "passport"
	DocVisa     = "visa"
	DocPhoto    = "photo"
	DocOther    = "other"
)

func ValidDocumentType(t string) bool {
	switch t {
	case DocPassport, DocVisa, DocPhoto, DocOther:
		return true
	}
	return false
}

type Document struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"booking_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"-"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// StoredFile describes a file already written to the document store.
type StoredFile struct {
	FileName     string
	OriginalName string
	Path         string
	Size         int64
	MimeType     string
}

// DocumentUpload pairs one staged file with its document type.
type DocumentUpload struct {
	File StoredFile
	Type string
}
