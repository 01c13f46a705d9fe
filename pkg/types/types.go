package types

// BatchStatus is the terminal state of one batch item
type BatchStatus string

const (
	BatchStatusDownloadFailed   BatchStatus = "download_failed"
	BatchStatusProcessingFailed BatchStatus = "processing_failed"
	BatchStatusProcessed        BatchStatus = "processed"
	BatchStatusUploaded         BatchStatus = "uploaded"
	BatchStatusUploadFailed     BatchStatus = "upload_failed"
	BatchStatusError            BatchStatus = "error"
)

// Success reports whether the status counts toward the successful side of
// the run summary
func (s BatchStatus) Success() bool {
	return s == BatchStatusProcessed || s == BatchStatusUploaded
}

// Stage names used in item-level failure messages
const (
	StageDownload = "download"
	StageProcess  = "process"
	StageUpload   = "upload"
)

// VideoEntry is one video offered by an enumeration source, either a public
// playlist listing or the authenticated channel's upload list
type VideoEntry struct {
	ID          string
	Title       string
	Description string
}
