package dtos

// ResumeCreateRequest registers a resume version; the file itself goes to
// object storage through the returned presigned URL.
type ResumeCreateRequest struct {
	VersionName string `json:"version_name" binding:"required"`
	FileName    string `json:"file_name" binding:"required"`
}

// ScoreRequest carries the extracted resume text and the target job
// description. PDF text extraction happens client-side.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
}
