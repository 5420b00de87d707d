package fiber

type CreateQaLogRequest struct {
	Question     string `json:"question" example:"Wann beginnt das Semester?"`
	Answer       string `json:"answer" example:"Das Wintersemester beginnt im Oktober."`
	StudyProgram string `json:"study_program" example:"informatics"`
	OrgID        int64  `json:"org_id" example:"1"`
}

type CreateQaLogResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// QaLogResponse is one row of the QA log table. date is formatted for display.
type QaLogResponse struct {
	ID           string `json:"id"`
	Date         string `json:"date" example:"05.01.2024, 14:07"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	StudyProgram string `json:"study_program"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_qa_log"`
	Message string `json:"message"`
}
