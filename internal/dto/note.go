package dto

// ── 备注模块 DTO ──

// SetNoteRequest 写入备注请求；content 为空表示删除
type SetNoteRequest struct {
	Content string `json:"content"`
}

// NoteResponse 备注响应
type NoteResponse struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}
