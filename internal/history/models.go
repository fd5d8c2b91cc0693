package history

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/storage"
	"github.com/google/uuid"
)

type recordModel struct {
	storage.BaseEntity

	Hash                 string    `json:"hash"`
	Message              string    `json:"message"`
	Timestamp            time.Time `json:"timestamp"`
	FilesChanged         int       `json:"files_changed"`
	Success              bool      `json:"success"`
	UsedGeneratedMessage bool      `json:"used_generated_message"`
	Reason               string    `json:"reason,omitempty"`
}

func newRecordModel(draft *CommitRecordDraft) *recordModel {
	if draft == nil {
		return nil
	}

	now := time.Now()
	return &recordModel{
		BaseEntity: storage.BaseEntity{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Hash:                 draft.Hash,
		Message:              draft.Message,
		Timestamp:            draft.Timestamp,
		FilesChanged:         draft.FilesChanged,
		Success:              draft.Success,
		UsedGeneratedMessage: draft.UsedGeneratedMessage,
		Reason:               draft.Reason,
	}
}

func newCommitRecord(model *recordModel) *CommitRecord {
	if model == nil {
		return nil
	}

	return &CommitRecord{
		CommitRecordDraft: CommitRecordDraft{
			Hash:                 model.Hash,
			Message:              model.Message,
			Timestamp:            model.Timestamp,
			FilesChanged:         model.FilesChanged,
			Success:              model.Success,
			UsedGeneratedMessage: model.UsedGeneratedMessage,
			Reason:               model.Reason,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
	}
}
