package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"bnu-planner/internal/calendar"
	pkgerrors "bnu-planner/pkg/errors"
)

// ── 备注模块业务错误 ──

var ErrInvalidDateKey = errors.New("日期格式应为 YYYY-MM-DD")

// NoteMaxLength 单条备注的最大字符数
const NoteMaxLength = 2000

// NoteService 每日备注业务接口
type NoteService interface {
	// Get 读取备注，未写过时返回空串
	Get(ctx context.Context, dateKey string) (string, error)
	// Set 覆盖写入；内容为空（或仅空白）时删除该日备注
	Set(ctx context.Context, dateKey, content string) error
}

type noteService struct {
	store  *PlannerStore
	logger *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(store *PlannerStore, logger *zap.Logger) NoteService {
	return &noteService{store: store, logger: logger}
}

func (s *noteService) Get(_ context.Context, dateKey string) (string, error) {
	if _, err := calendar.ParseDateKey(dateKey); err != nil {
		return "", ErrInvalidDateKey
	}
	return s.store.Note(dateKey), nil
}

func (s *noteService) Set(ctx context.Context, dateKey, content string) error {
	if _, err := calendar.ParseDateKey(dateKey); err != nil {
		return ErrInvalidDateKey
	}
	if strings.TrimSpace(content) == "" {
		content = ""
	}
	if utf8.RuneCountInString(content) > NoteMaxLength {
		return pkgerrors.NewValidation("content", "备注不能超过 2000 个字符")
	}

	if err := s.store.SetNote(ctx, dateKey, content); err != nil {
		s.logger.Error("保存备注失败", zap.String("date", dateKey), zap.Error(err))
		return err
	}
	s.logger.Debug("更新备注", zap.String("date", dateKey), zap.Bool("cleared", content == ""))
	return nil
}
