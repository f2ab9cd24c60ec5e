package app

import (
	"github.com/mind-engage/radioquiz/internal/quiz"
)

// Snapshot is everything a renderer needs, copied out of the loop.
type Snapshot struct {
	SessionID    string              `json:"session_id,omitempty"`
	Token        uint64              `json:"token"`
	Loading      bool                `json:"loading"`
	Message      string              `json:"message,omitempty"`
	Request      LoadRequest         `json:"request"`
	CategoryName string              `json:"category_name,omitempty"`
	ThemeName    string              `json:"theme_name,omitempty"`
	Mode         quiz.Mode           `json:"mode"`
	PassScore    int                 `json:"pass_score"`
	Index        int                 `json:"index"`
	Total        int                 `json:"total"`
	Current      *quiz.QuestionView  `json:"current,omitempty"`
	Questions    []quiz.QuestionView `json:"questions"`
	Progress     []quiz.Cell         `json:"progress"`
	Stats        quiz.Stats          `json:"stats"`
	ElapsedMS    int64               `json:"elapsed_ms"`
	Result       *quiz.Result        `json:"result,omitempty"`
	Feedback     *quiz.Feedback      `json:"feedback,omitempty"`
}

func (s Snapshot) Loaded() bool { return s.Total > 0 }

func (a *App) snapshot() Snapshot {
	s := a.session
	snap := Snapshot{
		Token:        a.token,
		Loading:      a.loading,
		Message:      a.message,
		Request:      a.meta.request,
		CategoryName: a.meta.categoryName,
		ThemeName:    a.meta.themeName,
		Questions:    []quiz.QuestionView{},
		Progress:     []quiz.Cell{},
	}
	if !s.Loaded() {
		return snap
	}
	snap.SessionID = s.ID().String()
	snap.Mode = s.Mode()
	snap.PassScore = s.PassScore()
	snap.Index = s.Index()
	snap.Total = s.Len()
	snap.Questions = s.Views()
	snap.Progress = s.Progress()
	snap.Stats = s.Score()
	snap.ElapsedMS = s.Elapsed().Milliseconds()
	if v, ok := s.View(s.Index()); ok {
		snap.Current = &v
	}
	if res, ok := s.Finished(); ok {
		snap.Result = &res
	}
	if a.feedback != nil {
		fb := *a.feedback
		snap.Feedback = &fb
	}
	return snap
}
