package game

import (
	"log"

	"github.com/decker502/pratica/pkg/content"
)

// ResultItem 一个有答案热点的回顾条目
type ResultItem struct {
	HotspotID    string
	ChosenRefID  content.RefID
	CorrectRefID content.RefID
	ChosenLabel  string
	CorrectLabel string
	IsCorrect    bool
}

// RoundResult 一个回合的回顾记录
type RoundResult struct {
	RoundID  int
	ImageURL string
	Items    []ResultItem
}

// Session 一局游戏的状态：回合顺序、当前位置、计分和回顾列表
type Session struct {
	content *content.Content
	index   int
	scorer  Scorer
	review  []RoundResult
}

// NewSession 创建会话，调用 Start 开始一局
func NewSession(c *content.Content) *Session {
	if c == nil {
		c = content.Fallback()
	}
	return &Session{content: c}
}

// Content 会话使用的内容
func (s *Session) Content() *content.Content {
	return s.content
}

// Start 开始新的一局：清零计分和回顾，从第 startIndex 个回合开始（越界时取 0）
func (s *Session) Start(startIndex int) {
	if startIndex < 0 || startIndex >= len(s.content.Rounds) {
		startIndex = 0
	}
	s.index = startIndex
	s.scorer.Reset()
	s.review = nil
	log.Printf("[Session] Started at round %d/%d", s.index+1, len(s.content.Rounds))
}

// CurrentIndex 当前回合下标
func (s *Session) CurrentIndex() int {
	return s.index
}

// CurrentRound 当前回合
func (s *Session) CurrentRound() (content.Round, bool) {
	if s.index < 0 || s.index >= len(s.content.Rounds) {
		return content.Round{}, false
	}
	return s.content.Rounds[s.index], true
}

// IsLastRound 当前是否是最后一个回合
func (s *Session) IsLastRound() bool {
	return s.index >= len(s.content.Rounds)-1
}

// Advance 前进到下一回合，返回是否还有回合
func (s *Session) Advance() bool {
	if s.IsLastRound() {
		return false
	}
	s.index++
	return true
}

// TotalPlayableRounds 可玩回合总数
func (s *Session) TotalPlayableRounds() int {
	return len(s.content.Rounds)
}

// Scorer 计分器
func (s *Session) Scorer() *Scorer {
	return &s.scorer
}

// RecordReview 保存回合回顾；同一回合再次校验时替换旧记录
func (s *Session) RecordReview(result RoundResult) {
	for i := range s.review {
		if s.review[i].RoundID == result.RoundID {
			s.review[i] = result
			return
		}
	}
	s.review = append(s.review, result)
}

// Review 回顾列表（副本）
func (s *Session) Review() []RoundResult {
	return append([]RoundResult(nil), s.review...)
}

// Verdict 以可玩回合总数计算的最终结果
func (s *Session) Verdict() Verdict {
	return s.scorer.ComputeVerdict(s.TotalPlayableRounds())
}
