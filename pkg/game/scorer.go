package game

import "math"

// Verdict 整局的最终结果
type Verdict struct {
	Percent int
	Passed  bool
	Correct int
	Total   int
}

// ComputeVerdict 根据答对回合数和总回合数计算结果
//
//   - Passed = correct >= ceil(total/2)
//   - Percent = round(100 * correct / total)
//   - total 为 0 时 {0, false}
func ComputeVerdict(correct, total int) Verdict {
	if correct < 0 {
		correct = 0
	}
	if total <= 0 {
		return Verdict{Correct: correct}
	}
	return Verdict{
		Percent: int(math.Round(100 * float64(correct) / float64(total))),
		Passed:  correct >= (total+1)/2,
		Correct: correct,
		Total:   total,
	}
}

// Scorer 累计一局中每个回合的结果
// 只在开始新一局时重置
type Scorer struct {
	correctCount int
	roundsPlayed int
}

// RecordRoundOutcome 记录一个回合（用户确认反馈弹窗时调用）
func (s *Scorer) RecordRoundOutcome(wasFullyCorrect bool) {
	if wasFullyCorrect {
		s.correctCount++
	}
	s.roundsPlayed++
}

// CorrectCount 完全答对的回合数
func (s *Scorer) CorrectCount() int {
	return s.correctCount
}

// RoundsPlayed 已确认的回合数
func (s *Scorer) RoundsPlayed() int {
	return s.roundsPlayed
}

// ComputeVerdict 按给定的可玩回合总数计算结果
func (s *Scorer) ComputeVerdict(total int) Verdict {
	return ComputeVerdict(s.correctCount, total)
}

// Reset 清零
func (s *Scorer) Reset() {
	s.correctCount = 0
	s.roundsPlayed = 0
}
