package howitzer

import (
	"math"
	"strconv"

	"github.com/rs/zerolog"
)

// BestScoreKey is the store key holding the best score.
const BestScoreKey = "bestScore"

// Scoring constants.
const (
	BasePoints      = 100.0
	StreakBonusRate = 0.25
)

// KeyValueStore is the durable storage used for the best score. Get reports
// found == false when the key has never been set.
type KeyValueStore interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// ScoreState is the score, best score and current streak.
type ScoreState struct {
	Score  int
	Best   int
	Streak int
}

// HitPoints returns the points for a hit on a target of the given radius
// with the streak as it was before the hit. Smaller targets pay more; each
// streak step adds StreakBonusRate.
func HitPoints(radius float64, streak int) int {
	ratio := TargetRadius / math.Max(TargetMinRadius, radius)
	sizeFactor := 0.5 + 0.5*ratio
	streakFactor := 1 + StreakBonusRate*float64(streak)
	return int(math.Round(BasePoints * sizeFactor * streakFactor))
}

// scorer applies score changes and keeps the best score in the store.
type scorer struct {
	state *ScoreState
	store KeyValueStore
	log   *zerolog.Logger
}

// recordHit adds the points for a hit and extends the streak. Returns the
// points awarded and whether the best score was beaten.
func (s scorer) recordHit(radius float64) (points int, newBest bool) {
	points = HitPoints(radius, s.state.Streak)
	s.state.Score += points
	s.state.Streak++
	if s.state.Score > s.state.Best {
		s.state.Best = s.state.Score
		s.persistBest()
		newBest = true
	}
	return points, newBest
}

// recordMiss ends the current streak.
func (s scorer) recordMiss() {
	s.state.Streak = 0
}

// reset clears score and streak, keeping the best score.
func (s scorer) reset() {
	s.state.Score = 0
	s.state.Streak = 0
}

// resetBest clears the best score in memory and in the store.
func (s scorer) resetBest() {
	s.state.Best = 0
	s.persistBest()
}

// persistBest writes the best score. Failures are logged and dropped; the
// in-memory value stays authoritative.
func (s scorer) persistBest() {
	if s.store == nil {
		return
	}
	if err := s.store.Set(BestScoreKey, strconv.Itoa(s.state.Best)); err != nil {
		s.log.Warn().Err(err).Int("best", s.state.Best).Msg("persist best score")
	}
}

// loadBest reads the stored best score. Missing, unreadable or malformed
// values count as zero.
func (s scorer) loadBest() int {
	if s.store == nil {
		return 0
	}
	v, found, err := s.store.Get(BestScoreKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("load best score")
		return 0
	}
	if !found {
		return 0
	}
	best, err := strconv.Atoi(v)
	if err != nil || best < 0 {
		s.log.Warn().Str("value", v).Msg("ignoring malformed best score")
		return 0
	}
	return best
}
