package scoring

import (
	"sort"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
)

// Point weights per recorded event.
const (
	PointsPerGoal   = 5
	PointsPerAssist = 3
	PointsPerYellow = -1
	PointsPerRed    = -3
)

// PlayerPoints scores one player's gameweek performance. A player who
// did not play scores zero no matter what counts were recorded.
func PlayerPoints(stat matchstat.Stat) int {
	if !stat.Played {
		return 0
	}

	return PointsPerGoal*stat.Goals +
		PointsPerAssist*stat.Assists +
		PointsPerYellow*stat.YellowCards +
		PointsPerRed*stat.RedCards
}

// CalculateGameweek produces exactly one Score per profile in
// profileIDs, sorted by profile id. Profiles without a pick get an
// all-zero row so leaderboard aggregation never special-cases them.
//
// Per slot: zero when the picked player has no stat row. The captain
// bonus repeats the captain slot's points; a slot index outside the
// roster yields no bonus rather than an error. The function is pure:
// no clock, no randomness, output depends only on its arguments.
// CalculatedAt is left zero for the caller to stamp.
func CalculateGameweek(gameweekID string, picks []fantasy.Pick, stats []matchstat.Stat, profileIDs []string) []Score {
	statByPlayer := make(map[string]matchstat.Stat, len(stats))
	for _, stat := range stats {
		statByPlayer[stat.PlayerID] = stat
	}

	pickByProfile := make(map[string]fantasy.Pick, len(picks))
	for _, pick := range picks {
		pickByProfile[pick.ProfileID] = pick
	}

	ids := append([]string(nil), profileIDs...)
	sort.Strings(ids)

	scores := make([]Score, 0, len(ids))
	for _, profileID := range ids {
		score := Score{
			ProfileID:  profileID,
			GameweekID: gameweekID,
		}

		pick, hasPick := pickByProfile[profileID]
		if hasPick {
			for slot, playerID := range pick.PlayerIDs {
				if slot >= fantasy.RosterSize {
					break
				}
				if stat, ok := statByPlayer[playerID]; ok {
					score.SlotPoints[slot] = PlayerPoints(stat)
				}
			}

			if pick.CaptainSlot >= 0 && pick.CaptainSlot < fantasy.RosterSize {
				score.CaptainBonus = score.SlotPoints[pick.CaptainSlot]
			}
		}

		for _, points := range score.SlotPoints {
			score.TotalPoints += points
		}
		score.TotalPoints += score.CaptainBonus

		scores = append(scores, score)
	}

	return scores
}
