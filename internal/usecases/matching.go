package usecases

import (
	"math"
	"sort"

	"franquicias-latam.backend/internal/domain/entities"
)

// Score weights. Maximum reachable score is 40+30+20+10 = 100.
const (
	sectorPoints         = 40
	overlapPoints        = 30
	nearOverlapPoints    = 15
	countryPoints        = 20
	experienceHighPoints = 10
	experienceLowPoints  = 5

	// Tolerance applied when the investment ranges miss each other.
	rangeTolerancePct  = 0.20
	openEndedTolerance = 50000

	// Operations background only gets the full bonus on lower-ticket
	// franchises.
	operationsTicketCutoff = 150000

	minMatchScore   = 50
	maxMatches      = 10
	fallbackMatches = 3
)

// rangeBounds maps an investment tier to numeric bounds. The open-ended
// tier uses +Inf as its upper bound.
func rangeBounds(r entities.InvestmentRange) (float64, float64) {
	switch r {
	case entities.Range50K100K:
		return 50000, 100000
	case entities.Range100K200K:
		return 100000, 200000
	case entities.Range200KPlus:
		return 200000, math.Inf(1)
	}
	return 0, 0
}

// rangesIntersect reports whether [aMin,aMax] and [bMin,bMax] overlap.
func rangesIntersect(aMin, aMax, bMin, bMax float64) bool {
	return aMin <= bMax && bMin <= aMax
}

// Score computes the compatibility score between an investor profile and a
// franchise. Pure function of its inputs, always in [0,100].
func Score(profile *entities.InvestorProfile, franchise *entities.Franchise) int {
	score := 0

	for _, sectorID := range profile.SectorIDs {
		if sectorID == franchise.SectorID {
			score += sectorPoints
			break
		}
	}

	pMin, pMax := rangeBounds(profile.InvestmentRange)
	switch {
	case rangesIntersect(pMin, pMax, franchise.InvestmentMin, franchise.InvestmentMax):
		score += overlapPoints
	default:
		tolerance := float64(openEndedTolerance)
		if !math.IsInf(pMax, 1) {
			tolerance = (pMax - pMin) * rangeTolerancePct
		}
		if rangesIntersect(pMin-tolerance, pMax+tolerance, franchise.InvestmentMin, franchise.InvestmentMax) {
			score += nearOverlapPoints
		}
	}

	if franchise.CoversCountry(profile.CountryID) {
		score += countryPoints
	}

	switch profile.ExperienceLevel {
	case entities.ExperienceInversor, entities.ExperienceVentas:
		score += experienceHighPoints
	case entities.ExperienceOperaciones:
		if franchise.InvestmentMin < operationsTicketCutoff {
			score += experienceHighPoints
		} else {
			score += experienceLowPoints
		}
	case entities.ExperienceOtro:
		score += experienceLowPoints
	}

	return score
}

// ScoredFranchise pairs a franchise with its computed score.
type ScoredFranchise struct {
	Franchise *entities.Franchise
	Score     int
}

// Rank scores every franchise against the profile and returns the ranked
// shortlist: entries scoring at least 50, descending, capped at 10. When
// nothing clears the bar the global top 3 is returned instead, so the
// result is only empty when franchises is empty. Ties keep input order.
func Rank(profile *entities.InvestorProfile, franchises []*entities.Franchise) []ScoredFranchise {
	scored := make([]ScoredFranchise, 0, len(franchises))
	for _, f := range franchises {
		scored = append(scored, ScoredFranchise{Franchise: f, Score: Score(profile, f)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	qualified := make([]ScoredFranchise, 0, maxMatches)
	for _, s := range scored {
		if s.Score >= minMatchScore {
			qualified = append(qualified, s)
			if len(qualified) == maxMatches {
				break
			}
		}
	}
	if len(qualified) > 0 {
		return qualified
	}

	if len(scored) > fallbackMatches {
		scored = scored[:fallbackMatches]
	}
	return scored
}
