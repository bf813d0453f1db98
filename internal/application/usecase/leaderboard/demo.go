package leaderboard

import "github.com/ecoimpact/backend/internal/domain/entity"

// demoEntries back the board when live data is thin or unavailable.
var demoEntries = []entity.LeaderboardEntry{
	{UserID: "guest", DisplayName: "Guest", EcoPoints: 815, TotalCO2: 128, TotalSpend: 8920, TxCount: 122, EcoScorePercentile: 78},
	{UserID: "river.runner", DisplayName: "River Runner", EcoPoints: 790, TotalCO2: 135, TotalSpend: 9025, TxCount: 117, EcoScorePercentile: 75},
	{UserID: "luna.green", DisplayName: "Luna Green", EcoPoints: 760, TotalCO2: 150, TotalSpend: 9730, TxCount: 140, EcoScorePercentile: 71},
	{UserID: "solarpunk", DisplayName: "Solar Punk", EcoPoints: 722, TotalCO2: 166, TotalSpend: 11050, TxCount: 154, EcoScorePercentile: 66},
	{UserID: "urbancomposter", DisplayName: "Urban Composter", EcoPoints: 701, TotalCO2: 172, TotalSpend: 10442, TxCount: 139, EcoScorePercentile: 63},
	{UserID: "freshroots", DisplayName: "Fresh Roots", EcoPoints: 664, TotalCO2: 190, TotalSpend: 11885, TxCount: 168, EcoScorePercentile: 58},
	{UserID: "northcoast", DisplayName: "North Coast", EcoPoints: 642, TotalCO2: 205, TotalSpend: 12390, TxCount: 174, EcoScorePercentile: 55},
}

// DemoEntries returns a fresh copy of the demo board with badges derived from points.
func DemoEntries() []*entity.LeaderboardEntry {
	out := make([]*entity.LeaderboardEntry, len(demoEntries))
	for i := range demoEntries {
		e := demoEntries[i]
		e.Badge = BadgeFor(e.EcoPoints)
		out[i] = &e
	}
	return out
}
