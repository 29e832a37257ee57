package events

import (
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/money"
)

const allInvestKinds = -1

type economicTemplate struct {
	name, description string
	marketModifier    float64
	affectedKind      int
}

type politicalTemplate struct {
	name, description string
	stabilityImpact   int
	causesWar         bool
}

type magicalTemplate struct {
	name, description string
	exposureImpact    int
	affectsDark       bool
}

type personalTemplate struct {
	name, description string
	isBetrayal        bool
	isDeath           bool
	choices           []Choice
}

var economicMinor = []economicTemplate{
	{"Trade Fair", "A regional trade fair boosts commerce", 1.05, int(invest.KindTrade)},
	{"Poor Harvest", "A below-average harvest affects food prices", 0.95, int(invest.KindProperty)},
	{"New Mine Discovery", "A new vein of ore is discovered", 1.08, allInvestKinds},
	{"Tax Increase", "Local taxes are raised slightly", 0.97, int(invest.KindProperty)},
}

var economicModerate = []economicTemplate{
	{"Trade Route Opens", "A new trade route brings prosperity", 1.15, int(invest.KindTrade)},
	{"Banking Crisis", "Several money lenders fail", 0.85, int(invest.KindFinancial)},
	{"Resource Boom", "Valuable resources flood the market", 1.20, allInvestKinds},
	{"Trade Embargo", "Political tensions disrupt trade", 0.80, int(invest.KindTrade)},
}

var economicMajor = []economicTemplate{
	{"Market Crash", "Financial markets collapse", 0.60, allInvestKinds},
	{"Golden Age", "Unprecedented prosperity sweeps the land", 1.40, allInvestKinds},
	{"Currency Devaluation", "The currency loses significant value", 0.70, int(invest.KindFinancial)},
	{"Discovery of New Lands", "New territories bring vast opportunity", 1.50, int(invest.KindTrade)},
}

var politicalMinor = []politicalTemplate{
	{"Noble Scandal", "A minor noble is caught in scandal", -5, false},
	{"Royal Proclamation", "The crown issues new edicts", 5, false},
	{"Border Skirmish", "Minor conflict on the frontier", -10, false},
	{"Diplomatic Visit", "Foreign dignitaries improve relations", 10, false},
}

var politicalModerate = []politicalTemplate{
	{"Succession Dispute", "Questions arise about the line of succession", -25, false},
	{"Reform Movement", "Calls for change sweep the populace", -15, false},
	{"Alliance Formed", "A powerful alliance is announced", 20, false},
	{"Peasant Unrest", "The common folk grow restless", -20, false},
}

var politicalMajor = []politicalTemplate{
	{"Civil War", "The realm tears itself apart", -50, true},
	{"Revolution", "The old order is overthrown", -60, true},
	{"Conquest", "Foreign armies march on the capital", -40, true},
	{"Golden Peace", "A century-long peace treaty is signed", 50, false},
}

var magicalMinor = []magicalTemplate{
	{"Strange Lights", "Unusual lights seen in the sky", 5, false},
	{"Witch Accusations", "Rumors of witchcraft spread", 10, false},
	{"Blessed Harvest", "The harvest is miraculously bountiful", -5, false},
	{"Cursed Well", "A village well turns bitter", 8, true},
}

var magicalModerate = []magicalTemplate{
	{"Artifact Discovered", "An ancient artifact is unearthed", 20, true},
	{"Magical Plague", "A mysterious illness spreads", 25, true},
	{"Divine Vision", "A saint receives a holy vision", -15, false},
	{"Demonic Sighting", "Reports of demon activity", 30, true},
}

var magicalMajor = []magicalTemplate{
	{"The Veil Thins", "The barrier between worlds weakens", 50, true},
	{"Divine Intervention", "The gods manifest their power", -40, false},
	{"Magical Catastrophe", "A spell goes terribly wrong", 60, true},
	{"Age of Miracles", "Magic becomes commonplace", 40, true},
}

var personalMinor = []personalTemplate{
	{"Agent Illness", "One of your agents falls ill", false, false, nil},
	{"Agent Promotion", "An agent gains influence", false, false, nil},
	{"Family Dispute", "Quarrel among your servants", false, false, nil},
	{"New Contact", "An agent makes a valuable connection", false, false, nil},
}

var personalModerate = []personalTemplate{
	{"Agent Investigated", "Authorities take interest in an agent", false, false, []Choice{
		{Text: "Bribe the investigators", Effects: []Effect{
			{GoldDelta: money.New(-5000), ExposureDelta: -5},
		}},
		{Text: "Let the inquiry run its course", Effects: []Effect{
			{ExposureDelta: 8, LoyaltyDelta: -5},
		}},
	}},
	{"Wavering Loyalty", "An agent questions their service", true, false, nil},
	{"Agent Marriage", "An agent's family grows", false, false, nil},
	{"Agent Accident", "Serious injury befalls an agent", false, false, nil},
}

var personalMajor = []personalTemplate{
	{"Betrayal", "An agent reveals secrets to your enemies", true, false, nil},
	{"Agent Death", "A valued servant meets their end", false, true, nil},
	{"Inquisitor Interest", "Church investigators target your network", true, false, []Choice{
		{Text: "Silence the inquisitors", Effects: []Effect{
			{GoldDelta: money.New(-20000), ExposureDelta: -10, LoyaltyDelta: -3},
		}},
		{Text: "Scatter the network and wait", Effects: []Effect{
			{ExposureDelta: 15, LoyaltyDelta: -10},
		}},
	}},
	{"Martyr's End", "An agent dies protecting your secrets", true, true, nil},
}

func economicTable(s Severity) []economicTemplate {
	switch s {
	case SeverityModerate:
		return economicModerate
	case SeverityMajor, SeverityCatastrophic:
		return economicMajor
	default:
		return economicMinor
	}
}

func politicalTable(s Severity) []politicalTemplate {
	switch s {
	case SeverityModerate:
		return politicalModerate
	case SeverityMajor, SeverityCatastrophic:
		return politicalMajor
	default:
		return politicalMinor
	}
}

func magicalTable(s Severity) []magicalTemplate {
	switch s {
	case SeverityModerate:
		return magicalModerate
	case SeverityMajor, SeverityCatastrophic:
		return magicalMajor
	default:
		return magicalMinor
	}
}

func personalTable(s Severity) []personalTemplate {
	switch s {
	case SeverityModerate:
		return personalModerate
	case SeverityMajor, SeverityCatastrophic:
		return personalMajor
	default:
		return personalMinor
	}
}
