package domain

import (
	"github.com/venturematch/backend/internal/domain/matching"
)

type Role = matching.Role

const (
	RoleInvestor = matching.RoleInvestor
	RoleFounder  = matching.RoleFounder
)

type Profile = matching.Profile
type InvestorAttributes = matching.InvestorAttributes
type FounderAttributes = matching.FounderAttributes

type Like = matching.Like

type Match = matching.Match
type MatchStatus = matching.MatchStatus

const (
	MatchStatusPending = matching.MatchStatusPending
	MatchStatusActive  = matching.MatchStatusActive
	MatchStatusClosed  = matching.MatchStatusClosed
	MatchStatusBlocked = matching.MatchStatusBlocked
)

var NewInvestorAttrs = matching.NewInvestorAttrs
var NewFounderAttrs = matching.NewFounderAttrs
