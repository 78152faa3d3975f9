package bods

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	si "github.com/Financial-Times/significant-individuals-bods-transformer/significantindividual"
)

const (
	directorsDetailsPrefix   = "controlType.directors."
	sharesVotesDetailsPrefix = "controlType.sharesOrVotes."
)

// plainDecimal excludes the Go literal forms ParseFloat also accepts: hex, digit separators, Inf and NaN
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var errNotDecimal = errors.New("not a plain decimal number")

// controlFlag is one boolean on the form together with the direction it implies
type controlFlag[T any] struct {
	name      string
	direction DirectOrIndirect
	isSet     func(T) bool
}

var directorFlags = []controlFlag[si.DirectorsControl]{
	{"directControl", Direct, func(d si.DirectorsControl) bool { return d.DirectControl }},
	{"inConcertControl", Indirect, func(d si.DirectorsControl) bool { return d.InConcertControl }},
	{"indirectControl", Indirect, func(d si.DirectorsControl) bool { return d.IndirectControl }},
	{"significantInfluence", Unknown, func(d si.DirectorsControl) bool { return d.SignificantInfluence }},
}

var sharesVotesFlags = []controlFlag[si.SharesVotesControl]{
	{"registeredOwner", Direct, func(s si.SharesVotesControl) bool { return s.RegisteredOwner }},
	{"indirectControl", Indirect, func(s si.SharesVotesControl) bool { return s.IndirectControl }},
	{"inConcertControl", Indirect, func(s si.SharesVotesControl) bool { return s.InConcertControl }},
	{"beneficialOwner", Indirect, func(s si.SharesVotesControl) bool { return s.BeneficialOwner }},
}

// declaredPercentage is a percentage that was present on the record, already parsed
type declaredPercentage struct {
	interestType InterestType
	maximum      float64
}

// Interests derives board interests, then share and vote interests, then the
// optional other-influence interest, in that order.
func (c Converter) Interests(record si.SignificantIndividual) ([]Interest, error) {
	sharesVotes, err := c.sharesVotesInterests(record)
	if err != nil {
		return nil, err
	}

	interests := directorsInterests(record)
	interests = append(interests, sharesVotes...)
	if record.ControlType.Other != "" {
		interests = append(interests, Interest{
			Type:    OtherInfluenceOrControl,
			Details: record.ControlType.Other,
		})
	}
	return interests, nil
}

func directorsInterests(record si.SignificantIndividual) []Interest {
	interests := []Interest{}
	for _, flag := range directorFlags {
		if !flag.isSet(record.ControlType.Directors) {
			continue
		}
		interests = append(interests, Interest{
			Type:             AppointmentOfBoard,
			DirectOrIndirect: flag.direction,
			Details:          directorsDetailsPrefix + flag.name,
			StartDate:        record.StartDate,
			EndDate:          record.EndDate,
		})
	}
	return interests
}

// sharesVotesInterests emits one interest per set flag and declared percentage.
// Percentages are only parsed when at least one flag uses them.
func (c Converter) sharesVotesInterests(record si.SignificantIndividual) ([]Interest, error) {
	interests := []Interest{}
	var percentages []declaredPercentage
	for _, flag := range sharesVotesFlags {
		if !flag.isSet(record.ControlType.SharesVotes) {
			continue
		}
		if percentages == nil {
			parsed, err := c.declaredPercentages(record)
			if err != nil {
				return nil, err
			}
			percentages = parsed
		}
		for _, pct := range percentages {
			interests = append(interests, Interest{
				Type:             pct.interestType,
				DirectOrIndirect: flag.direction,
				Details:          sharesVotesDetailsPrefix + flag.name,
				StartDate:        record.StartDate,
				EndDate:          record.EndDate,
				Share:            &Share{Maximum: pct.maximum, ExclusiveMaximum: false},
			})
		}
	}
	return interests, nil
}

// declaredPercentages parses votes then shares, skipping the ones not on the record.
func (c Converter) declaredPercentages(record si.SignificantIndividual) ([]declaredPercentage, error) {
	fields := []struct {
		name         string
		value        si.Percentage
		interestType InterestType
	}{
		{"percentOfVotes", record.PercentOfVotes, VotingRights},
		{"percentOfShares", record.PercentOfShares, Shareholding},
	}

	percentages := []declaredPercentage{}
	for _, f := range fields {
		if !f.value.Present() {
			continue
		}
		maximum, err := c.parsePercentage(f.name, f.value)
		if err != nil {
			return nil, err
		}
		percentages = append(percentages, declaredPercentage{interestType: f.interestType, maximum: maximum})
	}
	return percentages, nil
}

func (c Converter) parsePercentage(field string, value si.Percentage) (float64, error) {
	text := strings.TrimSpace(string(value))
	if !plainDecimal.MatchString(text) {
		return 0, &ParseError{Field: field, Value: string(value), Err: errNotDecimal}
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: string(value), Err: err}
	}
	if c.strictPercentages && (parsed < 0 || parsed > 100) {
		return 0, &RangeError{Field: field, Value: parsed}
	}
	return parsed, nil
}
