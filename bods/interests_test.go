package bods

import (
	"errors"
	"strconv"
	"testing"

	si "github.com/Financial-Times/significant-individuals-bods-transformer/significantindividual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestsDirectControlAndRegisteredOwnerVotes(t *testing.T) {
	record := baseRecord()
	record.ControlType.Directors.DirectControl = true
	record.ControlType.SharesVotes.RegisteredOwner = true
	record.PercentOfVotes = "55.5"

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)

	assert.Equal(t, []Interest{
		{
			Type:             AppointmentOfBoard,
			DirectOrIndirect: Direct,
			Details:          "controlType.directors.directControl",
			StartDate:        "2023-01-01",
		},
		{
			Type:             VotingRights,
			DirectOrIndirect: Direct,
			Details:          "controlType.sharesOrVotes.registeredOwner",
			StartDate:        "2023-01-01",
			Share:            &Share{Maximum: 55.5, ExclusiveMaximum: false},
		},
	}, interests)
}

func TestDirectorsInterests(t *testing.T) {
	record := baseRecord()
	record.EndDate = "2024-06-30"
	record.ControlType.Directors = si.DirectorsControl{
		DirectControl:        true,
		IndirectControl:      true,
		SignificantInfluence: true,
		InConcertControl:     true,
	}

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	require.Len(t, interests, 4)

	expected := []struct {
		details   string
		direction DirectOrIndirect
	}{
		{"controlType.directors.directControl", Direct},
		{"controlType.directors.inConcertControl", Indirect},
		{"controlType.directors.indirectControl", Indirect},
		{"controlType.directors.significantInfluence", Unknown},
	}
	for i, e := range expected {
		assert.Equal(t, AppointmentOfBoard, interests[i].Type)
		assert.Equal(t, e.details, interests[i].Details)
		assert.Equal(t, e.direction, interests[i].DirectOrIndirect, e.details)
		assert.Equal(t, "2023-01-01", interests[i].StartDate)
		assert.Equal(t, "2024-06-30", interests[i].EndDate)
		assert.Nil(t, interests[i].Share)
	}
}

func TestDirectorsInterestsAreGatedIndependently(t *testing.T) {
	expected := []struct {
		details   string
		direction DirectOrIndirect
	}{
		{"controlType.directors.directControl", Direct},
		{"controlType.directors.inConcertControl", Indirect},
		{"controlType.directors.indirectControl", Indirect},
		{"controlType.directors.significantInfluence", Unknown},
	}

	for mask := 0; mask < 16; mask++ {
		record := baseRecord()
		record.ControlType.Directors = si.DirectorsControl{
			DirectControl:        mask&1 != 0,
			InConcertControl:     mask&2 != 0,
			IndirectControl:      mask&4 != 0,
			SignificantInfluence: mask&8 != 0,
		}

		interests, err := NewConverter().Interests(record)
		require.NoError(t, err)

		var want []string
		var wantDirections []DirectOrIndirect
		for bit, e := range expected {
			if mask&(1<<bit) != 0 {
				want = append(want, e.details)
				wantDirections = append(wantDirections, e.direction)
			}
		}
		var got []string
		var gotDirections []DirectOrIndirect
		for _, interest := range interests {
			got = append(got, interest.Details)
			gotDirections = append(gotDirections, interest.DirectOrIndirect)
		}
		assert.Equal(t, want, got, "mask "+strconv.Itoa(mask))
		assert.Equal(t, wantDirections, gotDirections, "mask "+strconv.Itoa(mask))
	}
}

func TestSignificantInfluenceAloneIsUnknown(t *testing.T) {
	record := baseRecord()
	record.ControlType.Directors.SignificantInfluence = true

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, AppointmentOfBoard, interests[0].Type)
	assert.Equal(t, Unknown, interests[0].DirectOrIndirect)
}

func TestSharesVotesInterestsOrderAndDirection(t *testing.T) {
	record := baseRecord()
	record.ControlType.SharesVotes = si.SharesVotesControl{
		RegisteredOwner:  true,
		IndirectControl:  true,
		InConcertControl: true,
		BeneficialOwner:  true,
	}
	record.PercentOfVotes = "10"
	record.PercentOfShares = "20.25"

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	require.Len(t, interests, 8)

	flags := []string{"registeredOwner", "indirectControl", "inConcertControl", "beneficialOwner"}
	for i, flag := range flags {
		votes, shares := interests[2*i], interests[2*i+1]
		direction := Indirect
		if flag == "registeredOwner" {
			direction = Direct
		}

		assert.Equal(t, VotingRights, votes.Type)
		assert.Equal(t, &Share{Maximum: 10}, votes.Share)
		assert.Equal(t, Shareholding, shares.Type)
		assert.Equal(t, &Share{Maximum: 20.25}, shares.Share)
		for _, interest := range []Interest{votes, shares} {
			assert.Equal(t, "controlType.sharesOrVotes."+flag, interest.Details)
			assert.Equal(t, direction, interest.DirectOrIndirect, flag)
		}
	}
}

func TestSharesVotesInterestCountMatchesFlagMatrix(t *testing.T) {
	for mask := 0; mask < 64; mask++ {
		record := baseRecord()
		record.ControlType.SharesVotes = si.SharesVotesControl{
			RegisteredOwner:  mask&1 != 0,
			IndirectControl:  mask&2 != 0,
			InConcertControl: mask&4 != 0,
			BeneficialOwner:  mask&8 != 0,
		}
		flagCount, pctCount := 0, 0
		for bit := 0; bit < 4; bit++ {
			if mask&(1<<bit) != 0 {
				flagCount++
			}
		}
		if mask&16 != 0 {
			record.PercentOfVotes = "30"
			pctCount++
		}
		if mask&32 != 0 {
			record.PercentOfShares = "40"
			pctCount++
		}

		interests, err := NewConverter().Interests(record)
		require.NoError(t, err)
		assert.Len(t, interests, flagCount*pctCount, "mask "+strconv.Itoa(mask))
	}
}

func TestSharesVotesFlagWithoutPercentageEmitsNothing(t *testing.T) {
	record := baseRecord()
	record.ControlType.SharesVotes.BeneficialOwner = true

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestOtherInfluenceIsLastAndBare(t *testing.T) {
	record := baseRecord()
	record.EndDate = "2024-01-01"
	record.ControlType.Directors.SignificantInfluence = true
	record.ControlType.SharesVotes.InConcertControl = true
	record.PercentOfShares = "5"
	record.ControlType.Other = "Controls the trust that owns the shares"

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	require.Len(t, interests, 3)

	assert.Equal(t, AppointmentOfBoard, interests[0].Type)
	assert.Equal(t, Shareholding, interests[1].Type)
	assert.Equal(t, Interest{
		Type:    OtherInfluenceOrControl,
		Details: "Controls the trust that owns the shares",
	}, interests[2])
}

func TestNoFlagsNoInterests(t *testing.T) {
	record := baseRecord()
	record.PercentOfVotes = "50"
	record.PercentOfShares = "50"

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestMalformedPercentages(t *testing.T) {
	type testCase struct {
		name   string
		votes  si.Percentage
		shares si.Percentage
		field  string
	}
	testCases := []testCase{
		{"letters in votes", "abc", "", "percentOfVotes"},
		{"trailing text in shares", "", "12.5%", "percentOfShares"},
		{"not a number", "NaN", "", "percentOfVotes"},
		{"infinite", "", "+Inf", "percentOfShares"},
		{"votes checked before shares", "x", "y", "percentOfVotes"},
		{"digit separator", "", "1_0", "percentOfShares"},
		{"hex float", "0x1p6", "", "percentOfVotes"},
		{"spelled infinity", "Infinity", "", "percentOfVotes"},
		{"whitespace only", "", "   ", "percentOfShares"},
	}

	for _, test := range testCases {
		record := baseRecord()
		record.ControlType.SharesVotes.RegisteredOwner = true
		record.PercentOfVotes = test.votes
		record.PercentOfShares = test.shares

		interests, err := NewConverter().Interests(record)
		assert.Nil(t, interests, test.name)
		var parseErr *ParseError
		if assert.True(t, errors.As(err, &parseErr), test.name) {
			assert.Equal(t, test.field, parseErr.Field, test.name)
		}
	}
}

func TestPlainDecimalPercentages(t *testing.T) {
	testCases := map[string]float64{
		"25":     25,
		"+12.50": 12.5,
		"7.":     7,
		".5":     0.5,
		"1e1":    10,
		"2.5E-1": 0.25,
		"-5":     -5,
	}

	for text, expected := range testCases {
		record := baseRecord()
		record.ControlType.SharesVotes.RegisteredOwner = true
		record.PercentOfShares = si.Percentage(text)

		interests, err := NewConverter().Interests(record)
		require.NoError(t, err, text)
		require.Len(t, interests, 1, text)
		assert.Equal(t, expected, interests[0].Share.Maximum, text)
	}
}

func TestMalformedPercentageUnusedWithoutShareFlags(t *testing.T) {
	record := baseRecord()
	record.ControlType.Directors.DirectControl = true
	record.PercentOfVotes = "abc"

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	assert.Len(t, interests, 1)
}

func TestPercentagesAreTrimmed(t *testing.T) {
	record := baseRecord()
	record.ControlType.SharesVotes.RegisteredOwner = true
	record.PercentOfShares = " 33.3 "

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, 33.3, interests[0].Share.Maximum)
}

func TestOutOfRangePercentages(t *testing.T) {
	record := baseRecord()
	record.ControlType.SharesVotes.RegisteredOwner = true
	record.PercentOfVotes = "120"

	interests, err := NewConverter().Interests(record)
	require.NoError(t, err)
	assert.Equal(t, 120.0, interests[0].Share.Maximum)

	_, err = NewConverter(WithStrictPercentages(true)).Interests(record)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "percentOfVotes", rangeErr.Field)
}
