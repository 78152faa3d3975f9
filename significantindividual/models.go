package significantindividual

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Citizenship statuses relative to the reference jurisdiction
const (
	Citizen           = "citizen"
	PermanentResident = "pr"
	Other             = "other"
)

// SignificantIndividual is one person's declared control over a legal entity, as captured by the filing form
type SignificantIndividual struct {
	Profile         Profile     `json:"profile"`
	ControlType     ControlType `json:"controlType"`
	PercentOfVotes  Percentage  `json:"percentOfVotes,omitempty"`
	PercentOfShares Percentage  `json:"percentOfShares,omitempty"`
	StartDate       string      `json:"startDate,omitempty"`
	EndDate         string      `json:"endDate,omitempty"`
}

// Profile holds the identity part of the record
type Profile struct {
	FullName         string    `json:"fullName" validate:"required"`
	PreferredName    string    `json:"preferredName,omitempty"`
	Email            string    `json:"email,omitempty"`
	BirthDate        string    `json:"birthDate,omitempty"`
	Address          Address   `json:"address"`
	MailingAddress   *Address  `json:"mailingAddress,omitempty"`
	CitizenshipCA    string    `json:"citizenshipCA,omitempty"`
	CitizenshipsExCA []Country `json:"citizenshipsExCA,omitempty"`
	TaxNumber        string    `json:"taxNumber,omitempty"`
	IsTaxResident    bool      `json:"isTaxResident"`
}

type Address struct {
	Line1               string  `json:"line1"`
	Line2               string  `json:"line2,omitempty"`
	City                string  `json:"city"`
	Region              string  `json:"region"`
	PostalCode          string  `json:"postalCode"`
	LocationDescription string  `json:"locationDescription,omitempty"`
	Country             Country `json:"country"`
}

type Country struct {
	Name   string `json:"name"`
	Alpha2 string `json:"alpha_2"`
}

type ControlType struct {
	SharesVotes SharesVotesControl `json:"sharesVotes"`
	Directors   DirectorsControl   `json:"directors"`
	Other       string             `json:"other,omitempty"`
}

type SharesVotesControl struct {
	RegisteredOwner  bool `json:"registeredOwner"`
	IndirectControl  bool `json:"indirectControl"`
	InConcertControl bool `json:"inConcertControl"`
	BeneficialOwner  bool `json:"beneficialOwner"`
}

type DirectorsControl struct {
	DirectControl        bool `json:"directControl"`
	IndirectControl      bool `json:"indirectControl"`
	SignificantInfluence bool `json:"significantInfluence"`
	InConcertControl     bool `json:"inConcertControl"`
}

// HasCitizenship reports whether the citizenship status matches, ignoring case
func (p Profile) HasCitizenship(status string) bool {
	return strings.EqualFold(strings.TrimSpace(p.CitizenshipCA), status)
}

// Percentage is a percentage kept as the text the form submitted.
// The form sends strings, older clients send JSON numbers; both decode to text.
type Percentage string

// Present reports whether a value was supplied. Whitespace counts as supplied
// so that a blank percentage fails parsing instead of disappearing.
func (p Percentage) Present() bool {
	return p != ""
}

func (p *Percentage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Percentage(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("percentage must be a string or a number: %w", err)
	}
	*p = Percentage(n.String())
	return nil
}
