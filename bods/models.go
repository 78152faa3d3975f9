package bods

// Codelist values from the Beneficial Ownership Data Standard
type NameType string

const (
	IndividualName  NameType = "individual"
	AlternativeName NameType = "alternative"
)

type PersonType string

const (
	KnownPerson     PersonType = "knownPerson"
	AnonymousPerson PersonType = "anonymousPerson"
)

type InterestType string

const (
	AppointmentOfBoard      InterestType = "appointment-of-board"
	VotingRights            InterestType = "voting-rights"
	Shareholding            InterestType = "shareholding"
	OtherInfluenceOrControl InterestType = "other-influence-or-control"
)

type DirectOrIndirect string

const (
	Direct   DirectOrIndirect = "direct"
	Indirect DirectOrIndirect = "indirect"
	Unknown  DirectOrIndirect = "unknown"
)

// Identifier scheme used for tax numbers
const (
	TaxIDScheme     = "CAN-TAXID"
	TaxIDSchemeName = "ITN"
)

// Bundle is the BODS shape produced for one significant individual
type Bundle struct {
	Person    Person     `json:"person"`
	Interests []Interest `json:"interests"`
}

type Person struct {
	PersonType     PersonType   `json:"personType"`
	Names          []Name       `json:"names"`
	Identifiers    []Identifier `json:"identifiers"`
	Nationalities  []Country    `json:"nationalities"`
	TaxResidencies []Country    `json:"taxResidencies"`
	Address        Address      `json:"address"`
	MailingAddress *Address     `json:"mailingAddress,omitempty"` //pointer so it is omitted when the form had none
	BirthDate      string       `json:"birthDate,omitempty"`
}

type Address struct {
	Street              string `json:"street"`
	StreetAdditional    string `json:"streetAdditional,omitempty"`
	City                string `json:"city"`
	Region              string `json:"region"`
	PostalCode          string `json:"postalCode"`
	LocationDescription string `json:"locationDescription,omitempty"`
	Country             string `json:"country"`
	CountryName         string `json:"countryName"`
}

type Name struct {
	FullName string   `json:"fullName"`
	Type     NameType `json:"type"`
}

type Identifier struct {
	ID         string `json:"id"`
	Scheme     string `json:"scheme"`
	SchemeName string `json:"schemeName"`
}

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Interest is a single derived fact about a control or ownership relationship
type Interest struct {
	Type             InterestType     `json:"type"`
	DirectOrIndirect DirectOrIndirect `json:"directOrIndirect,omitempty"`
	Details          string           `json:"details"`
	StartDate        string           `json:"startDate,omitempty"`
	EndDate          string           `json:"endDate,omitempty"`
	Share            *Share           `json:"share,omitempty"`
}

// Share is an inclusive upper bound on a declared percentage
type Share struct {
	Maximum          float64 `json:"maximum"`
	ExclusiveMaximum bool    `json:"exclusiveMaximum"`
}
