package bods

import (
	si "github.com/Financial-Times/significant-individuals-bods-transformer/significantindividual"
)

var missingFields = si.MissingFields

// Canada is the reference jurisdiction for citizenship and tax residency
var Canada = Country{Name: "Canada", Code: "CA"}

// PersonClassifier decides the BODS person type for a record
type PersonClassifier interface {
	Classify(record si.SignificantIndividual) PersonType
}

// KnownPersonClassifier treats every individual as a known person.
// Anonymisation of at-risk individuals plugs in here.
type KnownPersonClassifier struct{}

func (KnownPersonClassifier) Classify(si.SignificantIndividual) PersonType {
	return KnownPerson
}

// Converter maps significant individual records to BODS. It holds no mutable state
// and is safe for concurrent use.
type Converter struct {
	jurisdiction      Country
	classifier        PersonClassifier
	strictPercentages bool
}

type Option func(*Converter)

// WithJurisdiction overrides the reference country
func WithJurisdiction(c Country) Option {
	return func(conv *Converter) {
		conv.jurisdiction = c
	}
}

func WithPersonClassifier(pc PersonClassifier) Option {
	return func(conv *Converter) {
		conv.classifier = pc
	}
}

// WithStrictPercentages rejects percentages outside [0, 100]
func WithStrictPercentages(strict bool) Option {
	return func(conv *Converter) {
		conv.strictPercentages = strict
	}
}

func NewConverter(opts ...Option) Converter {
	conv := Converter{
		jurisdiction: Canada,
		classifier:   KnownPersonClassifier{},
	}
	for _, opt := range opts {
		opt(&conv)
	}
	return conv
}

// Convert builds the person and interests for one record. Either the whole bundle
// is returned or an error; there are no partial results.
func (c Converter) Convert(record si.SignificantIndividual) (Bundle, error) {
	missing, err := missingFields(record)
	if err != nil {
		return Bundle{}, err
	}
	if len(missing) > 0 {
		return Bundle{}, &DomainError{Fields: missing}
	}

	interests, err := c.Interests(record)
	if err != nil {
		return Bundle{}, err
	}

	person := Person{
		PersonType:     c.PersonType(record),
		Names:          Names(record),
		Identifiers:    Identifiers(record),
		Nationalities:  c.Nationalities(record),
		TaxResidencies: c.TaxResidencies(record),
		Address:        MapAddress(record.Profile.Address),
		BirthDate:      record.Profile.BirthDate,
	}
	if record.Profile.MailingAddress != nil {
		mailing := MapAddress(*record.Profile.MailingAddress)
		person.MailingAddress = &mailing
	}
	return Bundle{Person: person, Interests: interests}, nil
}

func MapAddress(a si.Address) Address {
	return Address{
		Street:              a.Line1,
		StreetAdditional:    a.Line2,
		City:                a.City,
		Region:              a.Region,
		PostalCode:          a.PostalCode,
		LocationDescription: a.LocationDescription,
		Country:             a.Country.Alpha2,
		CountryName:         a.Country.Name,
	}
}

// Names returns the legal name first, then the preferred name if there is one
func Names(record si.SignificantIndividual) []Name {
	names := []Name{{FullName: record.Profile.FullName, Type: IndividualName}}
	if record.Profile.PreferredName != "" {
		names = append(names, Name{FullName: record.Profile.PreferredName, Type: AlternativeName})
	}
	return names
}

func Identifiers(record si.SignificantIndividual) []Identifier {
	identifiers := []Identifier{}
	if record.Profile.TaxNumber != "" {
		identifiers = append(identifiers, Identifier{
			ID:         record.Profile.TaxNumber,
			Scheme:     TaxIDScheme,
			SchemeName: TaxIDSchemeName,
		})
	}
	return identifiers
}

// Nationalities takes exactly one of three paths. Permanent residents get no
// nationality at all, even if they listed other citizenships.
// TODO: confirm the permanent resident rule with the registry's domain owners.
func (c Converter) Nationalities(record si.SignificantIndividual) []Country {
	nationalities := []Country{}
	switch {
	case record.Profile.HasCitizenship(si.Citizen):
		nationalities = append(nationalities, c.jurisdiction)
	case record.Profile.HasCitizenship(si.PermanentResident):
	default:
		for _, country := range record.Profile.CitizenshipsExCA {
			nationalities = append(nationalities, Country{Name: country.Name, Code: country.Alpha2})
		}
	}
	return nationalities
}

func (c Converter) TaxResidencies(record si.SignificantIndividual) []Country {
	residencies := []Country{}
	if record.Profile.IsTaxResident {
		residencies = append(residencies, c.jurisdiction)
	}
	return residencies
}

func (c Converter) PersonType(record si.SignificantIndividual) PersonType {
	return c.classifier.Classify(record)
}
