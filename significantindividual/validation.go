package significantindividual

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MissingFields checks the identity preconditions of a record and returns the
// namespaced fields that failed, e.g. "SignificantIndividual.Profile.FullName".
func MissingFields(si SignificantIndividual) ([]string, error) {
	err := validate.Struct(si)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace())
	}
	return fields, nil
}
