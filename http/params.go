package http

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"diabetesapi/ml"
)

// predictParams holds the raw query values. Field names match the
// query parameter names so validator errors map back directly.
type predictParams struct {
	Gender string `validate:"required"`
	AGE    string `validate:"required"`
	Urea   string `validate:"required"`
	Cr     string `validate:"required"`
	HbA1c  string `validate:"required"`
	Chol   string `validate:"required"`
	TG     string `validate:"required"`
	HDL    string `validate:"required"`
	LDL    string `validate:"required"`
	VLDL   string `validate:"required"`
	BMI    string `validate:"required"`
}

type paramError struct {
	Param  string `json:"param"`
	Reason string `json:"reason"`
}

const (
	reasonMissing  = "field required"
	reasonNotInt   = "value is not a valid integer"
	reasonNotFloat = "value is not a valid float"
)

var validate = validator.New()

// Plain decimal integers, optionally with a zero fraction ("50", "-3", "50.0").
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.0*)?$`)

// lastValue returns the last occurrence of a repeated query parameter,
// trimmed of surrounding whitespace.
func lastValue(values url.Values, name string) string {
	vs := values[name]
	if len(vs) == 0 {
		return ""
	}
	return strings.TrimSpace(vs[len(vs)-1])
}

func bindPredictParams(values url.Values) predictParams {
	return predictParams{
		Gender: lastValue(values, "Gender"),
		AGE:    lastValue(values, "AGE"),
		Urea:   lastValue(values, "Urea"),
		Cr:     lastValue(values, "Cr"),
		HbA1c:  lastValue(values, "HbA1c"),
		Chol:   lastValue(values, "Chol"),
		TG:     lastValue(values, "TG"),
		HDL:    lastValue(values, "HDL"),
		LDL:    lastValue(values, "LDL"),
		VLDL:   lastValue(values, "VLDL"),
		BMI:    lastValue(values, "BMI"),
	}
}

// parseInt accepts base-10 integers of any size that fits in int.
// cast.ToIntE parses with base 0, which would read "050" as octal.
func parseInt(raw string) (int, error) {
	if !integerPattern.MatchString(raw) {
		return 0, strconv.ErrSyntax
	}
	digits, _, _ := strings.Cut(raw, ".")
	n, err := strconv.ParseInt(digits, 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// parseFeatures validates and coerces the query into a feature vector.
// It reports every bad parameter, not just the first.
func parseFeatures(values url.Values) (ml.FeatureVector, []paramError) {
	params := bindPredictParams(values)

	missing := make(map[string]bool)
	if err := validate.Struct(params); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return ml.FeatureVector{}, []paramError{{Param: "query", Reason: err.Error()}}
		}
		for _, fe := range verrs {
			missing[fe.Field()] = true
		}
	}

	var (
		fv   ml.FeatureVector
		errs []paramError
	)
	toInt := func(name, raw string, dst *int) {
		if missing[name] {
			errs = append(errs, paramError{Param: name, Reason: reasonMissing})
			return
		}
		n, err := parseInt(raw)
		if err != nil {
			errs = append(errs, paramError{Param: name, Reason: reasonNotInt})
			return
		}
		*dst = n
	}
	toFloat := func(name, raw string, dst *float64) {
		if missing[name] {
			errs = append(errs, paramError{Param: name, Reason: reasonMissing})
			return
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			errs = append(errs, paramError{Param: name, Reason: reasonNotFloat})
			return
		}
		*dst = f
	}

	toInt("Gender", params.Gender, &fv.Gender)
	toInt("AGE", params.AGE, &fv.AGE)
	toFloat("Urea", params.Urea, &fv.Urea)
	toFloat("Cr", params.Cr, &fv.Cr)
	toFloat("HbA1c", params.HbA1c, &fv.HbA1c)
	toFloat("Chol", params.Chol, &fv.Chol)
	toFloat("TG", params.TG, &fv.TG)
	toFloat("HDL", params.HDL, &fv.HDL)
	toFloat("LDL", params.LDL, &fv.LDL)
	toFloat("VLDL", params.VLDL, &fv.VLDL)
	toFloat("BMI", params.BMI, &fv.BMI)

	return fv, errs
}
